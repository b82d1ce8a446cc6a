package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"railbird/internal/cache"
	"railbird/internal/models"
	"railbird/internal/repository"
	"railbird/internal/search"
	"railbird/internal/service"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	repos        *repository.Repositories
	esClient     *search.ElasticsearchClient
	valkeyClient *cache.ValkeyClient
}

func NewHandlers(repos *repository.Repositories, esClient *search.ElasticsearchClient, valkeyClient *cache.ValkeyClient) *Handlers {
	return &Handlers{
		repos:        repos,
		esClient:     esClient,
		valkeyClient: valkeyClient,
	}
}

func (h *Handlers) HandleReservationCreated(m *stan.Msg) {
	var event models.ReservationCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal reservation created event", "error", err)
		return
	}

	slog.Info("Processing reservation created event",
		"reservation_id", event.ReservationID,
		"session_id", event.SessionID,
		"game_type", event.GameType,
		"player_id", event.PlayerID)

	// Stats caches on other instances are keyed by session and game;
	// drop them so the next read sees the new waiting count.
	h.invalidateStats(event.SessionID, event.GameType)

	m.Ack()
}

func (h *Handlers) HandleReservationTransition(m *stan.Msg) {
	var event models.ReservationTransitionEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal reservation transition event", "error", err)
		return
	}

	slog.Info("Processing reservation transition event",
		"reservation_id", event.ReservationID,
		"session_id", event.SessionID,
		"game_type", event.GameType,
		"state", event.State)

	h.invalidateStats(event.SessionID, event.GameType)

	m.Ack()
}

func (h *Handlers) HandleSessionCreated(m *stan.Msg) {
	var event models.SessionCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal session created event", "error", err)
		return
	}

	slog.Info("Processing session created event",
		"session_id", event.SessionID,
		"game_date", event.GameDate)

	ctx := context.Background()

	session, err := h.repos.Sessions.GetByID(ctx, event.SessionID)
	if err != nil {
		slog.Error("Failed to get session", "session_id", event.SessionID, "error", err)
		return
	}
	if session == nil {
		slog.Warn("Session not found for created event", "session_id", event.SessionID)
		m.Ack()
		return
	}

	offerings, err := h.repos.Sessions.ListOfferings(ctx, session.ID)
	if err != nil {
		slog.Error("Failed to list game offerings", "session_id", session.ID, "error", err)
		return
	}

	doc, err := service.BuildSessionDocument(session, offerings)
	if err != nil {
		slog.Error("Failed to build session document", "session_id", session.ID, "error", err)
		m.Ack()
		return
	}

	if err := h.esClient.IndexSession(ctx, doc); err != nil {
		slog.Error("Failed to index session", "session_id", session.ID, "error", err)
		return
	}

	m.Ack()
}

func (h *Handlers) invalidateStats(sessionID int64, gameType string) {
	if h.valkeyClient == nil {
		return
	}
	if err := h.valkeyClient.InvalidateGameStats(context.Background(), sessionID, gameType); err != nil {
		slog.Warn("Failed to invalidate game stats cache",
			"session_id", sessionID,
			"game_type", gameType,
			"error", err)
	}
}
