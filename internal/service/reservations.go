package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"railbird/internal/cache"
	apperrors "railbird/internal/errors"
	"railbird/internal/logger"
	"railbird/internal/messaging"
	"railbird/internal/models"
	"railbird/internal/repository"
)

// ReservationService runs the waitlist: creating reservations, moving them
// through the state machine and projecting the queue views.
type ReservationService struct {
	reservationRepo *repository.ReservationRepository
	sessionRepo     *repository.SessionRepository
	playerRepo      *repository.PlayerRepository
	natsClient      *messaging.NATSClient
	valkeyClient    *cache.ValkeyClient
}

func NewReservationService(reservationRepo *repository.ReservationRepository, sessionRepo *repository.SessionRepository, playerRepo *repository.PlayerRepository, natsClient *messaging.NATSClient, valkeyClient *cache.ValkeyClient) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		sessionRepo:     sessionRepo,
		playerRepo:      playerRepo,
		natsClient:      natsClient,
		valkeyClient:    valkeyClient,
	}
}

// Create puts a player on the waiting list for a game offering. Players
// reserve for themselves; floor staff may pass a player email to sign
// someone else up. The name snapshot is frozen at reservation time.
// now is the caller-supplied instant used as the FIFO sort key.
func (s *ReservationService) Create(ctx context.Context, caller *models.Player, staff bool, req *models.CreateReservationRequest, now time.Time) (*models.CreateReservationResponse, error) {
	session, err := s.sessionRepo.GetByDate(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, apperrors.ErrSessionNotFound
	}

	offering, err := s.sessionRepo.GetOffering(ctx, session.ID, req.GameType)
	if err != nil {
		return nil, fmt.Errorf("failed to get game offering: %w", err)
	}
	if offering == nil {
		return nil, apperrors.ErrUnknownGameOffering
	}

	target := caller
	if staff && req.PlayerEmail != "" && req.PlayerEmail != caller.Email {
		target, err = s.playerRepo.GetByEmail(ctx, req.PlayerEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to look up player: %w", err)
		}
		if target == nil {
			return nil, apperrors.ErrPlayerNotFound
		}
	}

	firstName := req.FirstName
	lastName := req.LastName
	if firstName == "" {
		firstName = target.FirstName
	}
	if lastName == "" {
		lastName = target.LastName
	}

	reservation := &models.Reservation{
		Ref:        uuid.New().String(),
		SessionID:  session.ID,
		GameType:   req.GameType,
		PlayerID:   target.PlayerID,
		FirstName:  firstName,
		LastName:   lastName,
		ReservedAt: now.UTC(),
		State:      models.StateWaiting,
	}

	// No read-before-write duplicate check: the partial unique index is the
	// authoritative guard and Create surfaces its violation as the typed
	// duplicate error.
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, reservation)
	s.invalidateStats(ctx, session.ID, req.GameType)

	return &models.CreateReservationResponse{
		ID:         reservation.ID,
		Ref:        reservation.Ref,
		ReservedAt: reservation.ReservedAt,
	}, nil
}

// MarkSeated seats a waiting player.
func (s *ReservationService) MarkSeated(ctx context.Context, reservationID int64) (*models.Reservation, error) {
	return s.transition(ctx, reservationID, models.StateWaiting, models.StateSeated, models.EventReservationSeated)
}

// MarkLeft records that a seated player has left the game.
func (s *ReservationService) MarkLeft(ctx context.Context, reservationID int64) (*models.Reservation, error) {
	return s.transition(ctx, reservationID, models.StateSeated, models.StateLeft, models.EventReservationLeft)
}

// MarkRemoved takes a waiting player off the list. Seated players are
// never removed; they leave via MarkLeft.
func (s *ReservationService) MarkRemoved(ctx context.Context, reservationID int64) (*models.Reservation, error) {
	return s.transition(ctx, reservationID, models.StateWaiting, models.StateRemoved, models.EventReservationRemoved)
}

func (s *ReservationService) transition(ctx context.Context, reservationID int64, from, to models.ReservationState, subject string) (*models.Reservation, error) {
	if !from.CanTransition(to) {
		return nil, apperrors.ErrInvalidStateTransition
	}

	reservation, err := s.reservationRepo.Transition(ctx, reservationID, from, to)
	if err != nil {
		return nil, err
	}

	s.publishTransition(ctx, subject, reservation)
	s.invalidateStats(ctx, reservation.SessionID, reservation.GameType)

	return reservation, nil
}

// WaitingList returns the FIFO waiting list for one game offering.
func (s *ReservationService) WaitingList(ctx context.Context, date, gameType string) (*models.WaitlistResponse, error) {
	session, err := s.resolveOffering(ctx, date, gameType)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.ListWaiting(ctx, session.ID, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting reservations: %w", err)
	}

	entries := make([]models.WaitlistEntry, len(reservations))
	for i, r := range reservations {
		entries[i] = models.WaitlistEntry{
			ID:         r.ID,
			FirstName:  r.FirstName,
			LastName:   r.LastName,
			ReservedAt: r.ReservedAt,
		}
	}

	return &models.WaitlistResponse{GameType: gameType, Entries: entries}, nil
}

// CurrentList returns players who have reached or passed seating, seated
// players first.
func (s *ReservationService) CurrentList(ctx context.Context, date, gameType string) (*models.CurrentListResponse, error) {
	session, err := s.resolveOffering(ctx, date, gameType)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.ListCurrent(ctx, session.ID, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to list current reservations: %w", err)
	}

	entries := make([]models.CurrentListEntry, len(reservations))
	for i, r := range reservations {
		entries[i] = models.CurrentListEntry{
			ID:        r.ID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			State:     r.State,
		}
	}
	SortCurrentEntries(entries)

	return &models.CurrentListResponse{GameType: gameType, Entries: entries}, nil
}

// SortCurrentEntries orders the current list for display: seated before
// left, then last name ascending (ordinal). The sort is stable so equal
// names keep insertion order.
func SortCurrentEntries(entries []models.CurrentListEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].State != entries[j].State {
			return entries[i].State == models.StateSeated
		}
		return entries[i].LastName < entries[j].LastName
	})
}

// Stats returns the queue statistics for one game offering. The seated
// count is disclosed only when showSeated is set (floor staff).
func (s *ReservationService) Stats(ctx context.Context, date, gameType string, showSeated bool) (*models.GameStats, error) {
	session, err := s.resolveOffering(ctx, date, gameType)
	if err != nil {
		return nil, err
	}

	stats, err := s.offeringStats(ctx, session.ID, gameType)
	if err != nil {
		return nil, err
	}

	if !showSeated {
		stats.Seated = nil
	}
	return stats, nil
}

// offeringStats fetches the full (staff-view) stats, cache first.
func (s *ReservationService) offeringStats(ctx context.Context, sessionID int64, gameType string) (*models.GameStats, error) {
	if s.valkeyClient != nil {
		if raw, err := s.valkeyClient.GetGameStatsRaw(ctx, sessionID, gameType); err == nil {
			var cached models.GameStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	waiting, seated, err := s.reservationRepo.CountByState(ctx, sessionID, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}

	stats := &models.GameStats{Waiting: waiting, Seated: &seated}

	if s.valkeyClient != nil {
		if err := s.valkeyClient.SetGameStats(ctx, sessionID, gameType, stats); err != nil {
			slog.Warn("Failed to cache game stats", "error", err)
		}
	}

	return stats, nil
}

// IsPlayerReserved reports whether the player holds an active reservation
// for the given game offering.
func (s *ReservationService) IsPlayerReserved(ctx context.Context, date, gameType string, playerID int64) (bool, error) {
	session, err := s.resolveOffering(ctx, date, gameType)
	if err != nil {
		return false, err
	}

	reserved, err := s.reservationRepo.HasActive(ctx, session.ID, gameType, playerID)
	if err != nil {
		return false, fmt.Errorf("failed to check reservation: %w", err)
	}

	return reserved, nil
}

// resolveOffering maps (date, game_type) to the owning session, failing
// with the typed catalog errors when either half is missing.
func (s *ReservationService) resolveOffering(ctx context.Context, date, gameType string) (*models.Session, error) {
	session, err := s.sessionRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, apperrors.ErrSessionNotFound
	}

	offering, err := s.sessionRepo.GetOffering(ctx, session.ID, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to get game offering: %w", err)
	}
	if offering == nil {
		return nil, apperrors.ErrUnknownGameOffering
	}

	return session, nil
}

func (s *ReservationService) publishCreated(ctx context.Context, r *models.Reservation) {
	if s.natsClient == nil {
		return
	}
	event := models.ReservationCreatedEvent{
		ReservationID: r.ID,
		SessionID:     r.SessionID,
		GameType:      r.GameType,
		PlayerID:      r.PlayerID,
		ReservedAt:    r.ReservedAt,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.natsClient.Publish(models.EventReservationCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish reservation created event",
			"error", err, "reservation_id", r.ID)
	}
}

func (s *ReservationService) publishTransition(ctx context.Context, subject string, r *models.Reservation) {
	if s.natsClient == nil {
		return
	}
	event := models.ReservationTransitionEvent{
		ReservationID: r.ID,
		SessionID:     r.SessionID,
		GameType:      r.GameType,
		PlayerID:      r.PlayerID,
		State:         r.State,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.natsClient.Publish(subject, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish reservation transition event",
			"subject", subject, "error", err, "reservation_id", r.ID)
	}
}

func (s *ReservationService) invalidateStats(ctx context.Context, sessionID int64, gameType string) {
	if s.valkeyClient == nil {
		return
	}
	if err := s.valkeyClient.InvalidateGameStats(ctx, sessionID, gameType); err != nil {
		logger.WithContext(ctx).Warn("Failed to invalidate stats cache", "error", err)
	}
}
