package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"railbird/internal/cache"
	apperrors "railbird/internal/errors"
	"railbird/internal/gameday"
	"railbird/internal/models"
	"railbird/internal/repository"
	"railbird/internal/search"
)

// SessionService serves the session catalog views: the games of a given
// day and the upcoming tournament schedule.
type SessionService struct {
	sessionRepo     *repository.SessionRepository
	reservationRepo *repository.ReservationRepository
	esClient        *search.ElasticsearchClient
	valkeyClient    *cache.ValkeyClient
}

func NewSessionService(sessionRepo *repository.SessionRepository, reservationRepo *repository.ReservationRepository, esClient *search.ElasticsearchClient, valkeyClient *cache.ValkeyClient) *SessionService {
	return &SessionService{
		sessionRepo:     sessionRepo,
		reservationRepo: reservationRepo,
		esClient:        esClient,
		valkeyClient:    valkeyClient,
	}
}

// Games returns the session for a date with its game offerings shaped for
// the caller: display names, the caller's reserved flags, stats with the
// seated count disclosed to staff only, and start times only when the date
// is the current logical game date. now is venue-local.
func (s *SessionService) Games(ctx context.Context, date string, caller *models.Player, staff bool, excludeTournaments bool, now time.Time) (*models.SessionGamesResponse, error) {
	session, err := s.sessionRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, apperrors.ErrSessionNotFound
	}

	offerings, err := s.sessionRepo.ListOfferings(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game offerings: %w", err)
	}

	var reserved map[string]bool
	if caller != nil {
		reserved, err = s.reservationRepo.ActiveGameTypes(ctx, session.ID, caller.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get reserved games: %w", err)
		}
	}

	isCurrent := session.GameDate == gameday.ResolveString(now)

	games := make([]models.GameSummary, 0, len(offerings))
	for _, offering := range offerings {
		if excludeTournaments && gameday.IsTournament(offering.GameType) {
			continue
		}

		// A schedule row with an unknown code is a configuration error;
		// surface it instead of rendering a blank label.
		title, err := gameday.DisplayName(offering.GameType)
		if err != nil {
			return nil, fmt.Errorf("offering %q: %w", offering.GameType, err)
		}

		game := models.GameSummary{
			GameType:     offering.GameType,
			Title:        title,
			IsTournament: gameday.IsTournament(offering.GameType),
			Reserved:     reserved[offering.GameType],
		}

		// Start times only mean something on the current game day
		if isCurrent {
			game.StartTime = offering.StartTime
		}

		stats, err := s.statsFor(ctx, session.ID, offering.GameType, staff)
		if err != nil {
			return nil, err
		}
		game.Stats = stats

		games = append(games, game)
	}

	return &models.SessionGamesResponse{
		SessionID:   session.ID,
		Date:        session.GameDate,
		DisplayDate: gameday.DisplayDate(session.GameDate),
		Label:       session.Label,
		Games:       games,
	}, nil
}

// statsFor fetches the queue stats for one offering, cache first, and
// strips the seated count for non-staff callers.
func (s *SessionService) statsFor(ctx context.Context, sessionID int64, gameType string, staff bool) (*models.GameStats, error) {
	if s.valkeyClient != nil {
		if raw, err := s.valkeyClient.GetGameStatsRaw(ctx, sessionID, gameType); err == nil {
			var cached models.GameStats
			if err := json.Unmarshal(raw, &cached); err == nil {
				if !staff {
					cached.Seated = nil
				}
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

	if !staff {
		stats.Seated = nil
	}
	return stats, nil
}

// Tournaments lists upcoming sessions that offer a tournament, from the
// search index, with the caller's reserved flag per tournament.
func (s *SessionService) Tournaments(ctx context.Context, caller *models.Player, now time.Time) (models.ListTournamentsResponse, error) {
	if s.esClient == nil {
		return nil, fmt.Errorf("search is not configured")
	}

	currentDate := gameday.ResolveString(now)

	docs, err := s.esClient.SearchUpcoming(ctx, currentDate, true, 50)
	if err != nil {
		return nil, fmt.Errorf("failed to search upcoming tournaments: %w", err)
	}

	tournaments := models.ListTournamentsResponse{}
	for _, doc := range docs {
		var reserved map[string]bool
		if caller != nil {
			reserved, err = s.reservationRepo.ActiveGameTypes(ctx, doc.ID, caller.PlayerID)
			if err != nil {
				return nil, fmt.Errorf("failed to get reserved games: %w", err)
			}
		}

		for _, game := range doc.Games {
			if !game.IsTournament {
				continue
			}
			tournaments = append(tournaments, models.TournamentItem{
				Date:        doc.GameDate,
				DisplayDate: gameday.DisplayDate(doc.GameDate),
				Title:       game.Title,
				GameType:    game.GameType,
				StartTime:   game.StartTime,
				Current:     doc.GameDate == currentDate,
				Reserved:    reserved[game.GameType],
			})
		}
	}

	return tournaments, nil
}

// BuildSessionDocument assembles the search-index projection of a session.
// Offerings with unknown game codes fail the build; a half-indexed session
// is worse than a loud error at seeding time.
func BuildSessionDocument(session *models.Session, offerings []models.GameOffering) (*models.SessionDocument, error) {
	doc := &models.SessionDocument{
		ID:       session.ID,
		GameDate: session.GameDate,
		Label:    session.Label,
		Games:    make([]models.SessionGame, 0, len(offerings)),
	}

	for _, offering := range offerings {
		title, err := gameday.DisplayName(offering.GameType)
		if err != nil {
			return nil, fmt.Errorf("offering %q: %w", offering.GameType, err)
		}
		isTournament := gameday.IsTournament(offering.GameType)
		doc.Games = append(doc.Games, models.SessionGame{
			GameType:     offering.GameType,
			Title:        title,
			StartTime:    offering.StartTime,
			IsTournament: isTournament,
		})
		if isTournament {
			doc.HasTournament = true
		}
	}

	return doc, nil
}
