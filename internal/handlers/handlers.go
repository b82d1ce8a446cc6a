package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"railbird/internal/access"
	apperrors "railbird/internal/errors"
	"railbird/internal/gameday"
	"railbird/internal/middleware"
	"railbird/internal/models"
	"railbird/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
	location *time.Location
}

func NewHandlers(services *service.Services, location *time.Location) *Handlers {
	return &Handlers{
		services: services,
		location: location,
	}
}

// now returns the current instant in venue-local time. Every time-sensitive
// operation receives this explicitly; nothing below the handlers reads a
// clock.
func (h *Handlers) now() time.Time {
	return time.Now().In(h.location)
}

// statusForError maps domain errors to HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrUnknownGameOffering),
		errors.Is(err, apperrors.ErrReservationNotFound),
		errors.Is(err, apperrors.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateActiveReservation),
		errors.Is(err, apperrors.ErrInvalidStateTransition):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnknownGameType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Sessions handlers

// GetTodaySession - GET /api/sessions/today
// The session for the current logical game date (4 a.m. rollover applied)
func (h *Handlers) GetTodaySession(c *gin.Context) {
	now := h.now()
	date := gameday.ResolveString(now)
	h.sessionGames(c, date, now)
}

// GetSessionGames - GET /api/sessions/:date/games
func (h *Handlers) GetSessionGames(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(gameday.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	h.sessionGames(c, date, h.now())
}

func (h *Handlers) sessionGames(c *gin.Context, date string, now time.Time) {
	caller, _ := middleware.Caller(c)
	staff := caller != nil && access.IsStaff(caller.Roles)
	excludeTournaments := c.Query("exclude_tournaments") == "true"

	response, err := h.services.Sessions.Games(c.Request.Context(), date, caller, staff, excludeTournaments, now)
	if err != nil {
		slog.Error("Failed to get session games", "date", date, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListTournaments - GET /api/tournaments
// Upcoming tournament schedule from the search index
func (h *Handlers) ListTournaments(c *gin.Context) {
	caller, _ := middleware.Caller(c)

	response, err := h.services.Sessions.Tournaments(c.Request.Context(), caller, h.now())
	if err != nil {
		slog.Error("Failed to list tournaments", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Reservations handlers

// CreateReservation - POST /api/reservations
func (h *Handlers) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := time.Parse(gameday.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	staff := access.IsStaff(caller.Roles)

	// Only floor staff may reserve on behalf of another player
	if !staff && req.PlayerEmail != "" && req.PlayerEmail != caller.Email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot reserve for another player"})
		return
	}

	response, err := h.services.Reservations.Create(c.Request.Context(), caller, staff, &req, h.now())
	if err != nil {
		slog.Error("Failed to create reservation", "error", err)
		respondError(c, err)
		return
	}

	middleware.CountReservationCreated()
	c.JSON(http.StatusCreated, response)
}

// SeatPlayer - PATCH /api/reservations/seat
func (h *Handlers) SeatPlayer(c *gin.Context) {
	h.transition(c, h.services.Reservations.MarkSeated)
}

// LeavePlayer - PATCH /api/reservations/leave
func (h *Handlers) LeavePlayer(c *gin.Context) {
	h.transition(c, h.services.Reservations.MarkLeft)
}

// RemovePlayer - PATCH /api/reservations/remove
func (h *Handlers) RemovePlayer(c *gin.Context) {
	h.transition(c, h.services.Reservations.MarkRemoved)
}

func (h *Handlers) transition(c *gin.Context, op func(ctx context.Context, reservationID int64) (*models.Reservation, error)) {
	var req models.TransitionReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := op(c.Request.Context(), req.ReservationID)
	if err != nil {
		slog.Error("Failed to transition reservation",
			"reservation_id", req.ReservationID,
			"error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    reservation.ID,
		"state": reservation.State,
	})
}

// Queue view handlers (floor staff only, enforced by route middleware)

// GetWaitlist - GET /api/games/waitlist?date=YYYY-MM-DD&game_type=...
func (h *Handlers) GetWaitlist(c *gin.Context) {
	date, gameType, ok := h.gameQuery(c)
	if !ok {
		return
	}

	response, err := h.services.Reservations.WaitingList(c.Request.Context(), date, gameType)
	if err != nil {
		slog.Error("Failed to get waitlist", "date", date, "game_type", gameType, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCurrentList - GET /api/games/current?date=YYYY-MM-DD&game_type=...
func (h *Handlers) GetCurrentList(c *gin.Context) {
	date, gameType, ok := h.gameQuery(c)
	if !ok {
		return
	}

	response, err := h.services.Reservations.CurrentList(c.Request.Context(), date, gameType)
	if err != nil {
		slog.Error("Failed to get current list", "date", date, "game_type", gameType, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetGameStats - GET /api/games/stats?date=YYYY-MM-DD&game_type=...
// Seated counts are included only for floor staff.
func (h *Handlers) GetGameStats(c *gin.Context) {
	date, gameType, ok := h.gameQuery(c)
	if !ok {
		return
	}

	caller, _ := middleware.Caller(c)
	staff := caller != nil && access.IsStaff(caller.Roles)

	stats, err := h.services.Reservations.Stats(c.Request.Context(), date, gameType, staff)
	if err != nil {
		slog.Error("Failed to get game stats", "date", date, "game_type", gameType, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetReservationStatus - GET /api/reservations/status?date=YYYY-MM-DD&game_type=...
// Whether the calling player holds an active reservation for the game.
func (h *Handlers) GetReservationStatus(c *gin.Context) {
	date, gameType, ok := h.gameQuery(c)
	if !ok {
		return
	}

	caller, found := middleware.Caller(c)
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reserved, err := h.services.Reservations.IsPlayerReserved(c.Request.Context(), date, gameType, caller.PlayerID)
	if err != nil {
		slog.Error("Failed to get reservation status", "date", date, "game_type", gameType, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ReservationStatusResponse{Reserved: reserved})
}

// gameQuery pulls the date and game_type query parameters. The date
// defaults to the current logical game date.
func (h *Handlers) gameQuery(c *gin.Context) (date, gameType string, ok bool) {
	date = c.Query("date")
	if date == "" {
		date = gameday.ResolveString(h.now())
	} else if _, err := time.Parse(gameday.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return "", "", false
	}

	gameType = c.Query("game_type")
	if gameType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_type is required"})
		return "", "", false
	}

	return date, gameType, true
}
