package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"railbird/internal/database"
	apperrors "railbird/internal/errors"
	"railbird/internal/models"
)

const uniqueViolation = "23505"

// ReservationRepository owns the reservation collection. No other component
// writes reservation rows.
type ReservationRepository struct {
	db *database.DB
}

func NewReservationRepository(db *database.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts a new waiting reservation. The partial unique index on
// active states turns a concurrent duplicate create into a unique violation,
// so the duplicate check needs no separate read.
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	query := `
		INSERT INTO reservations (ref, session_id, game_type, player_id, first_name, last_name, reserved_at, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		reservation.Ref,
		reservation.SessionID,
		reservation.GameType,
		reservation.PlayerID,
		reservation.FirstName,
		reservation.LastName,
		reservation.ReservedAt,
		reservation.State,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		if pqErr.Constraint == "reservations_active_uniq" {
			return apperrors.ErrDuplicateActiveReservation
		}
	}

	return err
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	query := `
		SELECT id, ref, session_id, game_type, player_id, first_name, last_name, reserved_at, state, created_at, updated_at
		FROM reservations
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.Ref,
		&reservation.SessionID,
		&reservation.GameType,
		&reservation.PlayerID,
		&reservation.FirstName,
		&reservation.LastName,
		&reservation.ReservedAt,
		&reservation.State,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return reservation, err
}

// Transition moves a reservation from one state to another in a single
// conditional update, so two racing transitions on the same reservation
// cannot both succeed. Returns ErrReservationNotFound or
// ErrInvalidStateTransition when the row is missing or not in `from`.
func (r *ReservationRepository) Transition(ctx context.Context, id int64, from, to models.ReservationState) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	query := `
		UPDATE reservations
		SET state = $1, updated_at = NOW()
		WHERE id = $2 AND state = $3
		RETURNING id, ref, session_id, game_type, player_id, first_name, last_name, reserved_at, state, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, to, id, from).Scan(
		&reservation.ID,
		&reservation.Ref,
		&reservation.SessionID,
		&reservation.GameType,
		&reservation.PlayerID,
		&reservation.FirstName,
		&reservation.LastName,
		&reservation.ReservedAt,
		&reservation.State,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// Distinguish a missing row from an illegal transition
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, apperrors.ErrInvalidStateTransition
	}

	return reservation, err
}

// ListWaiting returns the waiting list in FIFO order: reserved_at ascending
// with the row id as insertion-order tie-break.
func (r *ReservationRepository) ListWaiting(ctx context.Context, sessionID int64, gameType string) ([]models.Reservation, error) {
	query := `
		SELECT id, ref, session_id, game_type, player_id, first_name, last_name, reserved_at, state, created_at, updated_at
		FROM reservations
		WHERE session_id = $1 AND game_type = $2 AND state = $3
		ORDER BY reserved_at, id`

	return r.list(ctx, query, sessionID, gameType, models.StateWaiting)
}

// ListCurrent returns seated and left reservations in insertion order.
// Display ordering (seated first, then last name) is applied by the service
// layer so ties stay deterministic.
func (r *ReservationRepository) ListCurrent(ctx context.Context, sessionID int64, gameType string) ([]models.Reservation, error) {
	query := `
		SELECT id, ref, session_id, game_type, player_id, first_name, last_name, reserved_at, state, created_at, updated_at
		FROM reservations
		WHERE session_id = $1 AND game_type = $2 AND state IN ($3, $4)
		ORDER BY id`

	return r.list(ctx, query, sessionID, gameType, models.StateSeated, models.StateLeft)
}

func (r *ReservationRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		err := rows.Scan(
			&res.ID,
			&res.Ref,
			&res.SessionID,
			&res.GameType,
			&res.PlayerID,
			&res.FirstName,
			&res.LastName,
			&res.ReservedAt,
			&res.State,
			&res.CreatedAt,
			&res.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

// CountByState returns the waiting and seated counts for one game offering.
// A single grouped query so both counts come from one consistent snapshot.
func (r *ReservationRepository) CountByState(ctx context.Context, sessionID int64, gameType string) (waiting int, seated int, err error) {
	query := `
		SELECT state, COUNT(*)
		FROM reservations
		WHERE session_id = $1 AND game_type = $2 AND state IN ($3, $4)
		GROUP BY state`

	rows, err := r.db.QueryContext(ctx, query, sessionID, gameType, models.StateWaiting, models.StateSeated)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var state models.ReservationState
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return 0, 0, err
		}
		switch state {
		case models.StateWaiting:
			waiting = count
		case models.StateSeated:
			seated = count
		}
	}

	return waiting, seated, rows.Err()
}

// HasActive reports whether the player holds a waiting or seated
// reservation for the given game offering.
func (r *ReservationRepository) HasActive(ctx context.Context, sessionID int64, gameType string, playerID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE session_id = $1 AND game_type = $2 AND player_id = $3 AND state IN ($4, $5)
		)`

	err := r.db.QueryRowContext(ctx, query, sessionID, gameType, playerID,
		models.StateWaiting, models.StateSeated).Scan(&exists)

	return exists, err
}

// ActiveGameTypes returns the set of game types within a session for which
// the player currently holds an active reservation.
func (r *ReservationRepository) ActiveGameTypes(ctx context.Context, sessionID int64, playerID int64) (map[string]bool, error) {
	query := `
		SELECT game_type
		FROM reservations
		WHERE session_id = $1 AND player_id = $2 AND state IN ($3, $4)`

	rows, err := r.db.QueryContext(ctx, query, sessionID, playerID,
		models.StateWaiting, models.StateSeated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reserved := make(map[string]bool)
	for rows.Next() {
		var gameType string
		if err := rows.Scan(&gameType); err != nil {
			return nil, err
		}
		reserved[gameType] = true
	}

	return reserved, rows.Err()
}
