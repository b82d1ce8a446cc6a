package repository

import (
	"context"
	"database/sql"

	"railbird/internal/database"
	"railbird/internal/models"
)

// SessionRepository is the session catalog: sessions and their game
// offerings. The queue engine only reads it; writes come from the
// scheduling side (the generator).
type SessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (game_date, label)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		session.GameDate,
		session.Label,
	).Scan(&session.ID, &session.CreatedAt)
}

func (r *SessionRepository) GetByDate(ctx context.Context, date string) (*models.Session, error) {
	session := &models.Session{}
	query := `
		SELECT id, to_char(game_date, 'YYYY-MM-DD'), label, created_at
		FROM sessions
		WHERE game_date = $1`

	err := r.db.QueryRowContext(ctx, query, date).Scan(
		&session.ID,
		&session.GameDate,
		&session.Label,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return session, err
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	session := &models.Session{}
	query := `
		SELECT id, to_char(game_date, 'YYYY-MM-DD'), label, created_at
		FROM sessions
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.GameDate,
		&session.Label,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return session, err
}

func (r *SessionRepository) CreateOffering(ctx context.Context, offering *models.GameOffering) error {
	query := `
		INSERT INTO game_offerings (session_id, game_type, start_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		offering.SessionID,
		offering.GameType,
		offering.StartTime,
	).Scan(&offering.ID, &offering.CreatedAt)
}

func (r *SessionRepository) ListOfferings(ctx context.Context, sessionID int64) ([]models.GameOffering, error) {
	query := `
		SELECT id, session_id, game_type, start_time, created_at
		FROM game_offerings
		WHERE session_id = $1
		ORDER BY start_time, game_type`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []models.GameOffering
	for rows.Next() {
		var o models.GameOffering
		err := rows.Scan(
			&o.ID,
			&o.SessionID,
			&o.GameType,
			&o.StartTime,
			&o.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}

	return offerings, rows.Err()
}

func (r *SessionRepository) GetOffering(ctx context.Context, sessionID int64, gameType string) (*models.GameOffering, error) {
	offering := &models.GameOffering{}
	query := `
		SELECT id, session_id, game_type, start_time, created_at
		FROM game_offerings
		WHERE session_id = $1 AND game_type = $2`

	err := r.db.QueryRowContext(ctx, query, sessionID, gameType).Scan(
		&offering.ID,
		&offering.SessionID,
		&offering.GameType,
		&offering.StartTime,
		&offering.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return offering, err
}

// ListUpcoming returns sessions with game_date on or after the given date,
// offerings included, ordered by date. Used to rebuild the search index.
func (r *SessionRepository) ListUpcoming(ctx context.Context, fromDate string) ([]models.Session, error) {
	query := `
		SELECT id, to_char(game_date, 'YYYY-MM-DD'), label, created_at
		FROM sessions
		WHERE game_date >= $1
		ORDER BY game_date`

	rows, err := r.db.QueryContext(ctx, query, fromDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		err := rows.Scan(&s.ID, &s.GameDate, &s.Label, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
