package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"railbird/internal/database"
	"railbird/internal/models"
)

type PlayerRepository struct {
	db *database.DB
}

func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (email, password_hash, first_name, last_name, roles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING player_id, registered_at`

	return r.db.QueryRowContext(ctx, query,
		player.Email,
		player.PasswordHash,
		player.FirstName,
		player.LastName,
		pq.Array(player.Roles),
	).Scan(&player.PlayerID, &player.RegisteredAt)
}

func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	player := &models.Player{}
	query := `
		SELECT player_id, email, password_hash, first_name, last_name, roles, registered_at, is_active
		FROM players
		WHERE email = $1`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&player.PlayerID,
		&player.Email,
		&player.PasswordHash,
		&player.FirstName,
		&player.LastName,
		pq.Array(&player.Roles),
		&player.RegisteredAt,
		&player.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return player, err
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	player := &models.Player{}
	query := `
		SELECT player_id, email, password_hash, first_name, last_name, roles, registered_at, is_active
		FROM players
		WHERE player_id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.PlayerID,
		&player.Email,
		&player.PasswordHash,
		&player.FirstName,
		&player.LastName,
		pq.Array(&player.Roles),
		&player.RegisteredAt,
		&player.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return player, err
}
