package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createPlayersTable,
		createSessionsTable,
		createGameOfferingsTable,
		createReservationsTable,
		createActiveReservationIndex,
		createWaitlistIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createPlayersTable = `
CREATE TABLE IF NOT EXISTS players (
    player_id SERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    first_name VARCHAR(100) NOT NULL,
    last_name VARCHAR(100) NOT NULL,
    roles TEXT[] NOT NULL DEFAULT '{player}',
    registered_at TIMESTAMP NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);`

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
    id SERIAL PRIMARY KEY,
    game_date DATE UNIQUE NOT NULL,
    label VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createGameOfferingsTable = `
CREATE TABLE IF NOT EXISTS game_offerings (
    id SERIAL PRIMARY KEY,
    session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    game_type VARCHAR(100) NOT NULL,
    start_time VARCHAR(5) NOT NULL DEFAULT '19:00',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(session_id, game_type)
);`

const createReservationsTable = `
CREATE TABLE IF NOT EXISTS reservations (
    id SERIAL PRIMARY KEY,
    ref UUID NOT NULL,
    session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    game_type VARCHAR(100) NOT NULL,
    player_id INTEGER NOT NULL REFERENCES players(player_id),
    first_name VARCHAR(100) NOT NULL,
    last_name VARCHAR(100) NOT NULL,
    reserved_at TIMESTAMP NOT NULL,
    state VARCHAR(10) NOT NULL DEFAULT 'waiting',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    FOREIGN KEY (session_id, game_type) REFERENCES game_offerings(session_id, game_type) ON DELETE CASCADE,
    CHECK (state IN ('waiting', 'seated', 'left', 'removed'))
);`

// One active spot per (session, game, player). The partial index is what
// makes check-and-insert atomic under concurrent creates: the second insert
// hits a unique violation instead of slipping past a read-then-write check.
const createActiveReservationIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS reservations_active_uniq
ON reservations (session_id, game_type, player_id)
WHERE state IN ('waiting', 'seated');`

const createWaitlistIndex = `
CREATE INDEX IF NOT EXISTS reservations_waitlist_idx
ON reservations (session_id, game_type, state, reserved_at, id);`
