package models

import (
	"time"
)

// Player represents a registered player account
type Player struct {
	PlayerID     int64     `json:"player_id" db:"player_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Roles        []string  `json:"roles" db:"roles"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}

// Session represents a single game day at the venue
type Session struct {
	ID        int64     `json:"id" db:"id"`
	GameDate  string    `json:"game_date" db:"game_date"` // YYYY-MM-DD
	Label     string    `json:"label" db:"label"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GameOffering represents one playable game type within a session
type GameOffering struct {
	ID        int64     `json:"id" db:"id"`
	SessionID int64     `json:"session_id" db:"session_id"`
	GameType  string    `json:"game_type" db:"game_type"`
	StartTime string    `json:"start_time" db:"start_time"` // HH:MM, venue local
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Reservation represents a player's claim on a spot for a game offering.
// FirstName/LastName are snapshots taken at reservation time, not a live
// join against the player profile.
type Reservation struct {
	ID         int64            `json:"id" db:"id"`
	Ref        string           `json:"ref" db:"ref"`
	SessionID  int64            `json:"session_id" db:"session_id"`
	GameType   string           `json:"game_type" db:"game_type"`
	PlayerID   int64            `json:"player_id" db:"player_id"`
	FirstName  string           `json:"first_name" db:"first_name"`
	LastName   string           `json:"last_name" db:"last_name"`
	ReservedAt time.Time        `json:"reserved_at" db:"reserved_at"`
	State      ReservationState `json:"state" db:"state"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" db:"updated_at"`
}
