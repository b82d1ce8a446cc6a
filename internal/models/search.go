package models

import "time"

// SessionDocument is the shape of a session in the search index. It is a
// denormalized projection for schedule browsing; Postgres stays the system
// of record.
type SessionDocument struct {
	ID            int64         `json:"id"`
	GameDate      string        `json:"game_date"`
	Label         string        `json:"label"`
	Games         []SessionGame `json:"games"`
	HasTournament bool          `json:"has_tournament"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// SessionGame is one offering inside a SessionDocument
type SessionGame struct {
	GameType     string `json:"game_type"`
	Title        string `json:"title"`
	StartTime    string `json:"start_time"`
	IsTournament bool   `json:"is_tournament"`
}
