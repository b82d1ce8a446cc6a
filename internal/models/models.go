package models

import "time"

// CreateReservationRequest - request body for creating a reservation.
// Players reserve for themselves; floor staff may pass PlayerEmail to sign
// up another registered player, with an optional name override for the list.
type CreateReservationRequest struct {
	Date        string `json:"date" binding:"required"`
	GameType    string `json:"game_type" binding:"required"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PlayerEmail string `json:"player_email,omitempty"`
}

// CreateReservationResponse - response for a created reservation
type CreateReservationResponse struct {
	ID         int64     `json:"id"`
	Ref        string    `json:"ref"`
	ReservedAt time.Time `json:"reserved_at"`
}

// TransitionReservationRequest - request body for seat/leave/remove
type TransitionReservationRequest struct {
	ReservationID int64 `json:"reservation_id" binding:"required"`
}

// GameStats - live queue statistics for one game offering.
// Seated is nil when the caller is not allowed to see the seated count.
type GameStats struct {
	Waiting int  `json:"waiting"`
	Seated  *int `json:"seated"`
}

// GameSummary - one game offering as shown to a caller
type GameSummary struct {
	GameType     string     `json:"game_type"`
	Title        string     `json:"title"`
	StartTime    string     `json:"start_time,omitempty"`
	IsTournament bool       `json:"is_tournament"`
	Reserved     bool       `json:"reserved"`
	Stats        *GameStats `json:"stats,omitempty"`
}

// SessionGamesResponse - a session and its game offerings
type SessionGamesResponse struct {
	SessionID   int64         `json:"session_id"`
	Date        string        `json:"date"`
	DisplayDate string        `json:"display_date"`
	Label       string        `json:"label"`
	Games       []GameSummary `json:"games"`
}

// WaitlistEntry - one row of the waiting list, FIFO by reservation time
type WaitlistEntry struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	ReservedAt time.Time `json:"reserved_at"`
}

// WaitlistResponse - the waiting list for one game offering
type WaitlistResponse struct {
	GameType string          `json:"game_type"`
	Entries  []WaitlistEntry `json:"entries"`
}

// CurrentListEntry - one row of the current (seated/left) list
type CurrentListEntry struct {
	ID        int64            `json:"id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	State     ReservationState `json:"state"`
}

// CurrentListResponse - the current list for one game offering
type CurrentListResponse struct {
	GameType string             `json:"game_type"`
	Entries  []CurrentListEntry `json:"entries"`
}

// ReservationStatusResponse - whether the caller holds an active spot
type ReservationStatusResponse struct {
	Reserved bool `json:"reserved"`
}

// TournamentItem - one upcoming tournament in the schedule
type TournamentItem struct {
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
	Title       string `json:"title"`
	GameType    string `json:"game_type"`
	StartTime   string `json:"start_time,omitempty"`
	Current     bool   `json:"current"`
	Reserved    bool   `json:"reserved"`
}

// ListTournamentsResponse - the upcoming tournament schedule
type ListTournamentsResponse []TournamentItem
