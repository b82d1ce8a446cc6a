package models

import "time"

// NATS subjects
const (
	EventReservationCreated = "reservation.created"
	EventReservationSeated  = "reservation.seated"
	EventReservationLeft    = "reservation.left"
	EventReservationRemoved = "reservation.removed"
	EventSessionCreated     = "session.created"
)

// ReservationCreatedEvent is published when a player joins a waiting list
type ReservationCreatedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	SessionID     int64     `json:"session_id"`
	GameType      string    `json:"game_type"`
	PlayerID      int64     `json:"player_id"`
	ReservedAt    time.Time `json:"reserved_at"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReservationTransitionEvent is published on seat/leave/remove transitions
type ReservationTransitionEvent struct {
	ReservationID int64            `json:"reservation_id"`
	SessionID     int64            `json:"session_id"`
	GameType      string           `json:"game_type"`
	PlayerID      int64            `json:"player_id"`
	State         ReservationState `json:"state"`
	Timestamp     time.Time        `json:"timestamp"`
}

// SessionCreatedEvent is published when the scheduler seeds a new game day
type SessionCreatedEvent struct {
	SessionID int64     `json:"session_id"`
	GameDate  string    `json:"game_date"`
	Label     string    `json:"label"`
	GameTypes []string  `json:"game_types"`
	Timestamp time.Time `json:"timestamp"`
}
