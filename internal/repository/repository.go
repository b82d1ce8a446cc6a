package repository

import (
	"railbird/internal/database"
)

type Repositories struct {
	Sessions     *SessionRepository
	Reservations *ReservationRepository
	Players      *PlayerRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Sessions:     NewSessionRepository(db),
		Reservations: NewReservationRepository(db),
		Players:      NewPlayerRepository(db),
	}
}
