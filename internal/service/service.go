package service

import (
	"railbird/internal/cache"
	"railbird/internal/messaging"
	"railbird/internal/repository"
	"railbird/internal/search"
)

type Services struct {
	Sessions     *SessionService
	Reservations *ReservationService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, valkeyClient *cache.ValkeyClient, esClient *search.ElasticsearchClient) *Services {
	sessionService := NewSessionService(repos.Sessions, repos.Reservations, esClient, valkeyClient)
	reservationService := NewReservationService(repos.Reservations, repos.Sessions, repos.Players, natsClient, valkeyClient)

	return &Services{
		Sessions:     sessionService,
		Reservations: reservationService,
	}
}
