package consumers

import (
	"context"
	"log/slog"

	"railbird/internal/cache"
	"railbird/internal/config"
	"railbird/internal/database"
	"railbird/internal/messaging"
	"railbird/internal/models"
	"railbird/internal/repository"
	"railbird/internal/search"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		return nil, err
	}

	valkeyClient, err := cache.NewValkeyClient()
	if err != nil {
		slog.Warn("Valkey unavailable, consumers run without cache invalidation", "error", err)
		valkeyClient = nil
	}

	repos := repository.NewRepositories(db)
	handlers := NewHandlers(repos, esClient, valkeyClient)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	_, err := cs.nats.SubscribeQueue(models.EventReservationCreated, "consumers", cs.handlers.HandleReservationCreated)
	if err != nil {
		return err
	}

	for _, subject := range []string{
		models.EventReservationSeated,
		models.EventReservationLeft,
		models.EventReservationRemoved,
	} {
		if _, err := cs.nats.SubscribeQueue(subject, "consumers", cs.handlers.HandleReservationTransition); err != nil {
			return err
		}
	}

	_, err = cs.nats.SubscribeQueue(models.EventSessionCreated, "consumers", cs.handlers.HandleSessionCreated)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
