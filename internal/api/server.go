package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"railbird/internal/cache"
	"railbird/internal/config"
	"railbird/internal/database"
	"railbird/internal/handlers"
	"railbird/internal/logger"
	"railbird/internal/messaging"
	"railbird/internal/middleware"
	"railbird/internal/repository"
	"railbird/internal/search"
	"railbird/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP API server
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	es       *search.ElasticsearchClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", "error", err)
	}

	valkeyClient, err := cache.NewValkeyClient()
	if err != nil {
		// The cache is an optimization; the API serves without it
		slog.Warn("Valkey unavailable, running without cache", "error", err)
		valkeyClient = nil
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, valkeyClient, esClient)

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		es:       esClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.config.Location())

	api := s.router.Group("/api")
	// Basic Auth is mandatory for every API route
	api.Use(middleware.BasicAuth(s.repos.Players, s.valkey))
	{
		// Session and schedule endpoints
		sessions := api.Group("/sessions")
		{
			sessions.GET("/today", h.GetTodaySession)
			sessions.GET("/:date/games", h.GetSessionGames)
		}

		api.GET("/tournaments", h.ListTournaments)

		// Reservation endpoints
		reservations := api.Group("/reservations")
		{
			reservations.POST("", h.CreateReservation)
			reservations.GET("/status", h.GetReservationStatus)

			// State transitions belong to the floor
			staff := reservations.Group("")
			staff.Use(middleware.RequireStaff())
			{
				staff.PATCH("/seat", h.SeatPlayer)
				staff.PATCH("/leave", h.LeavePlayer)
				staff.PATCH("/remove", h.RemovePlayer)
			}
		}

		// Per-game queue endpoints
		games := api.Group("/games")
		{
			games.GET("/stats", h.GetGameStats)

			floor := games.Group("")
			floor.Use(middleware.RequireStaff())
			{
				floor.GET("/waitlist", h.GetWaitlist)
				floor.GET("/current", h.GetCurrentList)
			}
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck reports the state of the server and its backing stores
func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.HealthCheck(c.Request.Context())

	esStatus := "ok"
	if err := s.es.HealthCheck(c.Request.Context()); err != nil {
		esStatus = "unavailable"
	}

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":        dbHealth.Status,
		"service":       "railbird-api",
		"version":       "1.0.0",
		"database":      dbHealth,
		"elasticsearch": esStatus,
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the server's connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			slog.Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
