package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"railbird/internal/config"
	"railbird/internal/database"
	"railbird/internal/gameday"
	"railbird/internal/logger"
	"railbird/internal/messaging"
	"railbird/internal/models"
	"railbird/internal/repository"
	"railbird/internal/search"
	"railbird/internal/service"
)

var (
	days         = flag.Int("days", 14, "Number of upcoming game days to seed")
	clearFuture  = flag.Bool("clear", false, "Clear future sessions before seeding")
	dryRun       = flag.Bool("dry-run", false, "Show what would be seeded without making changes")
	seedAccounts = flag.Bool("accounts", false, "Seed a floor staff and a player account")
)

// scheduledGame is one entry of the weekly template
type scheduledGame struct {
	gameType  string
	startTime string
}

// weeklySchedule maps a weekday to the games the room spreads that day.
// Cash games run every day; bigger games and tournaments have fixed slots.
var weeklySchedule = map[time.Weekday][]scheduledGame{
	time.Sunday:    {{"1_2_300_max", "12:00"}, {"1_3_500_max", "13:00"}, {"nlh_tournament", "13:00"}},
	time.Monday:    {{"1_2_300_max", "19:00"}, {"1_3_500_max", "19:30"}},
	time.Tuesday:   {{"1_2_300_max", "19:00"}, {"1_3_500_max", "19:30"}},
	time.Wednesday: {{"1_2_300_max", "19:00"}, {"1_3_500_max", "19:30"}, {"2_5_plo", "20:00"}},
	time.Thursday:  {{"1_2_300_max", "19:00"}, {"1_3_500_max", "19:30"}},
	time.Friday:    {{"1_2_300_max", "18:00"}, {"1_3_500_max", "18:30"}, {"2_5_nlh", "20:00"}},
	time.Saturday:  {{"1_2_300_max", "12:00"}, {"1_3_500_max", "12:30"}, {"2_5_nlh", "20:00"}, {"plo_tournament", "13:00"}},
}

type SessionGenerator struct {
	db    *database.DB
	repos *repository.Repositories
	es    *search.ElasticsearchClient
	nats  *messaging.NATSClient
	loc   *time.Location
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting session generator...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	generator := &SessionGenerator{
		db:    db,
		repos: repository.NewRepositories(db),
		loc:   cfg.Location(),
	}

	if !*dryRun {
		esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			slog.Error("Failed to connect to Elasticsearch", "error", err)
			os.Exit(1)
		}
		generator.es = esClient

		cfg.NATS.ClientID = "railbird-generator"
		natsClient, err := messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			slog.Warn("NATS unavailable, seeding without events", "error", err)
		} else {
			generator.nats = natsClient
			defer natsClient.Close()
		}
	}

	if *seedAccounts {
		if err := generator.SeedAccounts(); err != nil {
			slog.Error("Failed to seed accounts", "error", err)
			os.Exit(1)
		}
	}

	if err := generator.GenerateSessions(); err != nil {
		slog.Error("Failed to generate sessions", "error", err)
		os.Exit(1)
	}

	slog.Info("Session generation completed successfully!")
}

func (g *SessionGenerator) GenerateSessions() error {
	ctx := context.Background()

	today := gameday.Resolve(time.Now().In(g.loc))

	if *clearFuture && !*dryRun {
		if err := g.clearFutureSessions(ctx, today.Format(gameday.DateLayout)); err != nil {
			return fmt.Errorf("failed to clear future sessions: %w", err)
		}
	}

	for i := 0; i < *days; i++ {
		day := today.AddDate(0, 0, i)
		if err := g.seedDay(ctx, day); err != nil {
			slog.Error("Failed to seed game day", "date", day.Format(gameday.DateLayout), "error", err)
			continue
		}
	}

	return nil
}

func (g *SessionGenerator) seedDay(ctx context.Context, day time.Time) error {
	date := day.Format(gameday.DateLayout)
	games := weeklySchedule[day.Weekday()]

	if *dryRun {
		slog.Info("[DRY RUN] Would seed game day", "date", date, "games", len(games))
		return nil
	}

	existing, err := g.repos.Sessions.GetByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to check existing session: %w", err)
	}
	if existing != nil {
		slog.Info("Game day already seeded, skipping (use -clear to override)", "date", date)
		return nil
	}

	session := &models.Session{
		GameDate: date,
		Label:    day.Weekday().String() + " Session",
	}
	if err := g.repos.Sessions.Create(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	gameTypes := make([]string, 0, len(games))
	for _, game := range games {
		offering := &models.GameOffering{
			SessionID: session.ID,
			GameType:  game.gameType,
			StartTime: game.startTime,
		}
		if err := g.repos.Sessions.CreateOffering(ctx, offering); err != nil {
			return fmt.Errorf("failed to create offering %s: %w", game.gameType, err)
		}
		gameTypes = append(gameTypes, game.gameType)
	}

	if err := g.indexSession(ctx, session); err != nil {
		slog.Error("Failed to index session", "date", date, "error", err)
	}

	g.publishCreated(session, gameTypes)

	slog.Info("Seeded game day", "date", date, "session_id", session.ID, "games", len(games))
	return nil
}

func (g *SessionGenerator) indexSession(ctx context.Context, session *models.Session) error {
	if g.es == nil {
		return nil
	}

	offerings, err := g.repos.Sessions.ListOfferings(ctx, session.ID)
	if err != nil {
		return err
	}

	doc, err := service.BuildSessionDocument(session, offerings)
	if err != nil {
		return err
	}

	return g.es.IndexSession(ctx, doc)
}

func (g *SessionGenerator) publishCreated(session *models.Session, gameTypes []string) {
	if g.nats == nil {
		return
	}

	event := models.SessionCreatedEvent{
		SessionID: session.ID,
		GameDate:  session.GameDate,
		Label:     session.Label,
		GameTypes: gameTypes,
		Timestamp: time.Now(),
	}

	if err := g.nats.Publish(models.EventSessionCreated, event); err != nil {
		slog.Error("Failed to publish session created event", "session_id", session.ID, "error", err)
	}
}

func (g *SessionGenerator) clearFutureSessions(ctx context.Context, fromDate string) error {
	// Drop the search documents first so the index never points at rows
	// that are about to disappear
	if g.es != nil {
		sessions, err := g.repos.Sessions.ListUpcoming(ctx, fromDate)
		if err != nil {
			return err
		}
		for _, session := range sessions {
			if err := g.es.DeleteSession(ctx, session.ID); err != nil {
				slog.Warn("Failed to delete session document", "session_id", session.ID, "error", err)
			}
		}
	}

	// Reservations and offerings cascade from sessions
	result, err := g.db.ExecContext(ctx, "DELETE FROM sessions WHERE game_date >= $1", fromDate)
	if err != nil {
		return err
	}

	if affected, err := result.RowsAffected(); err == nil {
		slog.Info("Cleared future sessions", "count", affected, "from", fromDate)
	}
	return nil
}

// SeedAccounts creates a floor staff and a player account for local use
func (g *SessionGenerator) SeedAccounts() error {
	ctx := context.Background()

	accounts := []struct {
		player   *models.Player
		password string
	}{
		{
			player: &models.Player{
				Email:     "floor@railbird.local",
				FirstName: "Frankie",
				LastName:  "Floor",
				Roles:     []string{"floor"},
			},
			password: "floor123",
		},
		{
			player: &models.Player{
				Email:     "player@railbird.local",
				FirstName: "Pat",
				LastName:  "Player",
				Roles:     []string{"player"},
			},
			password: "player123",
		},
	}

	for _, account := range accounts {
		existing, err := g.repos.Players.GetByEmail(ctx, account.player.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			slog.Info("Account already exists, skipping", "email", account.player.Email)
			continue
		}

		if *dryRun {
			slog.Info("[DRY RUN] Would create account", "email", account.player.Email, "roles", account.player.Roles)
			continue
		}

		hash := sha256.Sum256([]byte(account.password))
		account.player.PasswordHash = hex.EncodeToString(hash[:])

		if err := g.repos.Players.Create(ctx, account.player); err != nil {
			return fmt.Errorf("failed to create account %s: %w", account.player.Email, err)
		}
		slog.Info("Seeded account", "email", account.player.Email, "roles", account.player.Roles)
	}

	return nil
}
