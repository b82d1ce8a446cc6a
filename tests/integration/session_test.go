package integration

import (
	"testing"
)

func TestHealthCheck(t *testing.T) {
	client := playerClient(t)
	client.HealthCheck(t)
}

func TestTodaySession(t *testing.T) {
	client := playerClient(t)

	session := client.TodaySession(t)
	if session.Date == "" {
		t.Fatal("Expected a resolved game date")
	}
	if session.DisplayDate == "" {
		t.Fatal("Expected a display date")
	}
	if len(session.Games) == 0 {
		t.Fatalf("No games offered on %s; seed the schedule first", session.Date)
	}

	for _, game := range session.Games {
		if game.Title == "" {
			t.Fatalf("Game %s rendered without a title", game.GameType)
		}
	}

	// The same session must come back when addressed by date
	byDate := client.SessionGames(t, session.Date)
	if byDate.SessionID != session.SessionID {
		t.Fatalf("Session mismatch: today=%d, by date=%d", session.SessionID, byDate.SessionID)
	}
}

// TestStatsDisclosure checks that seated counts are a floor-only detail.
func TestStatsDisclosure(t *testing.T) {
	player := playerClient(t)
	staff := staffClient(t)

	session := player.TodaySession(t)
	game := FirstCashGame(t, session)

	playerStats := player.Stats(t, session.Date, game.GameType)
	if playerStats.Seated != nil {
		t.Fatal("Players must not see the seated count")
	}
	if playerStats.Waiting < 0 {
		t.Fatalf("Negative waiting count: %d", playerStats.Waiting)
	}

	staffStats := staff.Stats(t, session.Date, game.GameType)
	if staffStats.Seated == nil {
		t.Fatal("Floor staff must see the seated count")
	}
}

// TestFloorEndpointsRequireStaff checks the queue lists are off limits to players.
func TestFloorEndpointsRequireStaff(t *testing.T) {
	player := playerClient(t)

	session := player.TodaySession(t)
	game := FirstCashGame(t, session)

	query := "?date=" + session.Date + "&game_type=" + game.GameType
	player.ExpectForbidden(t, "/api/games/waitlist"+query)
	player.ExpectForbidden(t, "/api/games/current"+query)
}

func TestTournamentSchedule(t *testing.T) {
	client := playerClient(t)

	tournaments := client.Tournaments(t)

	// The schedule is sorted by date and only lists tournaments
	prev := ""
	for _, item := range tournaments {
		if item.Date < prev {
			t.Fatalf("Schedule out of order: %s after %s", item.Date, prev)
		}
		prev = item.Date

		if item.Title == "" {
			t.Fatalf("Tournament on %s rendered without a title", item.Date)
		}
	}
}
