package integration

import (
	"os"
	"testing"

	"railbird/internal/models"
)

const (
	DefaultBaseURL = "http://localhost:8081"
)

// liveBaseURL returns the base URL of a running API, or skips the test.
// Set RAILBIRD_TEST_BASE_URL to run the suite against a seeded server.
func liveBaseURL(t *testing.T) string {
	baseURL := os.Getenv("RAILBIRD_TEST_BASE_URL")
	if baseURL == "" {
		t.Skip("RAILBIRD_TEST_BASE_URL not set; skipping integration test")
	}
	return baseURL
}

// staffClient returns a client authenticated as floor staff
func staffClient(t *testing.T) *TestClient {
	return NewTestClient(liveBaseURL(t),
		envOr("RAILBIRD_TEST_STAFF_EMAIL", "floor@railbird.local"),
		envOr("RAILBIRD_TEST_STAFF_PASSWORD", "floor123"))
}

// playerClient returns a client authenticated as a plain player
func playerClient(t *testing.T) *TestClient {
	return NewTestClient(liveBaseURL(t),
		envOr("RAILBIRD_TEST_PLAYER_EMAIL", "player@railbird.local"),
		envOr("RAILBIRD_TEST_PLAYER_PASSWORD", "player123"))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// FirstCashGame picks a non-tournament offering from a session
func FirstCashGame(t *testing.T, session *models.SessionGamesResponse) *models.GameSummary {
	for i := range session.Games {
		if !session.Games[i].IsTournament {
			return &session.Games[i]
		}
	}
	t.Fatalf("No cash game offered on %s; seed the schedule first", session.Date)
	return nil
}

// AssertWaitlistContains checks that a reservation appears on the waitlist
func AssertWaitlistContains(t *testing.T, waitlist *models.WaitlistResponse, reservationID int64) {
	for _, entry := range waitlist.Entries {
		if entry.ID == reservationID {
			return
		}
	}
	t.Fatalf("Reservation %d not found on waitlist, %+v", reservationID, waitlist.Entries)
}

// AssertWaitlistMissing checks that a reservation is off the waitlist
func AssertWaitlistMissing(t *testing.T, waitlist *models.WaitlistResponse, reservationID int64) {
	for _, entry := range waitlist.Entries {
		if entry.ID == reservationID {
			t.Fatalf("Reservation %d still on waitlist", reservationID)
		}
	}
}

// AssertCurrentListState checks a reservation's state on the current list
func AssertCurrentListState(t *testing.T, current *models.CurrentListResponse, reservationID int64, expected models.ReservationState) {
	for _, entry := range current.Entries {
		if entry.ID == reservationID {
			if entry.State != expected {
				t.Fatalf("Reservation %d has state %s, expected %s", reservationID, entry.State, expected)
			}
			return
		}
	}
	t.Fatalf("Reservation %d not found on current list, %+v", reservationID, current.Entries)
}

// LogTestStep logs a test step for better debugging
func LogTestStep(t *testing.T, step string, args ...interface{}) {
	t.Logf("🔹 "+step, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, result string, args ...interface{}) {
	t.Logf("✅ "+result, args...)
}
