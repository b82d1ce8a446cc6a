package integration

import (
	"net/http"
	"testing"

	"railbird/internal/models"
)

// TestReservationLifecycle walks one spot through the whole state machine:
// waiting, seated, left, and a fresh reservation afterwards.
func TestReservationLifecycle(t *testing.T) {
	player := playerClient(t)
	staff := staffClient(t)

	LogTestStep(t, "Fetching today's session")
	session := player.TodaySession(t)
	game := FirstCashGame(t, session)

	LogTestStep(t, "Joining the waitlist for %s", game.GameType)
	reservation := player.CreateReservation(t, models.CreateReservationRequest{
		Date:     session.Date,
		GameType: game.GameType,
	})
	if reservation.ID == 0 {
		t.Fatal("Expected non-zero reservation ID")
	}
	if reservation.Ref == "" {
		t.Fatal("Expected a reservation ref")
	}

	if !player.ReservationStatus(t, session.Date, game.GameType) {
		t.Fatal("Expected reserved=true after joining the waitlist")
	}

	LogTestStep(t, "Duplicate reservation must be rejected")
	player.CreateReservationExpectStatus(t, models.CreateReservationRequest{
		Date:     session.Date,
		GameType: game.GameType,
	}, http.StatusConflict)

	LogTestStep(t, "Floor sees the player on the waitlist")
	waitlist := staff.Waitlist(t, session.Date, game.GameType)
	AssertWaitlistContains(t, waitlist, reservation.ID)

	LogTestStep(t, "Seating the player")
	staff.Transition(t, "seat", reservation.ID)

	waitlist = staff.Waitlist(t, session.Date, game.GameType)
	AssertWaitlistMissing(t, waitlist, reservation.ID)

	current := staff.CurrentList(t, session.Date, game.GameType)
	AssertCurrentListState(t, current, reservation.ID, models.StateSeated)

	// Seated still counts as holding the spot
	if !player.ReservationStatus(t, session.Date, game.GameType) {
		t.Fatal("Expected reserved=true while seated")
	}

	LogTestStep(t, "A seated player cannot be removed, only marked left")
	staff.TransitionExpectStatus(t, "remove", reservation.ID, http.StatusConflict)

	LogTestStep(t, "Marking the player left")
	staff.Transition(t, "leave", reservation.ID)

	current = staff.CurrentList(t, session.Date, game.GameType)
	AssertCurrentListState(t, current, reservation.ID, models.StateLeft)

	if player.ReservationStatus(t, session.Date, game.GameType) {
		t.Fatal("Expected reserved=false after leaving")
	}

	LogTestStep(t, "Left is terminal")
	staff.TransitionExpectStatus(t, "seat", reservation.ID, http.StatusConflict)

	LogTestStep(t, "The player can reserve the same game again")
	second := player.CreateReservation(t, models.CreateReservationRequest{
		Date:     session.Date,
		GameType: game.GameType,
	})
	if second.ID == reservation.ID {
		t.Fatal("Expected a fresh reservation ID")
	}

	LogTestStep(t, "Removing the fresh reservation from the waitlist")
	staff.Transition(t, "remove", second.ID)

	if player.ReservationStatus(t, session.Date, game.GameType) {
		t.Fatal("Expected reserved=false after removal")
	}

	LogTestResult(t, "Reservation lifecycle completed")
}

// TestStaffReservesForPlayer covers the walk-up flow where the floor signs
// up a registered player by email.
func TestStaffReservesForPlayer(t *testing.T) {
	staff := staffClient(t)
	player := playerClient(t)

	session := staff.TodaySession(t)
	game := FirstCashGame(t, session)

	// Clear any active spot left by other tests
	if player.ReservationStatus(t, session.Date, game.GameType) {
		t.Skipf("Player already active on %s; run against a clean seed", game.GameType)
	}

	LogTestStep(t, "Floor signs up the player for %s", game.GameType)
	reservation := staff.CreateReservation(t, models.CreateReservationRequest{
		Date:        session.Date,
		GameType:    game.GameType,
		PlayerEmail: player.Email,
	})

	if !player.ReservationStatus(t, session.Date, game.GameType) {
		t.Fatal("Expected the target player to hold the spot")
	}

	staff.Transition(t, "remove", reservation.ID)
	LogTestResult(t, "Walk-up entry completed")
}

// TestUnknownGameRejected checks the catalog guard on reservation creation.
func TestUnknownGameRejected(t *testing.T) {
	player := playerClient(t)

	session := player.TodaySession(t)

	player.CreateReservationExpectStatus(t, models.CreateReservationRequest{
		Date:     session.Date,
		GameType: "10_20_nlh",
	}, http.StatusNotFound)
}

// TestWaitlistOrder verifies FIFO ordering by reservation time.
func TestWaitlistOrder(t *testing.T) {
	staff := staffClient(t)

	session := staff.TodaySession(t)
	game := FirstCashGame(t, session)

	waitlist := staff.Waitlist(t, session.Date, game.GameType)

	for i := 1; i < len(waitlist.Entries); i++ {
		prev, cur := waitlist.Entries[i-1], waitlist.Entries[i]
		if cur.ReservedAt.Before(prev.ReservedAt) {
			t.Fatalf("Waitlist out of order: %v before %v", prev.ReservedAt, cur.ReservedAt)
		}
	}
}
