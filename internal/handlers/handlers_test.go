package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"railbird/internal/models"
	"railbird/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// setupRouter wires the handlers without auth middleware, so requests
// arrive with no caller attached. Only paths that reject before reaching
// the service layer are exercised here; the full flows live in the
// integration suite.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandlers(&service.Services{}, time.UTC)

	api := r.Group("/api")
	{
		sessions := api.Group("/sessions")
		{
			sessions.GET("/:date/games", h.GetSessionGames)
		}

		reservations := api.Group("/reservations")
		{
			reservations.POST("", h.CreateReservation)
			reservations.GET("/status", h.GetReservationStatus)
			reservations.PATCH("/seat", h.SeatPlayer)
			reservations.PATCH("/leave", h.LeavePlayer)
			reservations.PATCH("/remove", h.RemovePlayer)
		}

		games := api.Group("/games")
		{
			games.GET("/waitlist", h.GetWaitlist)
			games.GET("/current", h.GetCurrentList)
			games.GET("/stats", h.GetGameStats)
		}
	}

	return r
}

func TestCreateReservationValidation(t *testing.T) {
	r := setupRouter()

	// Missing required fields
	req, _ := http.NewRequest("POST", "/api/reservations", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed JSON
	req, _ = http.NewRequest("POST", "/api/reservations", bytes.NewBufferString(`{"date":`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Date not in YYYY-MM-DD form
	reqBody := models.CreateReservationRequest{
		Date:     "29/08/2026",
		GameType: "1_2_300_max",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ = http.NewRequest("POST", "/api/reservations", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservationRequiresCaller(t *testing.T) {
	r := setupRouter()

	reqBody := models.CreateReservationRequest{
		Date:     "2026-08-29",
		GameType: "1_2_300_max",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/api/reservations", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTransitionValidation(t *testing.T) {
	r := setupRouter()

	for _, path := range []string{
		"/api/reservations/seat",
		"/api/reservations/leave",
		"/api/reservations/remove",
	} {
		req, _ := http.NewRequest("PATCH", path, bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestSessionGamesDateValidation(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("GET", "/api/sessions/tomorrow/games", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameQueryValidation(t *testing.T) {
	r := setupRouter()

	for _, path := range []string{
		"/api/games/waitlist",
		"/api/games/current",
		"/api/games/stats",
	} {
		// game_type is mandatory
		req, _ := http.NewRequest("GET", path+"?date=2026-08-29", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)

		// Date must parse when supplied
		req, _ = http.NewRequest("GET", path+"?date=yesterday&game_type=1_2_300_max", nil)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestReservationStatusRequiresCaller(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("GET", "/api/reservations/status?date=2026-08-29&game_type=1_2_300_max", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
