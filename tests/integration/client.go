package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"railbird/internal/models"
)

// TestClient provides methods for testing the API. Credentials select the
// access class: a floor account exercises staff endpoints, a player account
// the public ones.
type TestClient struct {
	BaseURL    string
	Email      string
	Password   string
	HTTPClient *http.Client
}

// NewTestClient creates a new test client
func NewTestClient(baseURL, email, password string) *TestClient {
	return &TestClient{
		BaseURL:  baseURL,
		Email:    email,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.Email, c.Password)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

// TodaySession fetches the current logical game day with its offerings
func (c *TestClient) TodaySession(t *testing.T) *models.SessionGamesResponse {
	resp := c.makeRequest(t, "GET", "/api/sessions/today", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var session models.SessionGamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("Failed to decode session response: %v", err)
	}

	return &session
}

// SessionGames fetches the offerings for a specific game date
func (c *TestClient) SessionGames(t *testing.T, date string) *models.SessionGamesResponse {
	resp := c.makeRequest(t, "GET", "/api/sessions/"+date+"/games", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var session models.SessionGamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("Failed to decode session response: %v", err)
	}

	return &session
}

// Tournaments fetches the upcoming tournament schedule
func (c *TestClient) Tournaments(t *testing.T) models.ListTournamentsResponse {
	resp := c.makeRequest(t, "GET", "/api/tournaments", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var tournaments models.ListTournamentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tournaments); err != nil {
		t.Fatalf("Failed to decode tournaments response: %v", err)
	}

	return tournaments
}

// CreateReservation joins a waiting list
func (c *TestClient) CreateReservation(t *testing.T, req models.CreateReservationRequest) *models.CreateReservationResponse {
	resp := c.makeRequest(t, "POST", "/api/reservations", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var reservation models.CreateReservationResponse
	if err := json.NewDecoder(resp.Body).Decode(&reservation); err != nil {
		t.Fatalf("Failed to decode reservation response: %v", err)
	}

	return &reservation
}

// CreateReservationExpectStatus joins a waiting list expecting a specific status
func (c *TestClient) CreateReservationExpectStatus(t *testing.T, req models.CreateReservationRequest, expected int) {
	resp := c.makeRequest(t, "POST", "/api/reservations", req)
	defer resp.Body.Close()

	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(body))
	}
}

// ReservationStatus checks whether the caller holds an active spot
func (c *TestClient) ReservationStatus(t *testing.T, date, gameType string) bool {
	path := fmt.Sprintf("/api/reservations/status?date=%s&game_type=%s", date, gameType)
	resp := c.makeRequest(t, "GET", path, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var status models.ReservationStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode status response: %v", err)
	}

	return status.Reserved
}

// Transition moves a reservation through seat, leave or remove
func (c *TestClient) Transition(t *testing.T, action string, reservationID int64) {
	req := models.TransitionReservationRequest{ReservationID: reservationID}

	resp := c.makeRequest(t, "PATCH", "/api/reservations/"+action, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}
}

// TransitionExpectStatus moves a reservation expecting a specific status
func (c *TestClient) TransitionExpectStatus(t *testing.T, action string, reservationID int64, expected int) {
	req := models.TransitionReservationRequest{ReservationID: reservationID}

	resp := c.makeRequest(t, "PATCH", "/api/reservations/"+action, req)
	defer resp.Body.Close()

	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(body))
	}
}

// Waitlist fetches the waiting list for a game (floor staff only)
func (c *TestClient) Waitlist(t *testing.T, date, gameType string) *models.WaitlistResponse {
	path := fmt.Sprintf("/api/games/waitlist?date=%s&game_type=%s", date, gameType)
	resp := c.makeRequest(t, "GET", path, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var waitlist models.WaitlistResponse
	if err := json.NewDecoder(resp.Body).Decode(&waitlist); err != nil {
		t.Fatalf("Failed to decode waitlist response: %v", err)
	}

	return &waitlist
}

// CurrentList fetches the seated/left list for a game (floor staff only)
func (c *TestClient) CurrentList(t *testing.T, date, gameType string) *models.CurrentListResponse {
	path := fmt.Sprintf("/api/games/current?date=%s&game_type=%s", date, gameType)
	resp := c.makeRequest(t, "GET", path, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var current models.CurrentListResponse
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		t.Fatalf("Failed to decode current list response: %v", err)
	}

	return &current
}

// Stats fetches queue statistics for a game
func (c *TestClient) Stats(t *testing.T, date, gameType string) *models.GameStats {
	path := fmt.Sprintf("/api/games/stats?date=%s&game_type=%s", date, gameType)
	resp := c.makeRequest(t, "GET", path, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var stats models.GameStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("Failed to decode stats response: %v", err)
	}

	return &stats
}

// ExpectForbidden asserts that a GET endpoint rejects the caller
func (c *TestClient) ExpectForbidden(t *testing.T, path string) {
	resp := c.makeRequest(t, "GET", path, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("Expected status 403, got %d", resp.StatusCode)
	}
}

// HealthCheck checks if the API is healthy
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Health check failed with status %d", resp.StatusCode)
	}
}
