package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codr1/courtslots/internal/api/auth"
	"github.com/codr1/courtslots/internal/config"
	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
	"github.com/codr1/courtslots/internal/ratelimit"
)

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func (c *client) expect(method, path string, body any, status int, out any) {
	c.t.Helper()
	got, data := c.do(method, path, body)
	if got != status {
		c.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, status, got, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			c.t.Fatalf("%s %s: decode: %v (%s)", method, path, err, data)
		}
	}
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(fmt.Sprintf(`app:
  name: "courtslots"
  environment: "test"
  port: 8080
  timezone: "UTC"
  phone_region: "US"
database:
  driver: "sqlite"
  filename: %q
rate_limits:
  join_waitlist:
    max: 50
    window_seconds: 60
`, filepath.Join(t.TempDir(), "db", "server.db"))))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.App.SecretKey = "server-test-secret-0123456789"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	return cfg
}

// TestServerFlow drives the public and admin surface end to end. Handler
// packages keep process-wide state, so the whole flow lives in one test.
func TestServerFlow(t *testing.T) {
	cfg := newTestConfig(t)
	database, err := db.NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	hash, err := auth.HashPassword("desk-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := database.Queries.UpsertAdmin(ctx, dbgen.UpsertAdminParams{Username: "desk", PasswordHash: hash}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := database.Queries.UpsertCourt(ctx, 1); err != nil {
		t.Fatalf("seed court: %v", err)
	}
	court, err := database.Queries.GetCourtByNumber(ctx, 1)
	if err != nil {
		t.Fatalf("load court: %v", err)
	}

	limiter := ratelimit.New(limiterConfig(cfg))
	t.Cleanup(limiter.Close)

	handler, err := newHandler(cfg, database, limiter)
	if err != nil {
		t.Fatalf("newHandler: %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := &client{t: t, base: srv.URL}

	status, body := c.do(http.MethodGet, "/health", nil)
	if status != http.StatusOK || string(body) != "OK" {
		t.Fatalf("health: %d %s", status, body)
	}

	createPeriod := map[string]any{
		"weekday":         3,
		"start_time":      "19:00",
		"end_time":        "20:30",
		"court_ids":       []int64{court.ID},
		"slots_per_court": 2,
	}
	c.expect(http.MethodPost, "/api/v1/admin/periods", createPeriod, http.StatusUnauthorized, nil)

	var login struct {
		Token string `json:"token"`
	}
	c.expect(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "desk", "password": "desk-password"}, http.StatusOK, &login)
	admin := &client{t: t, base: srv.URL, token: login.Token}

	var period struct {
		ID    int64 `json:"id"`
		Slots []struct {
			ID int64 `json:"id"`
		} `json:"slots"`
	}
	admin.expect(http.MethodPost, "/api/v1/admin/periods", createPeriod, http.StatusCreated, &period)
	if len(period.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(period.Slots))
	}

	var booked struct {
		BookingID        int64  `json:"booking_id"`
		CancellationCode string `json:"cancellation_code"`
	}
	c.expect(http.MethodPost, "/api/v1/bookings", map[string]any{
		"slot_id":    period.Slots[0].ID,
		"first_name": "Ana",
		"last_name":  "Diaz",
		"email":      "ana@example.com",
	}, http.StatusCreated, &booked)

	var listing struct {
		Periods []struct {
			ID    int64 `json:"id"`
			Slots []struct {
				ID             int64  `json:"id"`
				EffectiveToday string `json:"effective_today"`
			} `json:"slots"`
		} `json:"periods"`
	}
	c.expect(http.MethodGet, "/api/v1/periods", nil, http.StatusOK, &listing)
	if len(listing.Periods) != 1 || listing.Periods[0].Slots[0].EffectiveToday != "OCCUPIED" {
		t.Fatalf("unexpected listing %+v", listing)
	}

	var entry struct {
		ID int64 `json:"id"`
	}
	c.expect(http.MethodPost, "/api/v1/waitlist", map[string]any{
		"period_id":  period.ID,
		"first_name": "Ben",
		"last_name":  "Ruiz",
		"email":      "ben@example.com",
	}, http.StatusCreated, &entry)

	c.expect(http.MethodPost, fmt.Sprintf("/api/v1/admin/waitlist/%d/promote", entry.ID), nil, http.StatusUnauthorized, nil)
	var promoted struct {
		SlotID int64  `json:"slot_id"`
		State  string `json:"state"`
	}
	admin.expect(http.MethodPost, fmt.Sprintf("/api/v1/admin/waitlist/%d/promote", entry.ID), nil, http.StatusCreated, &promoted)
	if promoted.SlotID != period.Slots[1].ID || promoted.State != "ASSIGNED" {
		t.Fatalf("unexpected promotion %+v", promoted)
	}

	status, body = admin.do(http.MethodGet, "/api/v1/admin/report.csv", nil)
	if status != http.StatusOK {
		t.Fatalf("report: %d %s", status, body)
	}
	if lines := strings.Count(strings.TrimSpace(string(body)), "\n"); lines != 2 {
		t.Fatalf("expected header plus 2 rows, got %d newlines: %s", lines, body)
	}

	var players struct {
		Players []struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"players"`
	}
	admin.expect(http.MethodGet, "/api/v1/admin/players", nil, http.StatusOK, &players)
	if len(players.Players) != 2 {
		t.Fatalf("expected 2 players, got %+v", players)
	}

	c.expect(http.MethodPost, "/api/v1/bookings/cancel", map[string]string{"code": booked.CancellationCode}, http.StatusOK, nil)

	admin.expect(http.MethodDelete, fmt.Sprintf("/api/v1/admin/periods/%d", period.ID), nil, http.StatusConflict, nil)
	admin.expect(http.MethodDelete, fmt.Sprintf("/api/v1/admin/periods/%d?force=true", period.ID), nil, http.StatusOK, nil)

	c.expect(http.MethodGet, "/api/v1/periods", nil, http.StatusOK, &listing)
	if len(listing.Periods) != 0 {
		t.Fatalf("archived period still listed: %+v", listing)
	}

	admin.expect(http.MethodPost, fmt.Sprintf("/api/v1/admin/periods/%d/restore", period.ID), nil, http.StatusOK, nil)
	admin.expect(http.MethodDelete, fmt.Sprintf("/api/v1/admin/periods/%d?hard=true", period.ID), nil, http.StatusOK, nil)
	admin.expect(http.MethodPost, fmt.Sprintf("/api/v1/admin/periods/%d/restore", period.ID), nil, http.StatusNotFound, nil)
}
