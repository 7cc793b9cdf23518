package waitlist

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codr1/courtslots/internal/booking"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
	"github.com/codr1/courtslots/internal/testutil"
	"github.com/codr1/courtslots/internal/waitlist"
)

func setup(t *testing.T, slotsPerCourt int) (dbgen.RecurringPeriod, []dbgen.Slot) {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewClock(time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC))
	engine, err := booking.NewEngine(database, booking.WithClock(clock), booking.WithLocation(time.UTC), booking.WithPhoneRegion("US"))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	m, err := waitlist.NewManager(database, engine)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	manager = m
	t.Cleanup(func() { manager = nil })

	courts := testutil.SeedCourts(t, database, 1)
	return testutil.SeedPeriod(t, database, 4, "19:00", "20:00", []int64{courts[0].ID}, slotsPerCourt)
}

func serve(handler http.HandlerFunc, method, body string, pathID int64) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
	}
	if pathID != 0 {
		req.SetPathValue("id", fmt.Sprint(pathID))
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func join(t *testing.T, periodID int64, email string) dbgen.WaitlistEntry {
	t.Helper()
	body := fmt.Sprintf(`{"period_id":%d,"first_name":"Ben","last_name":"Ruiz","email":%q}`, periodID, email)
	rec := serve(HandleWaitlistJoin, http.MethodPost, body, 0)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var entry dbgen.WaitlistEntry
	if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return entry
}

func TestWaitlistJoinListPromote(t *testing.T) {
	period, slots := setup(t, 1)

	first := join(t, period.ID, "ben@example.com")
	second := join(t, period.ID, "cleo@example.com")

	rec := serve(HandleWaitlistList, http.MethodGet, "", period.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var listing struct {
		Entries []dbgen.WaitlistEntry `json:"entries"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listing.Entries) != 2 || listing.Entries[0].ID != first.ID {
		t.Fatalf("expected FIFO listing, got %+v", listing.Entries)
	}

	rec = serve(HandleWaitlistPromote, http.MethodPost, "", first.ID)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var promoted promotionResponse
	if err := json.NewDecoder(rec.Body).Decode(&promoted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if promoted.SlotID != slots[0].ID || promoted.AccessCode == "" || promoted.CancellationCode == "" {
		t.Fatalf("unexpected promotion %+v", promoted)
	}

	rec = serve(HandleWaitlistPromote, http.MethodPost, "", first.ID)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for processed entry, got %d", rec.Code)
	}

	rec = serve(HandleWaitlistPromote, http.MethodPost, "", second.ID)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 with no free slot, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no_slot_available") {
		t.Fatalf("expected no_slot_available, got %s", rec.Body.String())
	}
}

func TestWaitlistJoinValidation(t *testing.T) {
	period, _ := setup(t, 1)

	rec := serve(HandleWaitlistJoin, http.MethodPost, `{"period_id":0,"first_name":"A","last_name":"B","email":"a@example.com"}`, 0)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = serve(HandleWaitlistJoin, http.MethodPost, `{"period_id":999,"first_name":"A","last_name":"B","email":"a@example.com"}`, 0)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown period, got %d", rec.Code)
	}

	body := fmt.Sprintf(`{"period_id":%d,"first_name":"","last_name":"B","email":"a@example.com"}`, period.ID)
	rec = serve(HandleWaitlistJoin, http.MethodPost, body, 0)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", rec.Code)
	}
}

func TestWaitlistRemove(t *testing.T) {
	period, _ := setup(t, 1)
	entry := join(t, period.ID, "ben@example.com")

	rec := serve(HandleWaitlistRemove, http.MethodDelete, "", entry.ID)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = serve(HandleWaitlistRemove, http.MethodDelete, "", entry.ID)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
