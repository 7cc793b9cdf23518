package reports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codr1/courtslots/internal/booking"
	"github.com/codr1/courtslots/internal/players"
	"github.com/codr1/courtslots/internal/testutil"
)

func TestHandleReportCSV(t *testing.T) {
	database := testutil.NewTestDB(t)
	engine, err := booking.NewEngine(database, booking.WithLocation(time.UTC), booking.WithPhoneRegion("US"))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	courts := testutil.SeedCourts(t, database, 1)
	_, slots := testutil.SeedPeriod(t, database, 2, "18:00", "19:30", []int64{courts[0].ID}, 2)
	if _, err := engine.CreateBooking(context.Background(), slots[0].ID, players.Contact{FirstName: "Ana", LastName: "Diaz", Email: "ana@example.com"}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	source = database.Queries
	now = func() time.Time { return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		source = nil
		now = time.Now
	})

	rec := httptest.NewRecorder()
	HandleReportCSV(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/report.csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "occupancy-2026-03-02.csv") {
		t.Fatalf("unexpected content disposition %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[1], "Ana Diaz") || !strings.Contains(lines[1], "registered") {
		t.Fatalf("expected booked row first, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Tuesday,18:00-19:30") {
		t.Fatalf("unexpected free row %q", lines[2])
	}
}
