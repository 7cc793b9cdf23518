package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/codr1/courtslots/internal/booking"
	"github.com/codr1/courtslots/internal/players"
	"github.com/codr1/courtslots/internal/testutil"
)

func TestBuildAndWriteCSV(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	engine, err := booking.NewEngine(database, booking.WithClock(testutil.NewClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	courts := testutil.SeedCourts(t, database, 2, 1)
	category := testutil.SeedCategory(t, database, "F", "4", "competitive")
	_, tuesday := testutil.SeedPeriodInCategory(t, database, category.ID, 2, "19:00", "20:00", []int64{courts[1].ID}, 1)
	testutil.SeedPeriod(t, database, 1, "18:00", "19:30", []int64{courts[0].ID, courts[1].ID}, 1)

	if _, err := engine.CreateBooking(ctx, tuesday[0].ID, players.Contact{FirstName: "Ana", LastName: "Ruiz", Email: "ana@test.com"}); err != nil {
		t.Fatalf("book: %v", err)
	}

	rows, err := Build(ctx, database.Queries)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Day != "Monday" || rows[0].Court != 1 || rows[1].Court != 2 {
		t.Fatalf("unexpected ordering %+v", rows[:2])
	}
	if rows[0].Type != "" || rows[0].State != booking.SlotFree || rows[0].Category != "" {
		t.Fatalf("free slot must have no occupant: %+v", rows[0])
	}
	booked := rows[2]
	if booked.Day != "Tuesday" || booked.Player != "Ana Ruiz" || booked.Email != "ana@test.com" || booked.Type != string(booking.OccupantRegistered) {
		t.Fatalf("unexpected booked row %+v", booked)
	}
	if booked.Category != "F 4" {
		t.Fatalf("expected category label %q, got %q", "F 4", booked.Category)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 4 || records[0][0] != "day" || records[3][1] != "19:00-20:00" {
		t.Fatalf("unexpected csv %v", records)
	}
}
