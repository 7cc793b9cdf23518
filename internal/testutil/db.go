package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// SeedCourts inserts courts with the given numbers and returns them in order.
func SeedCourts(t *testing.T, database *db.DB, numbers ...int64) []dbgen.Court {
	t.Helper()

	ctx := context.Background()
	courts := make([]dbgen.Court, 0, len(numbers))
	for _, number := range numbers {
		if err := database.Queries.UpsertCourt(ctx, number); err != nil {
			t.Fatalf("seed court %d: %v", number, err)
		}
		court, err := database.Queries.GetCourtByNumber(ctx, number)
		if err != nil {
			t.Fatalf("load court %d: %v", number, err)
		}
		courts = append(courts, court)
	}
	return courts
}

// SeedCategory inserts an active category.
func SeedCategory(t *testing.T, database *db.DB, gender, level, kind string) dbgen.Category {
	t.Helper()

	ctx := context.Background()
	err := database.Queries.UpsertCategory(ctx, dbgen.UpsertCategoryParams{Gender: gender, Level: level, Kind: kind})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	categories, err := database.Queries.ListActiveCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	for _, c := range categories {
		if c.Gender == gender && c.Level == level && c.Kind == kind {
			return c
		}
	}
	t.Fatalf("seeded category %s/%s/%s not found", gender, level, kind)
	return dbgen.Category{}
}

// SeedPeriod creates an active period with slotsPerCourt FREE slots per court,
// bypassing the period service. Slots are returned ordered by order index.
func SeedPeriod(t *testing.T, database *db.DB, weekday int64, start, end string, courtIDs []int64, slotsPerCourt int) (dbgen.RecurringPeriod, []dbgen.Slot) {
	t.Helper()
	return seedPeriod(t, database, sql.NullInt64{}, weekday, start, end, courtIDs, slotsPerCourt)
}

// SeedPeriodInCategory is SeedPeriod for a period restricted to categoryID.
func SeedPeriodInCategory(t *testing.T, database *db.DB, categoryID int64, weekday int64, start, end string, courtIDs []int64, slotsPerCourt int) (dbgen.RecurringPeriod, []dbgen.Slot) {
	t.Helper()
	return seedPeriod(t, database, sql.NullInt64{Int64: categoryID, Valid: true}, weekday, start, end, courtIDs, slotsPerCourt)
}

func seedPeriod(t *testing.T, database *db.DB, categoryID sql.NullInt64, weekday int64, start, end string, courtIDs []int64, slotsPerCourt int) (dbgen.RecurringPeriod, []dbgen.Slot) {
	t.Helper()

	ctx := context.Background()
	periodID, err := database.Queries.CreatePeriod(ctx, dbgen.CreatePeriodParams{
		Weekday:    weekday,
		StartTime:  start,
		EndTime:    end,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed period: %v", err)
	}
	for _, courtID := range courtIDs {
		for i := 1; i <= slotsPerCourt; i++ {
			_, err := database.Queries.CreateSlot(ctx, dbgen.CreateSlotParams{
				PeriodID:   periodID,
				CourtID:    courtID,
				OrderIndex: int64(i),
			})
			if err != nil {
				t.Fatalf("seed slot: %v", err)
			}
		}
	}

	period, err := database.Queries.GetPeriod(ctx, periodID)
	if err != nil {
		t.Fatalf("load period: %v", err)
	}
	slots, err := database.Queries.ListSlotsByPeriod(ctx, periodID)
	if err != nil {
		t.Fatalf("load slots: %v", err)
	}
	return period, slots
}

// MustSlot reloads a slot.
func MustSlot(t *testing.T, database *db.DB, id int64) dbgen.Slot {
	t.Helper()
	slot, err := database.Queries.GetSlot(context.Background(), id)
	if err != nil {
		t.Fatalf("get slot %d: %v", id, err)
	}
	return slot
}
