package periods

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/booking"
	"github.com/codr1/courtslots/internal/db"
	"github.com/codr1/courtslots/internal/players"
	"github.com/codr1/courtslots/internal/testutil"
	"github.com/codr1/courtslots/internal/waitlist"
)

type fixture struct {
	service *Service
	engine  *booking.Engine
	db      *db.DB
	courts  []int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	engine, err := booking.NewEngine(database, booking.WithClock(clock))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	service, err := NewService(database, engine)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	var courtIDs []int64
	for _, c := range testutil.SeedCourts(t, database, 1, 2, 3) {
		courtIDs = append(courtIDs, c.ID)
	}
	return fixture{service: service, engine: engine, db: database, courts: courtIDs}
}

func contact(email string) players.Contact {
	return players.Contact{FirstName: "Pat", LastName: "Doe", Email: email}
}

func TestCreatePeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	period, slots, err := f.service.Create(ctx, CreateInput{
		Weekday:       1,
		StartTime:     "18:00",
		EndTime:       "19:30",
		CourtIDs:      []int64{f.courts[0]},
		SlotsPerCourt: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !period.Active || period.StartTime != "18:00" || period.EndTime != "19:30" {
		t.Fatalf("unexpected period %+v", period)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	for i, slot := range slots {
		if slot.State != booking.SlotFree || slot.OrderIndex != int64(i+1) {
			t.Fatalf("unexpected slot %+v", slot)
		}
	}
}

func TestCreatePeriodValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{"bad weekday", CreateInput{Weekday: 7, StartTime: "18:00", EndTime: "19:00", CourtIDs: f.courts[:1], SlotsPerCourt: 1}, "weekday"},
		{"no courts", CreateInput{Weekday: 1, StartTime: "18:00", EndTime: "19:00", SlotsPerCourt: 1}, "court_ids"},
		{"duplicate courts", CreateInput{Weekday: 1, StartTime: "18:00", EndTime: "19:00", CourtIDs: []int64{f.courts[0], f.courts[0]}, SlotsPerCourt: 1}, "court_ids"},
		{"unknown court", CreateInput{Weekday: 1, StartTime: "18:00", EndTime: "19:00", CourtIDs: []int64{999}, SlotsPerCourt: 1}, "court_ids"},
		{"zero slots", CreateInput{Weekday: 1, StartTime: "18:00", EndTime: "19:00", CourtIDs: f.courts[:1], SlotsPerCourt: 0}, "slots_per_court"},
		{"end before start", CreateInput{Weekday: 1, StartTime: "19:00", EndTime: "18:00", CourtIDs: f.courts[:1], SlotsPerCourt: 1}, "end_time"},
		{"unknown category", CreateInput{Weekday: 1, StartTime: "18:00", EndTime: "19:00", CourtIDs: f.courts[:1], SlotsPerCourt: 1, CategoryID: ptr(int64(77))}, "category_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.service.Create(ctx, tc.in)
			if !errors.Is(err, apperr.ErrInvalid) {
				t.Fatalf("expected invalid, got %v", err)
			}
			if _, ok := apperr.FieldsOf(err)[tc.field]; !ok {
				t.Fatalf("expected field %q, got %v", tc.field, apperr.FieldsOf(err))
			}
		})
	}
}

func TestArchiveRestoreDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	period, slots, err := f.service.Create(ctx, CreateInput{
		Weekday: 2, StartTime: "20:00", EndTime: "21:00", CourtIDs: f.courts[:1], SlotsPerCourt: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.engine.CreateBooking(ctx, slots[0].ID, contact("a@test.com")); err != nil {
		t.Fatalf("book: %v", err)
	}

	err = f.service.Archive(ctx, period.ID, false)
	if !errors.Is(err, apperr.ErrSlotOccupied) {
		t.Fatalf("expected slot occupied, got %v", err)
	}
	if err := f.service.Archive(ctx, period.ID, true); err != nil {
		t.Fatalf("force archive: %v", err)
	}

	views, err := f.service.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("archived period must not be listed, got %d", len(views))
	}

	restored, err := f.service.Restore(ctx, period.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored.Active {
		t.Fatal("expected restored period active")
	}
	if _, err := f.db.Queries.GetBookingBySlot(ctx, slots[0].ID); err != nil {
		t.Fatalf("archive must keep bookings: %v", err)
	}

	if err := f.service.Delete(ctx, period.ID, false); !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected invalid without hard flag, got %v", err)
	}
	if err := f.service.Delete(ctx, period.ID, true); err != nil {
		t.Fatalf("hard delete: %v", err)
	}
	if _, err := f.db.Queries.GetSlot(ctx, slots[0].ID); err == nil {
		t.Fatal("expected slots cascaded away")
	}
	if err := f.service.Delete(ctx, period.ID, true); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.service.Restore(ctx, period.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on restore, got %v", err)
	}
	if err := f.service.Archive(ctx, period.ID, false); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on archive, got %v", err)
	}
}

func TestListActiveComputesEffectiveToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := testutil.SeedCategory(t, f.db, "M", "5", "standard")

	period, slots, err := f.service.Create(ctx, CreateInput{
		Weekday: 1, StartTime: "18:00", EndTime: "19:30", CategoryID: &category.ID,
		CourtIDs: f.courts[:2], SlotsPerCourt: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	owner, err := f.engine.CreateBooking(ctx, slots[0].ID, contact("owner@test.com"))
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := f.engine.ReleaseForToday(ctx, slots[0].ID, owner.Player.AccessCode); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := f.engine.ReleaseForDate(ctx, slots[0].ID, owner.Player.AccessCode, "2026-03-09"); err != nil {
		t.Fatalf("release next week: %v", err)
	}

	manager, err := waitlist.NewManager(f.db, f.engine)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	if _, err := manager.Join(ctx, period.ID, contact("wait@test.com")); err != nil {
		t.Fatalf("join: %v", err)
	}

	views, err := f.service.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 period, got %d", len(views))
	}
	view := views[0]
	if view.Category == nil || view.Category.ID != category.ID {
		t.Fatalf("expected category on view, got %+v", view.Category)
	}
	if view.PendingWaitlist != 1 {
		t.Fatalf("expected 1 pending, got %d", view.PendingWaitlist)
	}
	if len(view.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(view.Slots))
	}

	released := view.Slots[0]
	if released.State != booking.SlotOccupied || released.EffectiveToday != booking.OverrideFree {
		t.Fatalf("expected OCCUPIED base with FREE today, got %+v", released)
	}
	if released.Occupant == nil || released.Occupant.Name != "Pat Doe" || !released.Occupant.IsRegistered() {
		t.Fatalf("unexpected occupant %+v", released.Occupant)
	}
	if len(released.Upcoming) != 2 || released.Upcoming[1].Date != "2026-03-09" {
		t.Fatalf("unexpected upcoming overrides %+v", released.Upcoming)
	}

	free := view.Slots[1]
	if free.EffectiveToday != booking.SlotFree || free.Occupant != nil || free.TodayOverride != "" {
		t.Fatalf("unexpected free slot view %+v", free)
	}
}

func TestCatalogue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedCategory(t, f.db, "F", "3", "standard")
	testutil.SeedCategory(t, f.db, "D", "1", "standard")

	courts, err := f.service.ListCourts(ctx)
	if err != nil || len(courts) != 3 || courts[0].Number != 1 {
		t.Fatalf("unexpected courts %v %+v", err, courts)
	}
	categories, err := f.service.ListCategories(ctx)
	if err != nil || len(categories) != 2 || categories[0].Gender != "D" {
		t.Fatalf("unexpected categories %v %+v", err, categories)
	}
}

func ptr[T any](v T) *T {
	return &v
}
