package periods

import (
	"context"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/booking"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

type OverrideView struct {
	Date  string `json:"date"`
	State string `json:"state"`
}

type SlotView struct {
	ID             int64             `json:"id"`
	CourtID        int64             `json:"court_id"`
	CourtNumber    int64             `json:"court_number"`
	OrderIndex     int64             `json:"order_index"`
	State          string            `json:"state"`
	TodayOverride  string            `json:"today_override,omitempty"`
	EffectiveToday string            `json:"effective_today"`
	Occupant       *booking.Occupant `json:"occupant,omitempty"`
	Upcoming       []OverrideView    `json:"upcoming_overrides"`
}

type PeriodView struct {
	ID              int64           `json:"id"`
	Weekday         int64           `json:"weekday"`
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	Category        *dbgen.Category `json:"category,omitempty"`
	Slots           []SlotView      `json:"slots"`
	PendingWaitlist int64           `json:"pending_waitlist"`
}

// ListActive returns every active period with its slots in order-index order.
// Each slot carries today's effective state and its overrides from today on.
func (s *Service) ListActive(ctx context.Context) ([]PeriodView, error) {
	q := s.db.Queries
	today := s.engine.Today()

	periods, err := q.ListActivePeriods(ctx)
	if err != nil {
		return nil, apperr.Internal("list active periods", err)
	}
	slots, err := q.ListSlotsForActivePeriods(ctx)
	if err != nil {
		return nil, apperr.Internal("list slots", err)
	}
	occupantRows, err := q.ListOccupantsForActivePeriods(ctx)
	if err != nil {
		return nil, apperr.Internal("list occupants", err)
	}
	overrides, err := q.ListDailyOverridesFrom(ctx, today)
	if err != nil {
		return nil, apperr.Internal("list overrides", err)
	}
	pending, err := q.CountPendingWaitlistByPeriod(ctx)
	if err != nil {
		return nil, apperr.Internal("count waitlist", err)
	}
	categories, err := q.ListActiveCategories(ctx)
	if err != nil {
		return nil, apperr.Internal("list categories", err)
	}

	occupants := make(map[int64]booking.Occupant, len(occupantRows))
	for _, row := range occupantRows {
		occupants[row.SlotID] = booking.OccupantOf(row.PlayerID, row.FirstName, row.LastName)
	}
	upcoming := make(map[int64][]OverrideView)
	todayState := make(map[int64]string)
	for _, o := range overrides {
		upcoming[o.SlotID] = append(upcoming[o.SlotID], OverrideView{Date: o.ServiceDate, State: o.State})
		if o.ServiceDate == today {
			todayState[o.SlotID] = o.State
		}
	}
	pendingByPeriod := make(map[int64]int64, len(pending))
	for _, row := range pending {
		pendingByPeriod[row.PeriodID] = row.PendingCount
	}
	categoryByID := make(map[int64]dbgen.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	slotsByPeriod := make(map[int64][]SlotView, len(periods))
	for _, slot := range slots {
		view := SlotView{
			ID:             slot.ID,
			CourtID:        slot.CourtID,
			CourtNumber:    slot.CourtNumber,
			OrderIndex:     slot.OrderIndex,
			State:          slot.State,
			TodayOverride:  todayState[slot.ID],
			EffectiveToday: booking.Effective(slot.State, todayState[slot.ID]),
			Upcoming:       upcoming[slot.ID],
		}
		if view.Upcoming == nil {
			view.Upcoming = []OverrideView{}
		}
		if occupant, ok := occupants[slot.ID]; ok {
			view.Occupant = &occupant
		}
		slotsByPeriod[slot.PeriodID] = append(slotsByPeriod[slot.PeriodID], view)
	}

	views := make([]PeriodView, 0, len(periods))
	for _, p := range periods {
		view := PeriodView{
			ID:              p.ID,
			Weekday:         p.Weekday,
			StartTime:       p.StartTime,
			EndTime:         p.EndTime,
			Slots:           slotsByPeriod[p.ID],
			PendingWaitlist: pendingByPeriod[p.ID],
		}
		if view.Slots == nil {
			view.Slots = []SlotView{}
		}
		if p.CategoryID.Valid {
			if c, ok := categoryByID[p.CategoryID.Int64]; ok {
				view.Category = &c
			}
		}
		views = append(views, view)
	}
	return views, nil
}
