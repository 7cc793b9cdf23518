package booking

import (
	"context"

	"github.com/codr1/courtslots/internal/apperr"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
	"github.com/codr1/courtslots/internal/players"
)

// PlayerBooking is one of a player's permanent bookings with today's override.
type PlayerBooking struct {
	BookingID   int64  `json:"booking_id"`
	SlotID      int64  `json:"slot_id"`
	PeriodID    int64  `json:"period_id"`
	Weekday     int64  `json:"weekday"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CourtNumber int64  `json:"court_number"`
	OrderIndex  int64  `json:"order_index"`
	TodayState  string `json:"today_state"`
}

type PlayerSession struct {
	Player   dbgen.Player    `json:"player"`
	Today    string          `json:"today"`
	Bookings []PlayerBooking `json:"bookings"`
}

// PlayerLogin resolves an access code and lists the player's bookings on
// active periods. TodayState is OverrideNone when nothing overrides today.
func (e *Engine) PlayerLogin(ctx context.Context, accessCode string) (PlayerSession, error) {
	q := e.db.Queries
	player, err := players.Authenticate(ctx, q, accessCode)
	if err != nil {
		return PlayerSession{}, err
	}

	rows, err := q.ListActiveBookingsByPlayer(ctx, nullID(player.ID))
	if err != nil {
		return PlayerSession{}, apperr.Internal("list player bookings", err)
	}

	today := e.Today()
	session := PlayerSession{Player: player, Today: today, Bookings: make([]PlayerBooking, 0, len(rows))}
	for _, row := range rows {
		state := OverrideNone
		override, found, err := getOverride(ctx, q, row.SlotID, today)
		if err != nil {
			return PlayerSession{}, err
		}
		if found {
			state = override.State
		}
		session.Bookings = append(session.Bookings, PlayerBooking{
			BookingID:   row.BookingID,
			SlotID:      row.SlotID,
			PeriodID:    row.PeriodID,
			Weekday:     row.Weekday,
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
			CourtNumber: row.CourtNumber,
			OrderIndex:  row.OrderIndex,
			TodayState:  state,
		})
	}
	return session, nil
}
