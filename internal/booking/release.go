package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
	"github.com/codr1/courtslots/internal/players"
)

// ReleaseForToday frees the caller's permanently booked slot for today only.
func (e *Engine) ReleaseForToday(ctx context.Context, slotID int64, accessCode string) (dbgen.DailyOverride, error) {
	return e.ReleaseForDate(ctx, slotID, accessCode, e.Today())
}

// ReleaseForDate frees the caller's slot for one date (today or later) on
// which the period meets. The booking itself is untouched.
func (e *Engine) ReleaseForDate(ctx context.Context, slotID int64, accessCode, date string) (dbgen.DailyOverride, error) {
	serviceDate, err := e.ParseServiceDate(date)
	if err != nil {
		return dbgen.DailyOverride{}, err
	}
	now := e.clock.Now()

	var override dbgen.DailyOverride
	err = e.RunInTx(ctx, func(txdb *db.DB) error {
		player, err := players.Authenticate(ctx, txdb.Queries, accessCode)
		if err != nil {
			return err
		}
		_, period, err := loadActiveSlotPeriod(ctx, txdb.Queries, slotID)
		if err != nil {
			return err
		}
		if err := checkWeekday(period, serviceDate); err != nil {
			return err
		}

		booking, err := txdb.Queries.GetBookingBySlot(ctx, slotID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrNotOwner
		}
		if err != nil {
			return apperr.Internal("get booking by slot", err)
		}
		if !booking.PlayerID.Valid || booking.PlayerID.Int64 != player.ID {
			return apperr.ErrNotOwner
		}

		override, err = insertOverride(ctx, txdb.Queries, dbgen.CreateDailyOverrideParams{
			SlotID:      slotID,
			ServiceDate: serviceDate,
			State:       OverrideFree,
			Origin:      OriginPlayer,
			CreatedAt:   now.UTC(),
		})
		return err
	})

	logger := log.Ctx(ctx).With().
		Str("component", "booking_engine").
		Int64("slot_id", slotID).
		Str("service_date", serviceDate).
		Logger()
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			logger.Error().Err(err).Msg("Failed to release slot for date")
		}
		return dbgen.DailyOverride{}, err
	}
	logger.Info().Int64("override_id", override.ID).Msg("Slot released for date")
	return override, nil
}

// checkWeekday rejects dates on which the period does not meet.
func checkWeekday(period dbgen.RecurringPeriod, serviceDate string) error {
	day, err := time.Parse(DateLayout, serviceDate)
	if err != nil {
		return apperr.InvalidFields("invalid date", map[string]string{"date": "must be YYYY-MM-DD"})
	}
	if int64(day.Weekday()) != period.Weekday {
		return apperr.InvalidFields("date is not a class day", map[string]string{
			"date": fmt.Sprintf("must fall on a %s", time.Weekday(period.Weekday)),
		})
	}
	return nil
}

// insertOverride creates the single override allowed for (slot, date).
func insertOverride(ctx context.Context, q *dbgen.Queries, params dbgen.CreateDailyOverrideParams) (dbgen.DailyOverride, error) {
	if _, found, err := getOverride(ctx, q, params.SlotID, params.ServiceDate); err != nil {
		return dbgen.DailyOverride{}, err
	} else if found {
		return dbgen.DailyOverride{}, apperr.ErrAlreadyOverridden
	}

	if _, err := q.CreateDailyOverride(ctx, params); err != nil {
		if db.IsUniqueViolation(err) {
			return dbgen.DailyOverride{}, apperr.ErrAlreadyOverridden
		}
		return dbgen.DailyOverride{}, apperr.Internal("create override", err)
	}

	override, err := q.GetDailyOverride(ctx, dbgen.GetDailyOverrideParams{
		SlotID:      params.SlotID,
		ServiceDate: params.ServiceDate,
	})
	if err != nil {
		return dbgen.DailyOverride{}, apperr.Internal("get created override", err)
	}
	return override, nil
}
