package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

// AdminForceRelease removes the booking on slotID regardless of its age.
func (e *Engine) AdminForceRelease(ctx context.Context, slotID int64) (dbgen.Booking, error) {
	var booking dbgen.Booking
	err := e.RunInTx(ctx, func(txdb *db.DB) error {
		if _, err := loadSlot(ctx, txdb.Queries, slotID); err != nil {
			return err
		}
		var err error
		booking, err = txdb.Queries.GetBookingBySlot(ctx, slotID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("booking")
		}
		if err != nil {
			return apperr.Internal("get booking by slot", err)
		}
		return removeBooking(ctx, txdb.Queries, booking, e.Today())
	})
	if err != nil {
		logAdminFailure(ctx, err, "force_release", slotID)
		return dbgen.Booking{}, err
	}

	log.Ctx(ctx).Info().
		Str("component", "booking_engine").
		Int64("slot_id", slotID).
		Int64("booking_id", booking.ID).
		Msg("Admin force-released slot")
	return booking, nil
}

// AdminMove repoints a booking to a FREE target slot, freeing its source slot.
func (e *Engine) AdminMove(ctx context.Context, bookingID, targetSlotID int64) (dbgen.Booking, error) {
	var moved dbgen.Booking
	err := e.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		booking, err := q.GetBooking(ctx, bookingID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("booking")
		}
		if err != nil {
			return apperr.Internal("get booking", err)
		}

		target, err := loadActiveSlot(ctx, q, targetSlotID)
		if err != nil {
			return err
		}
		if target.State != SlotFree {
			return apperr.ErrTargetNotFree
		}

		source, err := loadSlot(ctx, q, booking.SlotID)
		if err != nil {
			return err
		}
		if source.PeriodID != target.PeriodID && booking.PlayerID.Valid {
			held, err := q.CountPlayerBookingsInPeriod(ctx, dbgen.CountPlayerBookingsInPeriodParams{
				PlayerID: booking.PlayerID,
				PeriodID: target.PeriodID,
			})
			if err != nil {
				return apperr.Internal("count player bookings", err)
			}
			if held > 0 {
				return apperr.ErrAlreadyBooked
			}
		}

		if err := dropReleases(ctx, q, source.ID, e.Today()); err != nil {
			return err
		}
		if err := transition(ctx, q, source.ID, SlotOccupied, SlotFree); err != nil {
			return err
		}
		if err := transition(ctx, q, target.ID, SlotFree, SlotOccupied); err != nil {
			return err
		}
		if _, err := q.MoveBooking(ctx, dbgen.MoveBookingParams{SlotID: target.ID, ID: booking.ID}); err != nil {
			if db.IsUniqueViolation(err) {
				return apperr.ErrConflict
			}
			return apperr.Internal("move booking", err)
		}

		moved, err = q.GetBooking(ctx, booking.ID)
		if err != nil {
			return apperr.Internal("get moved booking", err)
		}
		return nil
	})
	if err != nil {
		logAdminFailure(ctx, err, "move", targetSlotID)
		return dbgen.Booking{}, err
	}

	log.Ctx(ctx).Info().
		Str("component", "booking_engine").
		Int64("booking_id", bookingID).
		Int64("target_slot_id", targetSlotID).
		Msg("Admin moved booking")
	return moved, nil
}

// AdminSetSlotState blocks or unblocks a slot. Slots holding a booking cannot
// be changed here; release the booking first.
func (e *Engine) AdminSetSlotState(ctx context.Context, slotID int64, state string) (dbgen.Slot, error) {
	if state != SlotFree && state != SlotBlocked {
		return dbgen.Slot{}, apperr.InvalidFields("invalid slot state", map[string]string{"state": "must be FREE or BLOCKED"})
	}

	var slot dbgen.Slot
	err := e.RunInTx(ctx, func(txdb *db.DB) error {
		var err error
		slot, err = loadSlot(ctx, txdb.Queries, slotID)
		if err != nil {
			return err
		}

		_, err = txdb.Queries.GetBookingBySlot(ctx, slotID)
		if err == nil {
			return apperr.ErrSlotOccupied
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return apperr.Internal("get booking by slot", err)
		}

		if slot.State == state {
			return nil
		}
		if err := transition(ctx, txdb.Queries, slotID, slot.State, state); err != nil {
			return err
		}
		slot.State = state
		return nil
	})
	if err != nil {
		logAdminFailure(ctx, err, "set_state", slotID)
		return dbgen.Slot{}, err
	}

	log.Ctx(ctx).Info().
		Str("component", "booking_engine").
		Int64("slot_id", slotID).
		Str("state", state).
		Msg("Admin set slot state")
	return slot, nil
}

// AdminBlockDate blocks a slot for a single date.
func (e *Engine) AdminBlockDate(ctx context.Context, slotID int64, date string) (dbgen.DailyOverride, error) {
	serviceDate, err := e.ParseServiceDate(date)
	if err != nil {
		return dbgen.DailyOverride{}, err
	}
	now := e.clock.Now()

	var override dbgen.DailyOverride
	err = e.RunInTx(ctx, func(txdb *db.DB) error {
		if _, err := loadSlot(ctx, txdb.Queries, slotID); err != nil {
			return err
		}
		override, err = insertOverride(ctx, txdb.Queries, dbgen.CreateDailyOverrideParams{
			SlotID:      slotID,
			ServiceDate: serviceDate,
			State:       OverrideBlocked,
			Origin:      OriginAdmin,
			CreatedAt:   now.UTC(),
		})
		return err
	})
	if err != nil {
		logAdminFailure(ctx, err, "block_date", slotID)
		return dbgen.DailyOverride{}, err
	}

	log.Ctx(ctx).Info().
		Str("component", "booking_engine").
		Int64("slot_id", slotID).
		Str("service_date", serviceDate).
		Msg("Admin blocked slot for date")
	return override, nil
}

// AdminClearOverride deletes the override for (slot, date), whatever its state.
func (e *Engine) AdminClearOverride(ctx context.Context, slotID int64, date string) error {
	parsed, err := time.ParseInLocation(DateLayout, date, e.loc)
	if err != nil {
		return apperr.InvalidFields("invalid date", map[string]string{"date": "must be YYYY-MM-DD"})
	}
	serviceDate := parsed.Format(DateLayout)

	err = e.RunInTx(ctx, func(txdb *db.DB) error {
		affected, err := txdb.Queries.DeleteDailyOverride(ctx, dbgen.DeleteDailyOverrideParams{
			SlotID:      slotID,
			ServiceDate: serviceDate,
		})
		if err != nil {
			return apperr.Internal("delete override", err)
		}
		if affected == 0 {
			return apperr.NotFound("override")
		}
		return nil
	})
	if err != nil {
		logAdminFailure(ctx, err, "clear_override", slotID)
		return err
	}

	log.Ctx(ctx).Info().
		Str("component", "booking_engine").
		Int64("slot_id", slotID).
		Str("service_date", serviceDate).
		Msg("Admin cleared override")
	return nil
}

func logAdminFailure(ctx context.Context, err error, action string, slotID int64) {
	event := log.Ctx(ctx).Info()
	if apperr.KindOf(err) == apperr.KindInternal {
		event = log.Ctx(ctx).Error().Err(err)
	} else {
		event = event.Str("reason", string(apperr.KindOf(err)))
	}
	event.
		Str("component", "booking_engine").
		Str("action", action).
		Int64("slot_id", slotID).
		Msg("Admin slot operation failed")
}
