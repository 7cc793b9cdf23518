package booking

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

// CancelByCode deletes the booking holding code and frees its slot, provided
// the booking is no older than CancellationWindow. Later cancellations need
// AdminForceRelease.
func (e *Engine) CancelByCode(ctx context.Context, code string) (dbgen.Booking, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return dbgen.Booking{}, apperr.ErrInvalidCode
	}
	now := e.clock.Now()

	var booking dbgen.Booking
	err := e.RunInTx(ctx, func(txdb *db.DB) error {
		var err error
		booking, err = txdb.Queries.GetBookingByCancellationCode(ctx, code)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrInvalidCode
		}
		if err != nil {
			return apperr.Internal("get booking by cancellation code", err)
		}

		if now.Sub(booking.CreatedAt) > CancellationWindow {
			return apperr.ErrWindowExpired
		}
		return removeBooking(ctx, txdb.Queries, booking, e.Today())
	})

	logger := log.Ctx(ctx).With().Str("component", "booking_engine").Logger()
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			logger.Error().Err(err).Msg("Failed to cancel booking by code")
		} else {
			logger.Info().Str("reason", string(apperr.KindOf(err))).Msg("Cancellation rejected")
		}
		return dbgen.Booking{}, err
	}
	logger.Info().
		Int64("booking_id", booking.ID).
		Int64("slot_id", booking.SlotID).
		Msg("Booking cancelled by code")
	return booking, nil
}

// removeBooking deletes a booking and returns its slot to FREE. Releases the
// owner left for today or later go with it; TAKEN and BLOCKED days stay.
func removeBooking(ctx context.Context, q *dbgen.Queries, booking dbgen.Booking, today string) error {
	affected, err := q.DeleteBooking(ctx, booking.ID)
	if err != nil {
		return apperr.Internal("delete booking", err)
	}
	if affected == 0 {
		return apperr.ErrConflict
	}
	if err := dropReleases(ctx, q, booking.SlotID, today); err != nil {
		return err
	}
	return transition(ctx, q, booking.SlotID, SlotOccupied, SlotFree)
}

// dropReleases deletes the FREE overrides on slotID from today on. A FREE
// override only means something while the owner who released it holds the slot.
func dropReleases(ctx context.Context, q *dbgen.Queries, slotID int64, today string) error {
	_, err := q.DeleteReleasedOverridesFrom(ctx, dbgen.DeleteReleasedOverridesFromParams{
		SlotID:      slotID,
		ServiceDate: today,
	})
	if err != nil {
		return apperr.Internal("delete released overrides", err)
	}
	return nil
}
