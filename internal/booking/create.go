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
	"github.com/codr1/courtslots/internal/ratelimit"
)

// Result describes what a booking request produced. A permanent booking sets
// Booking and Player; a substitute claim sets Override and leaves Booking nil.
type Result struct {
	Booking      *dbgen.Booking       `json:"booking,omitempty"`
	Player       *dbgen.Player        `json:"-"`
	NewPlayer    bool                 `json:"new_player"`
	IsSubstitute bool                 `json:"is_substitute"`
	Override     *dbgen.DailyOverride `json:"override,omitempty"`
	Occupant     Occupant             `json:"occupant"`
	ServiceDate  string               `json:"service_date,omitempty"`
}

// CreateBooking books slotID for contact. A FREE slot becomes a permanent
// booking. An occupied slot whose owner released today can be claimed for
// today only. Anything else is ErrSlotUnavailable.
func (e *Engine) CreateBooking(ctx context.Context, slotID int64, contact players.Contact) (Result, error) {
	contact, err := contact.Normalize(e.phoneRegion)
	if err != nil {
		return Result{}, err
	}

	now := e.clock.Now()
	today := e.Today()
	logger := log.Ctx(ctx).With().
		Str("component", "booking_engine").
		Int64("slot_id", slotID).
		Str("email", ratelimit.SanitizeIdentifier(contact.Email)).
		Logger()

	var result Result
	err = e.RunInTx(ctx, func(txdb *db.DB) error {
		slot, err := loadActiveSlot(ctx, txdb.Queries, slotID)
		if err != nil {
			return err
		}

		if slot.State == SlotFree {
			result, err = e.bookPermanent(ctx, txdb.Queries, slot, contact, OriginWeb, now)
			return err
		}

		override, found, err := getOverride(ctx, txdb.Queries, slot.ID, today)
		if err != nil {
			return err
		}
		if !found || override.State != OverrideFree {
			return apperr.ErrSlotUnavailable
		}
		result, err = claimOverride(ctx, txdb.Queries, override, contact)
		return err
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			logger.Error().Err(err).Msg("Failed to create booking")
		} else {
			logger.Info().Str("reason", string(apperr.KindOf(err))).Msg("Booking rejected")
		}
		return Result{}, err
	}

	if result.IsSubstitute {
		logger.Info().
			Int64("override_id", result.Override.ID).
			Str("service_date", result.ServiceDate).
			Msg("Substitute claimed released slot")
	} else {
		logger.Info().
			Int64("booking_id", result.Booking.ID).
			Int64("player_id", result.Player.ID).
			Bool("new_player", result.NewPlayer).
			Msg("Permanent booking created")
	}
	return result, nil
}

// BookPermanentTx books slot for contact inside an existing transaction. It is
// the waitlist promotion path; contact must already be normalized.
func (e *Engine) BookPermanentTx(ctx context.Context, q *dbgen.Queries, slot dbgen.Slot, contact players.Contact, origin string) (Result, error) {
	return e.bookPermanent(ctx, q, slot, contact, origin, e.clock.Now())
}

// FirstFreeSlot returns the free slot with the lowest order index in a period.
// Daily overrides are not considered.
func FirstFreeSlot(ctx context.Context, q *dbgen.Queries, periodID int64) (dbgen.Slot, bool, error) {
	slot, err := q.FirstFreeSlotInPeriod(ctx, periodID)
	if errors.Is(err, sql.ErrNoRows) {
		return dbgen.Slot{}, false, nil
	}
	if err != nil {
		return dbgen.Slot{}, false, apperr.Internal("first free slot", err)
	}
	return slot, true, nil
}

// bookPermanent creates the booking. A player created here takes the
// category of the slot's period.
func (e *Engine) bookPermanent(ctx context.Context, q *dbgen.Queries, slot dbgen.Slot, contact players.Contact, origin string, now time.Time) (Result, error) {
	period, err := q.GetPeriod(ctx, slot.PeriodID)
	if err != nil {
		return Result{}, apperr.Internal("get period", err)
	}
	player, created, err := players.ResolveOrCreate(ctx, q, contact, period.CategoryID, now)
	if err != nil {
		return Result{}, err
	}
	playerID := nullID(player.ID)

	held, err := q.CountPlayerBookingsInPeriod(ctx, dbgen.CountPlayerBookingsInPeriodParams{
		PlayerID: playerID,
		PeriodID: slot.PeriodID,
	})
	if err != nil {
		return Result{}, apperr.Internal("count player bookings", err)
	}
	if held > 0 {
		return Result{}, apperr.ErrAlreadyBooked
	}

	code, err := uniqueCancellationCode(ctx, q)
	if err != nil {
		return Result{}, err
	}

	bookingID, err := q.CreateBooking(ctx, dbgen.CreateBookingParams{
		SlotID:           slot.ID,
		PlayerID:         playerID,
		FirstName:        contact.FirstName,
		LastName:         contact.LastName,
		Email:            contact.Email,
		Phone:            contact.Phone,
		Origin:           origin,
		CancellationCode: code,
		CreatedAt:        now.UTC(),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Result{}, apperr.ErrConflict
		}
		return Result{}, apperr.Internal("create booking", err)
	}

	if err := transition(ctx, q, slot.ID, SlotFree, SlotOccupied); err != nil {
		return Result{}, err
	}

	booking, err := q.GetBooking(ctx, bookingID)
	if err != nil {
		return Result{}, apperr.Internal("get created booking", err)
	}
	return Result{
		Booking:   &booking,
		Player:    &player,
		NewPlayer: created,
		Occupant:  Registered(player.ID, contact.DisplayName()),
	}, nil
}

// claimOverride takes a FREE override for one date. Guests stay anonymous;
// a matching player is referenced but never created.
func claimOverride(ctx context.Context, q *dbgen.Queries, override dbgen.DailyOverride, contact players.Contact) (Result, error) {
	player, found, err := players.Find(ctx, q, contact.Email)
	if err != nil {
		return Result{}, err
	}

	claimedPlayer := sql.NullInt64{}
	occupant := Guest(contact.DisplayName())
	if found {
		claimedPlayer = nullID(player.ID)
		occupant = Registered(player.ID, contact.DisplayName())
	}

	affected, err := q.ClaimDailyOverride(ctx, dbgen.ClaimDailyOverrideParams{
		ClaimedBy:       claimSummary(contact, found, player.ID),
		ClaimedPlayerID: claimedPlayer,
		ID:              override.ID,
	})
	if err != nil {
		return Result{}, apperr.Internal("claim override", err)
	}
	if affected == 0 {
		return Result{}, apperr.ErrConflict
	}

	claimed, err := q.GetDailyOverride(ctx, dbgen.GetDailyOverrideParams{
		SlotID:      override.SlotID,
		ServiceDate: override.ServiceDate,
	})
	if err != nil {
		return Result{}, apperr.Internal("get claimed override", err)
	}

	result := Result{
		IsSubstitute: true,
		Override:     &claimed,
		Occupant:     occupant,
		ServiceDate:  claimed.ServiceDate,
	}
	if found {
		result.Player = &player
	}
	return result, nil
}

func claimSummary(contact players.Contact, registered bool, playerID int64) string {
	summary := fmt.Sprintf("%s <%s>", contact.DisplayName(), contact.Email)
	if registered {
		summary += fmt.Sprintf(" (player #%d)", playerID)
	}
	return summary
}

func loadSlot(ctx context.Context, q *dbgen.Queries, slotID int64) (dbgen.Slot, error) {
	slot, err := q.GetSlot(ctx, slotID)
	if errors.Is(err, sql.ErrNoRows) {
		return dbgen.Slot{}, apperr.NotFound("slot")
	}
	if err != nil {
		return dbgen.Slot{}, apperr.Internal("get slot", err)
	}
	return slot, nil
}

// loadActiveSlot hides slots of archived periods.
func loadActiveSlot(ctx context.Context, q *dbgen.Queries, slotID int64) (dbgen.Slot, error) {
	slot, _, err := loadActiveSlotPeriod(ctx, q, slotID)
	return slot, err
}

func loadActiveSlotPeriod(ctx context.Context, q *dbgen.Queries, slotID int64) (dbgen.Slot, dbgen.RecurringPeriod, error) {
	slot, err := loadSlot(ctx, q, slotID)
	if err != nil {
		return dbgen.Slot{}, dbgen.RecurringPeriod{}, err
	}
	period, err := q.GetPeriod(ctx, slot.PeriodID)
	if err != nil {
		return dbgen.Slot{}, dbgen.RecurringPeriod{}, apperr.Internal("get period", err)
	}
	if !period.Active {
		return dbgen.Slot{}, dbgen.RecurringPeriod{}, apperr.NotFound("slot")
	}
	return slot, period, nil
}

func getOverride(ctx context.Context, q *dbgen.Queries, slotID int64, date string) (dbgen.DailyOverride, bool, error) {
	override, err := q.GetDailyOverride(ctx, dbgen.GetDailyOverrideParams{SlotID: slotID, ServiceDate: date})
	if errors.Is(err, sql.ErrNoRows) {
		return dbgen.DailyOverride{}, false, nil
	}
	if err != nil {
		return dbgen.DailyOverride{}, false, apperr.Internal("get override", err)
	}
	return override, true, nil
}

func transition(ctx context.Context, q *dbgen.Queries, slotID int64, from, to string) error {
	affected, err := q.TransitionSlotState(ctx, dbgen.TransitionSlotStateParams{
		ToState:   to,
		ID:        slotID,
		FromState: from,
	})
	if err != nil {
		return apperr.Internal("transition slot state", err)
	}
	if affected == 0 {
		return apperr.ErrConflict
	}
	return nil
}
