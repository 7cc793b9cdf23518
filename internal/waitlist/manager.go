// Package waitlist keeps the standby queue of each recurring period and
// promotes entries into permanent bookings.
package waitlist

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/booking"
	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
	"github.com/codr1/courtslots/internal/players"
	"github.com/codr1/courtslots/internal/ratelimit"
)

const (
	StatePending  = "PENDING"
	StateAssigned = "ASSIGNED"
)

type Manager struct {
	db     *db.DB
	engine *booking.Engine
}

func NewManager(database *db.DB, engine *booking.Engine) (*Manager, error) {
	if database == nil {
		return nil, errors.New("waitlist manager requires a database")
	}
	if engine == nil {
		return nil, errors.New("waitlist manager requires a booking engine")
	}
	return &Manager{db: database, engine: engine}, nil
}

// Join appends contact to the period's queue. The period does not need to be full.
func (m *Manager) Join(ctx context.Context, periodID int64, contact players.Contact) (dbgen.WaitlistEntry, error) {
	contact, err := contact.Normalize(m.engine.PhoneRegion())
	if err != nil {
		return dbgen.WaitlistEntry{}, err
	}

	var entry dbgen.WaitlistEntry
	err = m.engine.RunInTx(ctx, func(txdb *db.DB) error {
		if _, err := loadActivePeriod(ctx, txdb.Queries, periodID); err != nil {
			return err
		}
		id, err := txdb.Queries.CreateWaitlistEntry(ctx, dbgen.CreateWaitlistEntryParams{
			PeriodID:  periodID,
			FirstName: contact.FirstName,
			LastName:  contact.LastName,
			Email:     contact.Email,
			Phone:     contact.Phone,
			CreatedAt: m.engine.Now().UTC(),
		})
		if err != nil {
			return apperr.Internal("create waitlist entry", err)
		}
		entry, err = txdb.Queries.GetWaitlistEntry(ctx, id)
		if err != nil {
			return apperr.Internal("get waitlist entry", err)
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			log.Ctx(ctx).Error().Err(err).Int64("period_id", periodID).Msg("Failed to join waitlist")
		}
		return dbgen.WaitlistEntry{}, err
	}

	log.Ctx(ctx).Info().
		Str("component", "waitlist").
		Int64("period_id", periodID).
		Int64("entry_id", entry.ID).
		Str("email", ratelimit.SanitizeIdentifier(entry.Email)).
		Msg("Joined waitlist")
	return entry, nil
}

// ListPending returns a period's pending entries, oldest first.
func (m *Manager) ListPending(ctx context.Context, periodID int64) ([]dbgen.WaitlistEntry, error) {
	q := m.db.Queries
	if _, err := q.GetPeriod(ctx, periodID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("period")
		}
		return nil, apperr.Internal("get period", err)
	}
	entries, err := q.ListPendingWaitlistByPeriod(ctx, periodID)
	if err != nil {
		return nil, apperr.Internal("list waitlist", err)
	}
	return entries, nil
}

// PendingCounts maps period id to its number of pending entries.
func (m *Manager) PendingCounts(ctx context.Context) (map[int64]int64, error) {
	rows, err := m.db.Queries.CountPendingWaitlistByPeriod(ctx)
	if err != nil {
		return nil, apperr.Internal("count waitlist", err)
	}
	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.PeriodID] = row.PendingCount
	}
	return counts, nil
}

type Promotion struct {
	Entry  dbgen.WaitlistEntry `json:"entry"`
	Result booking.Result      `json:"result"`
}

// Promote books the entry into the free slot with the lowest order index of
// its period and marks it ASSIGNED. Today's overrides do not make a slot free.
func (m *Manager) Promote(ctx context.Context, entryID int64) (Promotion, error) {
	var promotion Promotion
	err := m.engine.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		entry, err := q.GetWaitlistEntry(ctx, entryID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("waitlist entry")
		}
		if err != nil {
			return apperr.Internal("get waitlist entry", err)
		}
		if entry.State != StatePending {
			return apperr.ErrAlreadyProcessed
		}
		if _, err := loadActivePeriod(ctx, q, entry.PeriodID); err != nil {
			return err
		}

		slot, found, err := booking.FirstFreeSlot(ctx, q, entry.PeriodID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.ErrNoSlotAvailable
		}

		contact := players.Contact{
			FirstName: entry.FirstName,
			LastName:  entry.LastName,
			Email:     entry.Email,
			Phone:     entry.Phone,
		}
		result, err := m.engine.BookPermanentTx(ctx, q, slot, contact, booking.OriginWaitlist)
		if err != nil {
			return err
		}

		affected, err := q.MarkWaitlistEntryAssigned(ctx, entry.ID)
		if err != nil {
			return apperr.Internal("mark waitlist entry assigned", err)
		}
		if affected == 0 {
			return apperr.ErrAlreadyProcessed
		}
		entry.State = StateAssigned

		promotion = Promotion{Entry: entry, Result: result}
		return nil
	})

	logger := log.Ctx(ctx).With().Str("component", "waitlist").Int64("entry_id", entryID).Logger()
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			logger.Error().Err(err).Msg("Failed to promote waitlist entry")
		} else {
			logger.Info().Str("reason", string(apperr.KindOf(err))).Msg("Waitlist promotion rejected")
		}
		return Promotion{}, err
	}
	logger.Info().
		Int64("slot_id", promotion.Result.Booking.SlotID).
		Int64("booking_id", promotion.Result.Booking.ID).
		Bool("new_player", promotion.Result.NewPlayer).
		Msg("Waitlist entry promoted")
	return promotion, nil
}

// Remove deletes an entry in any state.
func (m *Manager) Remove(ctx context.Context, entryID int64) error {
	affected, err := m.db.Queries.DeleteWaitlistEntry(ctx, entryID)
	if err != nil {
		return apperr.Internal("delete waitlist entry", err)
	}
	if affected == 0 {
		return apperr.NotFound("waitlist entry")
	}
	log.Ctx(ctx).Info().Str("component", "waitlist").Int64("entry_id", entryID).Msg("Waitlist entry removed")
	return nil
}

func loadActivePeriod(ctx context.Context, q *dbgen.Queries, periodID int64) (dbgen.RecurringPeriod, error) {
	period, err := q.GetPeriod(ctx, periodID)
	if errors.Is(err, sql.ErrNoRows) {
		return dbgen.RecurringPeriod{}, apperr.NotFound("period")
	}
	if err != nil {
		return dbgen.RecurringPeriod{}, apperr.Internal("get period", err)
	}
	if !period.Active {
		return dbgen.RecurringPeriod{}, apperr.NotFound("period")
	}
	return period, nil
}
