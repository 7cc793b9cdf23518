// Package periods manages recurring periods, their slots and the facility catalogue.
package periods

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/booking"
	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

const clockLayout = "15:04"

var validate = validator.New(validator.WithRequiredStructEnabled())

type Service struct {
	db     *db.DB
	engine *booking.Engine
}

func NewService(database *db.DB, engine *booking.Engine) (*Service, error) {
	if database == nil {
		return nil, errors.New("period service requires a database")
	}
	if engine == nil {
		return nil, errors.New("period service requires a booking engine")
	}
	return &Service{db: database, engine: engine}, nil
}

type CreateInput struct {
	Weekday       int     `json:"weekday" validate:"min=0,max=6"`
	StartTime     string  `json:"start_time" validate:"required"`
	EndTime       string  `json:"end_time" validate:"required"`
	CategoryID    *int64  `json:"category_id" validate:"omitempty,gt=0"`
	CourtIDs      []int64 `json:"court_ids" validate:"required,min=1,unique,dive,gt=0"`
	SlotsPerCourt int     `json:"slots_per_court" validate:"min=1,max=50"`
}

// Create adds an active period with SlotsPerCourt FREE slots on every court,
// numbered 1..SlotsPerCourt per court.
func (s *Service) Create(ctx context.Context, in CreateInput) (dbgen.RecurringPeriod, []dbgen.Slot, error) {
	in.StartTime = strings.TrimSpace(in.StartTime)
	in.EndTime = strings.TrimSpace(in.EndTime)
	if err := validate.Struct(in); err != nil {
		return dbgen.RecurringPeriod{}, nil, validationError(err)
	}
	start, errStart := time.Parse(clockLayout, in.StartTime)
	end, errEnd := time.Parse(clockLayout, in.EndTime)
	if errStart != nil || errEnd != nil {
		return dbgen.RecurringPeriod{}, nil, apperr.InvalidFields("invalid period", map[string]string{"start_time": "times must be HH:MM"})
	}
	if !end.After(start) {
		return dbgen.RecurringPeriod{}, nil, apperr.InvalidFields("invalid period", map[string]string{"end_time": "must be after start_time"})
	}

	var (
		period dbgen.RecurringPeriod
		slots  []dbgen.Slot
	)
	err := s.engine.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		category := sql.NullInt64{}
		if in.CategoryID != nil {
			if _, err := q.GetCategory(ctx, *in.CategoryID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperr.InvalidFields("invalid period", map[string]string{"category_id": "unknown category"})
				}
				return apperr.Internal("get category", err)
			}
			category = sql.NullInt64{Int64: *in.CategoryID, Valid: true}
		}
		for _, courtID := range in.CourtIDs {
			if _, err := q.GetCourt(ctx, courtID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperr.InvalidFields("invalid period", map[string]string{"court_ids": fmt.Sprintf("unknown court %d", courtID)})
				}
				return apperr.Internal("get court", err)
			}
		}

		periodID, err := q.CreatePeriod(ctx, dbgen.CreatePeriodParams{
			Weekday:    int64(in.Weekday),
			StartTime:  start.Format(clockLayout),
			EndTime:    end.Format(clockLayout),
			CategoryID: category,
			CreatedAt:  s.engine.Now().UTC(),
		})
		if err != nil {
			return apperr.Internal("create period", err)
		}
		for _, courtID := range in.CourtIDs {
			for order := 1; order <= in.SlotsPerCourt; order++ {
				if _, err := q.CreateSlot(ctx, dbgen.CreateSlotParams{
					PeriodID:   periodID,
					CourtID:    courtID,
					OrderIndex: int64(order),
				}); err != nil {
					return apperr.Internal("create slot", err)
				}
			}
		}

		if period, err = q.GetPeriod(ctx, periodID); err != nil {
			return apperr.Internal("get period", err)
		}
		if slots, err = q.ListSlotsByPeriod(ctx, periodID); err != nil {
			return apperr.Internal("list slots", err)
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to create period")
		}
		return dbgen.RecurringPeriod{}, nil, err
	}

	log.Ctx(ctx).Info().
		Str("component", "periods").
		Int64("period_id", period.ID).
		Int64("weekday", period.Weekday).
		Str("start_time", period.StartTime).
		Int("slot_count", len(slots)).
		Msg("Period created")
	return period, slots, nil
}

// Archive deactivates a period. A period with active bookings is only archived
// when force is set; the bookings are kept.
func (s *Service) Archive(ctx context.Context, id int64, force bool) error {
	err := s.engine.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries
		if _, err := getPeriod(ctx, q, id); err != nil {
			return err
		}
		occupied, err := q.CountOccupiedSlotsInPeriod(ctx, id)
		if err != nil {
			return apperr.Internal("count occupied slots", err)
		}
		if occupied > 0 && !force {
			return apperr.New(apperr.KindSlotOccupied, "period has active bookings; archive with force to proceed")
		}
		if _, err := q.SetPeriodActive(ctx, dbgen.SetPeriodActiveParams{Active: false, ID: id}); err != nil {
			return apperr.Internal("archive period", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("component", "periods").Int64("period_id", id).Bool("force", force).Msg("Period archived")
	return nil
}

// Delete permanently removes a period with its slots, bookings, overrides and
// waitlist. hard must be set explicitly.
func (s *Service) Delete(ctx context.Context, id int64, hard bool) error {
	if !hard {
		return apperr.InvalidFields("hard delete requires explicit confirmation", map[string]string{"hard": "must be true"})
	}
	err := s.engine.RunInTx(ctx, func(txdb *db.DB) error {
		affected, err := txdb.Queries.DeletePeriod(ctx, id)
		if err != nil {
			return apperr.Internal("delete period", err)
		}
		if affected == 0 {
			return apperr.NotFound("period")
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Ctx(ctx).Warn().Str("component", "periods").Int64("period_id", id).Msg("Period permanently deleted")
	return nil
}

// Restore reactivates an archived period.
func (s *Service) Restore(ctx context.Context, id int64) (dbgen.RecurringPeriod, error) {
	var period dbgen.RecurringPeriod
	err := s.engine.RunInTx(ctx, func(txdb *db.DB) error {
		affected, err := txdb.Queries.SetPeriodActive(ctx, dbgen.SetPeriodActiveParams{Active: true, ID: id})
		if err != nil {
			return apperr.Internal("restore period", err)
		}
		if affected == 0 {
			return apperr.NotFound("period")
		}
		period, err = getPeriod(ctx, txdb.Queries, id)
		return err
	})
	if err != nil {
		return dbgen.RecurringPeriod{}, err
	}
	log.Ctx(ctx).Info().Str("component", "periods").Int64("period_id", id).Msg("Period restored")
	return period, nil
}

func (s *Service) ListCourts(ctx context.Context) ([]dbgen.Court, error) {
	courts, err := s.db.Queries.ListCourts(ctx)
	if err != nil {
		return nil, apperr.Internal("list courts", err)
	}
	return courts, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]dbgen.Category, error) {
	categories, err := s.db.Queries.ListActiveCategories(ctx)
	if err != nil {
		return nil, apperr.Internal("list categories", err)
	}
	return categories, nil
}

func getPeriod(ctx context.Context, q *dbgen.Queries, id int64) (dbgen.RecurringPeriod, error) {
	period, err := q.GetPeriod(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return dbgen.RecurringPeriod{}, apperr.NotFound("period")
	}
	if err != nil {
		return dbgen.RecurringPeriod{}, apperr.Internal("get period", err)
	}
	return period, nil
}

func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperr.Invalid("invalid period")
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fieldName(fe.Field())] = fe.Tag()
	}
	return apperr.InvalidFields("invalid period", fields)
}

func fieldName(field string) string {
	if strings.HasPrefix(field, "CourtIDs") {
		return "court_ids"
	}
	switch field {
	case "Weekday":
		return "weekday"
	case "StartTime":
		return "start_time"
	case "EndTime":
		return "end_time"
	case "CategoryID":
		return "category_id"
	case "SlotsPerCourt":
		return "slots_per_court"
	default:
		return strings.ToLower(field)
	}
}
