// Package booking reconciles permanent slot bookings with single-date overrides.
// Every mutation of a slot's state or of a daily override goes through Engine.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/db"
)

const (
	SlotFree     = "FREE"
	SlotOccupied = "OCCUPIED"
	SlotBlocked  = "BLOCKED"

	OverrideFree    = "FREE"
	OverrideTaken   = "TAKEN"
	OverrideBlocked = "BLOCKED"

	// OverrideNone is reported where a slot has no override for the date.
	OverrideNone = "NORMAL"

	OriginWeb      = "web"
	OriginWaitlist = "waitlist"
	OriginPlayer   = "player"
	OriginAdmin    = "admin"

	DateLayout = "2006-01-02"

	CancellationWindow = 60 * time.Minute
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type Engine struct {
	db          *db.DB
	clock       Clock
	loc         *time.Location
	phoneRegion string
}

type Option func(*Engine)

func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLocation sets the facility timezone that defines "today".
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithPhoneRegion sets the default country for phone numbers without a prefix.
func WithPhoneRegion(region string) Option {
	return func(e *Engine) {
		if region != "" {
			e.phoneRegion = region
		}
	}
}

func NewEngine(database *db.DB, opts ...Option) (*Engine, error) {
	if database == nil {
		return nil, errors.New("booking engine requires a database")
	}
	e := &Engine{
		db:          database,
		clock:       systemClock{},
		loc:         time.UTC,
		phoneRegion: "AR",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Today is the current facility calendar date as YYYY-MM-DD.
func (e *Engine) Today() string {
	return e.clock.Now().In(e.loc).Format(DateLayout)
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

func (e *Engine) PhoneRegion() string {
	return e.phoneRegion
}

// Effective layers an override for a date on top of the slot's base state.
// overrideState is empty when no override exists.
func Effective(slotState, overrideState string) string {
	if overrideState != "" {
		return overrideState
	}
	return slotState
}

// ParseServiceDate validates a YYYY-MM-DD date and rejects dates before today.
func (e *Engine) ParseServiceDate(raw string) (string, error) {
	date, err := time.ParseInLocation(DateLayout, raw, e.loc)
	if err != nil {
		return "", apperr.InvalidFields("invalid date", map[string]string{"date": "must be YYYY-MM-DD"})
	}
	normalized := date.Format(DateLayout)
	if normalized < e.Today() {
		return "", apperr.InvalidFields("invalid date", map[string]string{"date": "must be today or later"})
	}
	return normalized, nil
}

// RunInTx runs fn in a write transaction. A lock timeout is reported as a
// conflict so the caller can retry.
func (e *Engine) RunInTx(ctx context.Context, fn func(*db.DB) error) error {
	err := e.db.RunInTx(ctx, fn)
	if err == nil {
		return nil
	}
	if db.IsBusy(err) {
		return &apperr.Error{Kind: apperr.KindConflict, Msg: apperr.ErrConflict.Msg, Err: err}
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Internal("transaction", err)
}
