// Package apperr holds the error kinds the booking core reports to callers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindSlotUnavailable   Kind = "slot_unavailable"
	KindConflict          Kind = "conflict"
	KindAlreadyBooked     Kind = "already_booked"
	KindNotOwner          Kind = "not_owner"
	KindAlreadyOverridden Kind = "already_overridden"
	KindInvalidCode       Kind = "invalid_code"
	KindWindowExpired     Kind = "window_expired"
	KindNoSlotAvailable   Kind = "no_slot_available"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindAlreadyProcessed  Kind = "already_processed"
	KindTargetNotFree     Kind = "target_not_free"
	KindSlotOccupied      Kind = "slot_occupied"
	KindInvalid           Kind = "invalid"
	KindInternal          Kind = "internal"
)

// Error is a classified failure. Msg is safe to show to clients; Err is not.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
	// Fields carries per-field validation failures for KindInvalid.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrSlotUnavailable   = &Error{Kind: KindSlotUnavailable, Msg: "slot is not available"}
	ErrConflict          = &Error{Kind: KindConflict, Msg: "slot was just taken by someone else"}
	ErrAlreadyBooked     = &Error{Kind: KindAlreadyBooked, Msg: "player already holds a booking in this period"}
	ErrNotOwner          = &Error{Kind: KindNotOwner, Msg: "booking does not belong to this player"}
	ErrAlreadyOverridden = &Error{Kind: KindAlreadyOverridden, Msg: "slot already has an override for that date"}
	ErrInvalidCode       = &Error{Kind: KindInvalidCode, Msg: "code not recognised"}
	ErrWindowExpired     = &Error{Kind: KindWindowExpired, Msg: "cancellation window has expired"}
	ErrNoSlotAvailable   = &Error{Kind: KindNoSlotAvailable, Msg: "no free slot in this period"}
	ErrNotFound          = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrForbidden         = &Error{Kind: KindForbidden, Msg: "forbidden"}
	ErrAlreadyProcessed  = &Error{Kind: KindAlreadyProcessed, Msg: "waitlist entry already processed"}
	ErrTargetNotFree     = &Error{Kind: KindTargetNotFree, Msg: "target slot is not free"}
	ErrSlotOccupied      = &Error{Kind: KindSlotOccupied, Msg: "slot has an active booking"}
	ErrInvalid           = &Error{Kind: KindInvalid, Msg: "invalid request"}
	ErrInternal          = &Error{Kind: KindInternal, Msg: "internal error"}
)

// New returns an error of the given kind with a client-facing message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// NotFound names the missing entity, e.g. NotFound("slot").
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Msg: entity + " not found"}
}

// Invalid reports a rejected input.
func Invalid(msg string) *Error {
	return &Error{Kind: KindInvalid, Msg: msg}
}

// InvalidFields reports a rejected input with one reason per field.
func InvalidFields(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindInvalid, Msg: msg, Fields: fields}
}

// Internal wraps a storage or other unexpected failure. The cause is kept for
// logging and never rendered to clients.
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: "internal error", Err: fmt.Errorf("%s: %w", op, err)}
}

// FieldsOf returns validation details carried by err, if any.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ErrInternal.Msg
}
