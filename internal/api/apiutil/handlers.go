package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/authz"
	"github.com/codr1/courtslots/internal/apperr"
)

// maxBodyBytes caps JSON request bodies; every payload here is a handful of fields.
const maxBodyBytes = 64 << 10

type HandlerError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

// ErrorBody is the payload written for every failed request.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("missing request body")
		}
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

// DecodeOptionalJSON behaves like DecodeJSON but accepts an empty body.
func DecodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return DecodeJSON(r, dst)
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteErrorStatus writes an error envelope with an explicit status and code.
func WriteErrorStatus(w http.ResponseWriter, status int, code, message string) {
	_ = WriteJSON(w, status, errorEnvelope{Error: ErrorBody{Code: code, Message: message}})
}

// WriteBadRequest reports a malformed request before it reaches the core.
func WriteBadRequest(w http.ResponseWriter, err error) {
	WriteErrorStatus(w, http.StatusBadRequest, string(apperr.KindInvalid), err.Error())
}

// WriteError maps an error from the core onto a status and a stable code.
// Internal causes are logged and never written to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var handlerErr HandlerError
	if errors.As(err, &handlerErr) {
		code := handlerErr.Code
		if code == "" {
			code = strings.ToLower(strings.ReplaceAll(http.StatusText(handlerErr.Status), " ", "_"))
		}
		WriteErrorStatus(w, handlerErr.Status, code, handlerErr.Message)
		return
	}

	kind := apperr.KindOf(err)
	status := StatusFor(kind)
	logger := log.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Str("kind", string(kind)).Msg("Request rejected")
	}

	body := ErrorBody{
		Code:    string(kind),
		Message: apperr.Message(err),
		Fields:  apperr.FieldsOf(err),
	}
	_ = WriteJSON(w, status, errorEnvelope{Error: body})
}

// StatusFor returns the HTTP status used for an error kind.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalid:
		return http.StatusBadRequest
	case apperr.KindNotFound, apperr.KindInvalidCode:
		return http.StatusNotFound
	case apperr.KindForbidden, apperr.KindNotOwner:
		return http.StatusForbidden
	case apperr.KindWindowExpired:
		return http.StatusGone
	case apperr.KindSlotUnavailable,
		apperr.KindConflict,
		apperr.KindAlreadyBooked,
		apperr.KindAlreadyOverridden,
		apperr.KindAlreadyProcessed,
		apperr.KindTargetNotFree,
		apperr.KindSlotOccupied,
		apperr.KindNoSlotAvailable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RequireAdmin writes 401/403 and returns false unless the request carries the admin role.
func RequireAdmin(w http.ResponseWriter, r *http.Request) bool {
	logger := log.Ctx(r.Context())
	user := authz.UserFromContext(r.Context())
	if err := authz.RequireAdmin(r.Context()); err != nil {
		switch {
		case errors.Is(err, authz.ErrUnauthenticated):
			logger.Warn().Str("path", r.URL.Path).Msg("Admin access denied: unauthenticated")
			WriteErrorStatus(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		case errors.Is(err, authz.ErrForbidden):
			logEvent := logger.Warn().Str("path", r.URL.Path)
			if user != nil {
				logEvent = logEvent.Int64("user_id", user.ID)
			}
			logEvent.Msg("Admin access denied: forbidden")
			WriteErrorStatus(w, http.StatusForbidden, string(apperr.KindForbidden), "admin role required")
		default:
			logger.Error().Err(err).Msg("Admin access denied: error")
			WriteErrorStatus(w, http.StatusInternalServerError, string(apperr.KindInternal), "failed to authorize request")
		}
		return false
	}
	return true
}
