// internal/api/bookings/handlers.go
package bookings

import (
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/apiutil"
	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/booking"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
	"github.com/codr1/courtslots/internal/players"
)

var (
	engine     *booking.Engine
	engineOnce sync.Once
)

type createBookingRequest struct {
	SlotID    int64  `json:"slot_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type cancelRequest struct {
	Code string `json:"code"`
}

type releaseRequest struct {
	SlotID     int64  `json:"slot_id"`
	AccessCode string `json:"access_code"`
	Date       string `json:"date,omitempty"`
}

type loginRequest struct {
	AccessCode string `json:"access_code"`
}

// bookingResponse is returned by create. Permanent bookings carry the
// cancellation code; a newly registered player also gets the access code.
type bookingResponse struct {
	Type             string           `json:"type"`
	SlotID           int64            `json:"slot_id"`
	BookingID        int64            `json:"booking_id,omitempty"`
	CancellationCode string           `json:"cancellation_code,omitempty"`
	PlayerID         int64            `json:"player_id,omitempty"`
	NewPlayer        bool             `json:"new_player"`
	AccessCode       string           `json:"access_code,omitempty"`
	ServiceDate      string           `json:"service_date,omitempty"`
	Occupant         booking.Occupant `json:"occupant"`
}

type overrideResponse struct {
	ID          int64  `json:"id"`
	SlotID      int64  `json:"slot_id"`
	ServiceDate string `json:"service_date"`
	State       string `json:"state"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(e *booking.Engine) {
	if e == nil {
		log.Warn().Msg("bookings.InitHandlers called with nil engine")
		return
	}
	engineOnce.Do(func() {
		engine = e
	})
}

func loadEngine(w http.ResponseWriter, r *http.Request) *booking.Engine {
	if engine == nil {
		log.Ctx(r.Context()).Error().Msg("Booking engine not initialized")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
	}
	return engine
}

// POST /api/v1/bookings
func HandleCreateBooking(w http.ResponseWriter, r *http.Request) {
	e := loadEngine(w, r)
	if e == nil {
		return
	}

	var req createBookingRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}
	if req.SlotID <= 0 {
		apiutil.WriteError(w, r, invalidField("slot_id", "must be a positive integer"))
		return
	}

	contact := players.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	result, err := e.CreateBooking(r.Context(), req.SlotID, contact)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	resp := bookingResponse{
		SlotID:      req.SlotID,
		NewPlayer:   result.NewPlayer,
		ServiceDate: result.ServiceDate,
		Occupant:    result.Occupant,
	}
	if result.IsSubstitute {
		resp.Type = "substitute"
	} else {
		resp.Type = "permanent"
		resp.BookingID = result.Booking.ID
		resp.CancellationCode = result.Booking.CancellationCode
	}
	if result.Player != nil {
		resp.PlayerID = result.Player.ID
		if result.NewPlayer {
			resp.AccessCode = result.Player.AccessCode
		}
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write booking response")
	}
}

// POST /api/v1/bookings/cancel
func HandleCancelBooking(w http.ResponseWriter, r *http.Request) {
	e := loadEngine(w, r)
	if e == nil {
		return
	}

	var req cancelRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		apiutil.WriteError(w, r, invalidField("code", "required"))
		return
	}

	cancelled, err := e.CancelByCode(r.Context(), req.Code)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"cancelled":  true,
		"booking_id": cancelled.ID,
		"slot_id":    cancelled.SlotID,
	}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write cancel response")
	}
}

// POST /api/v1/bookings/release
func HandleReleaseBooking(w http.ResponseWriter, r *http.Request) {
	e := loadEngine(w, r)
	if e == nil {
		return
	}

	var req releaseRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}
	if req.SlotID <= 0 {
		apiutil.WriteError(w, r, invalidField("slot_id", "must be a positive integer"))
		return
	}

	var err error
	var released dbgen.DailyOverride
	if strings.TrimSpace(req.Date) == "" {
		released, err = e.ReleaseForToday(r.Context(), req.SlotID, req.AccessCode)
	} else {
		released, err = e.ReleaseForDate(r.Context(), req.SlotID, req.AccessCode, req.Date)
	}
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	resp := overrideResponse{
		ID:          released.ID,
		SlotID:      released.SlotID,
		ServiceDate: released.ServiceDate,
		State:       released.State,
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write release response")
	}
}

// POST /api/v1/players/login
func HandlePlayerLogin(w http.ResponseWriter, r *http.Request) {
	e := loadEngine(w, r)
	if e == nil {
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}

	session, err := e.PlayerLogin(r.Context(), req.AccessCode)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, session); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write player session")
	}
}

func invalidField(field, reason string) error {
	return apperr.InvalidFields("invalid "+field, map[string]string{field: reason})
}
