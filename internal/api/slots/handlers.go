// internal/api/slots/handlers.go
package slots

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/apiutil"
	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/booking"
	"github.com/codr1/courtslots/internal/request"
)

var (
	engine     *booking.Engine
	engineOnce sync.Once
)

type setStateRequest struct {
	State string `json:"state"`
}

type blockDateRequest struct {
	Date string `json:"date"`
}

type moveRequest struct {
	TargetSlotID int64 `json:"target_slot_id"`
}

type bookingResponse struct {
	ID       int64            `json:"id"`
	SlotID   int64            `json:"slot_id"`
	Origin   string           `json:"origin"`
	Occupant booking.Occupant `json:"occupant"`
}

type overrideResponse struct {
	ID          int64  `json:"id"`
	SlotID      int64  `json:"slot_id"`
	ServiceDate string `json:"service_date"`
	State       string `json:"state"`
	Origin      string `json:"origin"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(e *booking.Engine) {
	if e == nil {
		log.Warn().Msg("slots.InitHandlers called with nil engine")
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

// PATCH /api/v1/admin/slots/{id}/state
func HandleSetSlotState(w http.ResponseWriter, r *http.Request) {
	e := loadEngine(w, r)
	if e == nil {
		return
	}
	slotID, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req setStateRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}

	slot, err := e.AdminSetSlotState(r.Context(), slotID, req.State)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, slot); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write slot")
	}
}

// DELETE /api/v1/admin/slots/{id}/booking
func HandleForceRelease(w http.ResponseWriter, r *http.Request) {
	e := loadEngine(w, r)
	if e == nil {
		return
	}
	slotID, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	removed, err := e.AdminForceRelease(r.Context(), slotID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	resp := bookingResponse{
		ID:       removed.ID,
		SlotID:   removed.SlotID,
		Origin:   removed.Origin,
		Occupant: booking.BookingOccupant(removed),
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"released": resp}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write release")
	}
}

// POST /api/v1/admin/slots/{id}/overrides
func HandleBlockDate(w http.ResponseWriter, r *http.Request) {
	e := loadEngine(w, r)
	if e == nil {
		return
	}
	slotID, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req blockDateRequest
	if err := apiutil.DecodeOptionalJSON(r, &req); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}
	date := req.Date
	if date == "" {
		date = e.Today()
	}

	override, err := e.AdminBlockDate(r.Context(), slotID, date)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	resp := overrideResponse{
		ID:          override.ID,
		SlotID:      override.SlotID,
		ServiceDate: override.ServiceDate,
		State:       override.State,
		Origin:      override.Origin,
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write override")
	}
}

// DELETE /api/v1/admin/slots/{id}/overrides/{date}
func HandleClearOverride(w http.ResponseWriter, r *http.Request) {
	e := loadEngine(w, r)
	if e == nil {
		return
	}
	slotID, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	date := r.PathValue("date")
	if date == "" {
		apiutil.WriteError(w, r, apperr.InvalidFields("invalid date", map[string]string{"date": "required"}))
		return
	}

	if err := e.AdminClearOverride(r.Context(), slotID, date); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/admin/bookings/{id}/move
func HandleMoveBooking(w http.ResponseWriter, r *http.Request) {
	e := loadEngine(w, r)
	if e == nil {
		return
	}
	bookingID, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	var req moveRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}
	if req.TargetSlotID <= 0 {
		apiutil.WriteError(w, r, apperr.InvalidFields("invalid move", map[string]string{"target_slot_id": "must be a positive integer"}))
		return
	}

	moved, err := e.AdminMove(r.Context(), bookingID, req.TargetSlotID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	resp := bookingResponse{
		ID:       moved.ID,
		SlotID:   moved.SlotID,
		Origin:   moved.Origin,
		Occupant: booking.BookingOccupant(moved),
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write moved booking")
	}
}
