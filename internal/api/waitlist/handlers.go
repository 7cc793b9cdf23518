// internal/api/waitlist/handlers.go
package waitlist

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/apiutil"
	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/players"
	"github.com/codr1/courtslots/internal/request"
	"github.com/codr1/courtslots/internal/waitlist"
)

var (
	manager     *waitlist.Manager
	managerOnce sync.Once
)

type waitlistJoinRequest struct {
	PeriodID  int64  `json:"period_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type promotionResponse struct {
	EntryID          int64  `json:"entry_id"`
	State            string `json:"state"`
	BookingID        int64  `json:"booking_id"`
	SlotID           int64  `json:"slot_id"`
	CancellationCode string `json:"cancellation_code"`
	PlayerID         int64  `json:"player_id,omitempty"`
	NewPlayer        bool   `json:"new_player"`
	AccessCode       string `json:"access_code,omitempty"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(m *waitlist.Manager) {
	if m == nil {
		log.Warn().Msg("waitlist.InitHandlers called with nil manager")
		return
	}
	managerOnce.Do(func() {
		manager = m
	})
}

func loadManager(w http.ResponseWriter, r *http.Request) *waitlist.Manager {
	if manager == nil {
		log.Ctx(r.Context()).Error().Msg("Waitlist manager not initialized")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
	}
	return manager
}

// POST /api/v1/waitlist
func HandleWaitlistJoin(w http.ResponseWriter, r *http.Request) {
	m := loadManager(w, r)
	if m == nil {
		return
	}

	var req waitlistJoinRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}
	if req.PeriodID <= 0 {
		apiutil.WriteError(w, r, apperr.InvalidFields("invalid waitlist request", map[string]string{"period_id": "must be a positive integer"}))
		return
	}

	entry, err := m.Join(r.Context(), req.PeriodID, players.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, entry); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write waitlist entry")
	}
}

// GET /api/v1/admin/periods/{id}/waitlist
func HandleWaitlistList(w http.ResponseWriter, r *http.Request) {
	m := loadManager(w, r)
	if m == nil {
		return
	}
	periodID, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	entries, err := m.ListPending(r.Context(), periodID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"period_id": periodID, "entries": entries}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write waitlist")
	}
}

// POST /api/v1/admin/waitlist/{id}/promote
func HandleWaitlistPromote(w http.ResponseWriter, r *http.Request) {
	m := loadManager(w, r)
	if m == nil {
		return
	}
	entryID, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	promotion, err := m.Promote(r.Context(), entryID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	result := promotion.Result
	resp := promotionResponse{
		EntryID:          promotion.Entry.ID,
		State:            promotion.Entry.State,
		BookingID:        result.Booking.ID,
		SlotID:           result.Booking.SlotID,
		CancellationCode: result.Booking.CancellationCode,
		NewPlayer:        result.NewPlayer,
	}
	if result.Player != nil {
		resp.PlayerID = result.Player.ID
		if result.NewPlayer {
			resp.AccessCode = result.Player.AccessCode
		}
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write promotion")
	}
}

// DELETE /api/v1/admin/waitlist/{id}
func HandleWaitlistRemove(w http.ResponseWriter, r *http.Request) {
	m := loadManager(w, r)
	if m == nil {
		return
	}
	entryID, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := m.Remove(r.Context(), entryID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
