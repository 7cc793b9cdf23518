// internal/api/periods/handlers.go
package periods

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/apiutil"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
	"github.com/codr1/courtslots/internal/periods"
	"github.com/codr1/courtslots/internal/request"
)

var (
	service     *periods.Service
	serviceOnce sync.Once
)

type periodResponse struct {
	ID         int64        `json:"id"`
	Weekday    int64        `json:"weekday"`
	StartTime  string       `json:"start_time"`
	EndTime    string       `json:"end_time"`
	CategoryID *int64       `json:"category_id,omitempty"`
	Active     bool         `json:"active"`
	Slots      []dbgen.Slot `json:"slots,omitempty"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *periods.Service) {
	if s == nil {
		log.Warn().Msg("periods.InitHandlers called with nil service")
		return
	}
	serviceOnce.Do(func() {
		service = s
	})
}

func loadService(w http.ResponseWriter, r *http.Request) *periods.Service {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Period service not initialized")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
	}
	return service
}

func toResponse(p dbgen.RecurringPeriod, slots []dbgen.Slot) periodResponse {
	return periodResponse{
		ID:         p.ID,
		Weekday:    p.Weekday,
		StartTime:  p.StartTime,
		EndTime:    p.EndTime,
		CategoryID: apiutil.NullInt64Ptr(p.CategoryID),
		Active:     p.Active,
		Slots:      slots,
	}
}

// GET /api/v1/periods
func HandleListPeriods(w http.ResponseWriter, r *http.Request) {
	s := loadService(w, r)
	if s == nil {
		return
	}

	views, err := s.ListActive(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"periods": views}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write periods")
	}
}

// POST /api/v1/admin/periods
func HandleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	s := loadService(w, r)
	if s == nil {
		return
	}

	var in periods.CreateInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}

	period, slots, err := s.Create(r.Context(), in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, toResponse(period, slots)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write period")
	}
}

// DELETE /api/v1/admin/periods/{id}
// Archives by default; ?force=true archives despite bookings, ?hard=true deletes.
func HandleDeletePeriod(w http.ResponseWriter, r *http.Request) {
	s := loadService(w, r)
	if s == nil {
		return
	}

	id, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if request.BoolQuery(r, "hard") {
		if err := s.Delete(r.Context(), id, true); err != nil {
			apiutil.WriteError(w, r, err)
			return
		}
		_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
		return
	}

	if err := s.Archive(r.Context(), id, request.BoolQuery(r, "force")); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "archived": true})
}

// POST /api/v1/admin/periods/{id}/restore
func HandleRestorePeriod(w http.ResponseWriter, r *http.Request) {
	s := loadService(w, r)
	if s == nil {
		return
	}

	id, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	period, err := s.Restore(r.Context(), id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, toResponse(period, nil)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write period")
	}
}
