// internal/api/courts/handlers.go
package courts

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/apiutil"
	"github.com/codr1/courtslots/internal/periods"
)

var (
	catalog     *periods.Service
	catalogOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *periods.Service) {
	if s == nil {
		return
	}
	catalogOnce.Do(func() {
		catalog = s
	})
}

// GET /api/v1/courts
func HandleListCourts(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if catalog == nil {
		logger.Error().Msg("Court catalogue not initialized")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	courts, err := catalog.ListCourts(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"courts": courts}); err != nil {
		logger.Error().Err(err).Msg("Failed to write courts")
	}
}

// GET /api/v1/categories
func HandleListCategories(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if catalog == nil {
		logger.Error().Msg("Court catalogue not initialized")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	categories, err := catalog.ListCategories(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"categories": categories}); err != nil {
		logger.Error().Err(err).Msg("Failed to write categories")
	}
}
