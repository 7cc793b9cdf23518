// internal/api/reports/handlers.go
package reports

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/apiutil"
	"github.com/codr1/courtslots/internal/report"
)

var (
	source     report.Source
	sourceOnce sync.Once
	now        = time.Now
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(src report.Source) {
	if src == nil {
		return
	}
	sourceOnce.Do(func() {
		source = src
	})
}

// GET /api/v1/admin/report.csv
func HandleReportCSV(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if source == nil {
		logger.Error().Msg("Report source not initialized")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	rows, err := report.Build(r.Context(), source)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	filename := fmt.Sprintf("occupancy-%s.csv", now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if err := report.WriteCSV(w, rows); err != nil {
		logger.Error().Err(err).Msg("Failed to stream report")
		return
	}
	logger.Info().Int("rows", len(rows)).Msg("Report exported")
}
