// internal/api/players/handlers.go
package players

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/apiutil"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
	"github.com/codr1/courtslots/internal/players"
	"github.com/codr1/courtslots/internal/request"
)

var (
	directory     *players.Service
	directoryOnce sync.Once
)

type playerResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	AccessCode string    `json:"access_code"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone,omitempty"`
	CategoryID *int64    `json:"category_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *players.Service) {
	if s == nil {
		log.Warn().Msg("players.InitHandlers called with nil service")
		return
	}
	directoryOnce.Do(func() {
		directory = s
	})
}

func toResponse(p dbgen.Player) playerResponse {
	return playerResponse{
		ID:         p.ID,
		Email:      p.Email,
		AccessCode: p.AccessCode,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Phone:      p.Phone,
		CategoryID: apiutil.NullInt64Ptr(p.CategoryID),
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
	}
}

// GET /api/v1/admin/players
func HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if directory == nil {
		logger.Error().Msg("Player directory not initialized")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	rows, err := directory.List(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	list := make([]playerResponse, 0, len(rows))
	for _, p := range rows {
		list = append(list, toResponse(p))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": list}); err != nil {
		logger.Error().Err(err).Msg("Failed to write players")
	}
}

// PATCH /api/v1/admin/players/{id}
func HandleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if directory == nil {
		logger.Error().Msg("Player directory not initialized")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	id, err := request.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	var in players.UpdateInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}

	updated, err := directory.Update(r.Context(), id, in)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, toResponse(updated)); err != nil {
		logger.Error().Err(err).Msg("Failed to write player")
	}
}
