package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/api/apiutil"
	"github.com/codr1/courtslots/internal/api/authz"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

var (
	queries     *dbgen.Queries
	issuer      *TokenIssuer
	queriesOnce sync.Once
)

const authQueryTimeout = 5 * time.Second

var errBadCredentials = apiutil.HandlerError{
	Status:  http.StatusUnauthorized,
	Code:    "invalid_credentials",
	Message: "invalid username or password",
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Role      string    `json:"role"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries, tokens *TokenIssuer) {
	if q == nil || tokens == nil {
		log.Warn().Msg("auth.InitHandlers called with nil dependency")
		return
	}
	queriesOnce.Do(func() {
		queries = q
		issuer = tokens
	})
}

// Issuer exposes the token issuer for the auth middleware.
func Issuer() *TokenIssuer {
	return issuer
}

// POST /api/v1/auth/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if queries == nil || issuer == nil {
		logger.Error().Msg("Auth handlers not initialized")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteBadRequest(w, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		apiutil.WriteError(w, r, errBadCredentials)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	admin, err := queries.GetAdminByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn().Str("username", req.Username).Msg("Admin login failed: unknown user")
			apiutil.WriteError(w, r, errBadCredentials)
			return
		}
		logger.Error().Err(err).Msg("Failed to load admin")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if !admin.Active || !VerifyPassword(admin.PasswordHash, req.Password) {
		logger.Warn().Int64("admin_id", admin.ID).Msg("Admin login failed: bad credentials")
		apiutil.WriteError(w, r, errBadCredentials)
		return
	}

	token, expires, err := issuer.Issue(authz.AuthUser{ID: admin.ID, Username: admin.Username, Role: authz.RoleAdmin})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to sign admin token")
		apiutil.WriteErrorStatus(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	logger.Info().Int64("admin_id", admin.ID).Msg("Admin logged in")
	if err := apiutil.WriteJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires, Role: authz.RoleAdmin}); err != nil {
		logger.Error().Err(err).Msg("Failed to write login response")
	}
}
