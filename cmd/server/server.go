// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/codr1/courtslots/internal/api"
	"github.com/codr1/courtslots/internal/api/auth"
	"github.com/codr1/courtslots/internal/api/bookings"
	"github.com/codr1/courtslots/internal/api/courts"
	periodsapi "github.com/codr1/courtslots/internal/api/periods"
	playersapi "github.com/codr1/courtslots/internal/api/players"
	"github.com/codr1/courtslots/internal/api/reports"
	"github.com/codr1/courtslots/internal/api/slots"
	waitlistapi "github.com/codr1/courtslots/internal/api/waitlist"
	"github.com/codr1/courtslots/internal/booking"
	"github.com/codr1/courtslots/internal/config"
	"github.com/codr1/courtslots/internal/db"
	"github.com/codr1/courtslots/internal/periods"
	"github.com/codr1/courtslots/internal/players"
	"github.com/codr1/courtslots/internal/ratelimit"
	"github.com/codr1/courtslots/internal/waitlist"
)

// routeDeps is what registerRoutes needs beyond the initialized handler packages.
type routeDeps struct {
	limiter    *ratelimit.Limiter
	trustProxy bool
}

func newServer(cfg *config.Config, database *db.DB, limiter *ratelimit.Limiter) (*http.Server, error) {
	handler, err := newHandler(cfg, database, limiter)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

// newHandler wires the core services into the handler packages and returns
// the routed, middleware-wrapped handler.
func newHandler(cfg *config.Config, database *db.DB, limiter *ratelimit.Limiter) (http.Handler, error) {
	engine, err := booking.NewEngine(database,
		booking.WithLocation(cfg.Location()),
		booking.WithPhoneRegion(cfg.App.PhoneRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("booking engine: %w", err)
	}
	periodService, err := periods.NewService(database, engine)
	if err != nil {
		return nil, fmt.Errorf("period service: %w", err)
	}
	waitlistManager, err := waitlist.NewManager(database, engine)
	if err != nil {
		return nil, fmt.Errorf("waitlist manager: %w", err)
	}
	directory, err := players.NewService(database)
	if err != nil {
		return nil, fmt.Errorf("player directory: %w", err)
	}
	tokens, err := auth.NewTokenIssuer(cfg.App.SecretKey, cfg.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	bookings.InitHandlers(engine)
	slots.InitHandlers(engine)
	periodsapi.InitHandlers(periodService)
	courts.InitHandlers(periodService)
	waitlistapi.InitHandlers(waitlistManager)
	playersapi.InitHandlers(directory)
	reports.InitHandlers(database.Queries)
	auth.InitHandlers(database.Queries, tokens)

	router := http.NewServeMux()
	registerRoutes(router, routeDeps{limiter: limiter, trustProxy: cfg.App.TrustProxy})

	return api.ChainMiddleware(
		router,
		api.WithAuth(tokens),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	), nil
}

func registerRoutes(mux *http.ServeMux, deps routeDeps) {
	limited := func(action string, h http.HandlerFunc) http.Handler {
		return api.WithRateLimit(deps.limiter, action, deps.trustProxy)(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return api.WithAdminAuth(h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public catalogue
	mux.HandleFunc("GET /api/v1/periods", periodsapi.HandleListPeriods)
	mux.HandleFunc("GET /api/v1/courts", courts.HandleListCourts)
	mux.HandleFunc("GET /api/v1/categories", courts.HandleListCategories)

	// Public booking flow
	mux.Handle("POST /api/v1/bookings", limited(ratelimit.ActionCreateBooking, bookings.HandleCreateBooking))
	mux.Handle("POST /api/v1/bookings/cancel", limited(ratelimit.ActionCancel, bookings.HandleCancelBooking))
	mux.Handle("POST /api/v1/bookings/release", limited(ratelimit.ActionRelease, bookings.HandleReleaseBooking))
	mux.Handle("POST /api/v1/players/login", limited(ratelimit.ActionPlayerLogin, bookings.HandlePlayerLogin))
	mux.Handle("POST /api/v1/waitlist", limited(ratelimit.ActionJoinWaitlist, waitlistapi.HandleWaitlistJoin))
	mux.Handle("POST /api/v1/auth/login", limited(ratelimit.ActionAdminLogin, auth.HandleLogin))

	// Admin: periods
	mux.Handle("POST /api/v1/admin/periods", admin(periodsapi.HandleCreatePeriod))
	mux.Handle("DELETE /api/v1/admin/periods/{id}", admin(periodsapi.HandleDeletePeriod))
	mux.Handle("POST /api/v1/admin/periods/{id}/restore", admin(periodsapi.HandleRestorePeriod))
	mux.Handle("GET /api/v1/admin/periods/{id}/waitlist", admin(waitlistapi.HandleWaitlistList))

	// Admin: slots and bookings
	mux.Handle("PATCH /api/v1/admin/slots/{id}/state", admin(slots.HandleSetSlotState))
	mux.Handle("DELETE /api/v1/admin/slots/{id}/booking", admin(slots.HandleForceRelease))
	mux.Handle("POST /api/v1/admin/slots/{id}/overrides", admin(slots.HandleBlockDate))
	mux.Handle("DELETE /api/v1/admin/slots/{id}/overrides/{date}", admin(slots.HandleClearOverride))
	mux.Handle("POST /api/v1/admin/bookings/{id}/move", admin(slots.HandleMoveBooking))

	// Admin: waitlist
	mux.Handle("POST /api/v1/admin/waitlist/{id}/promote", admin(waitlistapi.HandleWaitlistPromote))
	mux.Handle("DELETE /api/v1/admin/waitlist/{id}", admin(waitlistapi.HandleWaitlistRemove))

	// Admin: directory and reporting
	mux.Handle("GET /api/v1/admin/players", admin(playersapi.HandleListPlayers))
	mux.Handle("PATCH /api/v1/admin/players/{id}", admin(playersapi.HandleUpdatePlayer))
	mux.Handle("GET /api/v1/admin/report.csv", admin(reports.HandleReportCSV))
}
