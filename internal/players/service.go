// internal/players/service.go
package players

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

// Service is the admin player directory plus access-code authentication.
type Service struct {
	db *db.DB
}

func NewService(database *db.DB) (*Service, error) {
	if database == nil {
		return nil, errors.New("player service requires a database")
	}
	return &Service{db: database}, nil
}

// Authenticate resolves an access code to an active player.
func Authenticate(ctx context.Context, q *dbgen.Queries, accessCode string) (dbgen.Player, error) {
	code := NormalizeAccessCode(accessCode)
	if len(code) != AccessCodeLength {
		return dbgen.Player{}, apperr.ErrInvalidCode
	}
	player, err := q.GetPlayerByAccessCode(ctx, code)
	if errors.Is(err, sql.ErrNoRows) {
		return dbgen.Player{}, apperr.ErrInvalidCode
	}
	if err != nil {
		return dbgen.Player{}, apperr.Internal("get player by access code", err)
	}
	if !player.Active {
		return dbgen.Player{}, apperr.New(apperr.KindForbidden, "player is inactive")
	}
	return player, nil
}

func (s *Service) List(ctx context.Context) ([]dbgen.Player, error) {
	rows, err := s.db.Queries.ListPlayers(ctx)
	if err != nil {
		return nil, apperr.Internal("list players", err)
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id int64) (dbgen.Player, error) {
	player, err := s.db.Queries.GetPlayer(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return dbgen.Player{}, apperr.NotFound("player")
	}
	if err != nil {
		return dbgen.Player{}, apperr.Internal("get player", err)
	}
	return player, nil
}

// UpdateInput changes directory fields. Nil fields keep their value; the access
// code is never touched.
type UpdateInput struct {
	FirstName  *string `json:"first_name" validate:"omitempty,min=1,max=80"`
	LastName   *string `json:"last_name" validate:"omitempty,min=1,max=80"`
	Email      *string `json:"email" validate:"omitempty,email,max=254"`
	CategoryID *int64  `json:"category_id" validate:"omitempty,gt=0"`
	Active     *bool   `json:"active"`
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (dbgen.Player, error) {
	if in.FirstName != nil {
		trimmed := strings.TrimSpace(*in.FirstName)
		in.FirstName = &trimmed
	}
	if in.LastName != nil {
		trimmed := strings.TrimSpace(*in.LastName)
		in.LastName = &trimmed
	}
	if in.Email != nil {
		normalized := NormalizeEmail(*in.Email)
		in.Email = &normalized
	}
	if err := validate.Struct(in); err != nil {
		return dbgen.Player{}, validationError(err)
	}

	var updated dbgen.Player
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		current, err := txdb.Queries.GetPlayer(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("player")
		}
		if err != nil {
			return apperr.Internal("get player", err)
		}

		params := dbgen.UpdatePlayerParams{
			FirstName:  current.FirstName,
			LastName:   current.LastName,
			Email:      current.Email,
			CategoryID: current.CategoryID,
			Active:     current.Active,
			ID:         id,
		}
		if in.FirstName != nil {
			params.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			params.LastName = *in.LastName
		}
		if in.Email != nil {
			params.Email = *in.Email
		}
		if in.Active != nil {
			params.Active = *in.Active
		}
		if in.CategoryID != nil {
			if _, err := txdb.Queries.GetCategory(ctx, *in.CategoryID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperr.InvalidFields("invalid player", map[string]string{"category_id": "unknown category"})
				}
				return apperr.Internal("get category", err)
			}
			params.CategoryID = sql.NullInt64{Int64: *in.CategoryID, Valid: true}
		}

		if _, err := txdb.Queries.UpdatePlayer(ctx, params); err != nil {
			if db.IsUniqueViolation(err) {
				return apperr.New(apperr.KindConflict, "email already belongs to another player")
			}
			return apperr.Internal("update player", err)
		}

		updated, err = txdb.Queries.GetPlayer(ctx, id)
		if err != nil {
			return apperr.Internal("get updated player", err)
		}
		return nil
	})
	if err != nil {
		return dbgen.Player{}, err
	}

	log.Ctx(ctx).Info().
		Int64("player_id", id).
		Bool("active", updated.Active).
		Msg("Player updated")
	return updated, nil
}
