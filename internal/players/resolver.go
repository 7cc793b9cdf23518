// internal/players/resolver.go
package players

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/codr1/courtslots/internal/apperr"
	"github.com/codr1/courtslots/internal/db"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

const (
	AccessCodeLength   = 4
	accessCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts    = 25
)

// newAccessCode is swapped in tests to force collisions.
var newAccessCode = GenerateAccessCode

// GenerateAccessCode returns a random uppercase alphanumeric code.
func GenerateAccessCode() (string, error) {
	buf := make([]byte, AccessCodeLength)
	max := big.NewInt(int64(len(accessCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate access code: %w", err)
		}
		buf[i] = accessCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// Find looks a player up by email without creating one.
func Find(ctx context.Context, q *dbgen.Queries, email string) (dbgen.Player, bool, error) {
	player, err := q.GetPlayerByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return dbgen.Player{}, false, nil
	}
	if err != nil {
		return dbgen.Player{}, false, apperr.Internal("get player by email", err)
	}
	return player, true, nil
}

// ResolveOrCreate returns the player registered under contact.Email, creating
// one with a fresh access code and the given category when none exists. An
// existing player is never modified. The boolean reports whether the player
// was created.
func ResolveOrCreate(ctx context.Context, q *dbgen.Queries, contact Contact, categoryID sql.NullInt64, now time.Time) (dbgen.Player, bool, error) {
	existing, found, err := Find(ctx, q, contact.Email)
	if err != nil {
		return dbgen.Player{}, false, err
	}
	if found {
		return existing, false, nil
	}

	code, err := uniqueAccessCode(ctx, q)
	if err != nil {
		return dbgen.Player{}, false, err
	}

	id, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{
		Email:      NormalizeEmail(contact.Email),
		AccessCode: code,
		FirstName:  contact.FirstName,
		LastName:   contact.LastName,
		Phone:      contact.Phone,
		CategoryID: categoryID,
		CreatedAt:  now.UTC(),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return dbgen.Player{}, false, apperr.ErrConflict
		}
		return dbgen.Player{}, false, apperr.Internal("create player", err)
	}

	player, err := q.GetPlayer(ctx, id)
	if err != nil {
		return dbgen.Player{}, false, apperr.Internal("get created player", err)
	}
	return player, true, nil
}

func uniqueAccessCode(ctx context.Context, q *dbgen.Queries) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := newAccessCode()
		if err != nil {
			return "", apperr.Internal("generate access code", err)
		}
		_, err = q.GetPlayerByAccessCode(ctx, code)
		if errors.Is(err, sql.ErrNoRows) {
			return code, nil
		}
		if err != nil {
			return "", apperr.Internal("check access code", err)
		}
	}
	return "", apperr.Internal("generate access code", errors.New("exhausted attempts"))
}
