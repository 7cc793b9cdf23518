package booking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/codr1/courtslots/internal/apperr"
	dbgen "github.com/codr1/courtslots/internal/db/generated"
)

const (
	minCancellationCode = 1000
	maxCancellationCode = 9999
	maxCodeAttempts     = 25
)

// newCancellationCode is swapped in tests to force collisions.
var newCancellationCode = GenerateCancellationCode

// GenerateCancellationCode returns a random four digit code.
func GenerateCancellationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCancellationCode-minCancellationCode+1))
	if err != nil {
		return "", fmt.Errorf("generate cancellation code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+minCancellationCode), nil
}

func uniqueCancellationCode(ctx context.Context, q *dbgen.Queries) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := newCancellationCode()
		if err != nil {
			return "", apperr.Internal("generate cancellation code", err)
		}
		inUse, err := q.CancellationCodeInUse(ctx, code)
		if err != nil {
			return "", apperr.Internal("check cancellation code", err)
		}
		if inUse == 0 {
			return code, nil
		}
	}
	return "", apperr.Internal("generate cancellation code", errors.New("exhausted attempts"))
}
