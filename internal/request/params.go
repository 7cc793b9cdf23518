package request

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtslots/internal/apperr"
)

// ParseID parses a positive int64 identifier.
func ParseID(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// PathID reads the named path wildcard as a positive identifier.
func PathID(r *http.Request, name string) (int64, error) {
	id, ok := ParseID(r.PathValue(name))
	if !ok {
		return 0, apperr.InvalidFields("invalid "+name, map[string]string{name: "must be a positive integer"})
	}
	return id, nil
}

// BoolQuery reports whether the query parameter is set to a true value.
// Unparseable values count as false.
func BoolQuery(r *http.Request, name string) bool {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Ctx(r.Context()).
			Debug().
			Str("param", name).
			Str("value", raw).
			Msg("Ignoring unparseable boolean query parameter")
		return false
	}
	return value
}
