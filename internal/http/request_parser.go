package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cardledger/internal/core"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 200
)

// parseReference reads the "ref" query parameter ("YYYY-MM-DD HH:MM:SS").
// A missing parameter yields now.
func parseReference(query url.Values, now time.Time) (time.Time, error) {
	v := strings.TrimSpace(query.Get("ref"))
	if v == "" {
		return now, nil
	}
	return core.ParseReference(v)
}

// parseMonth reads the "month" query parameter ("YYYY-MM"), defaulting to
// the month of now.
func parseMonth(query url.Values, now time.Time) string {
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		return v
	}
	return fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
}

// parsePositiveInt reads a positive integer parameter. Missing values fall
// back to def; values above ceiling are clamped when ceiling is positive.
func parsePositiveInt(query url.Values, name string, def, ceiling int64) (int64, error) {
	v := strings.TrimSpace(query.Get(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", core.ErrInvalidLimit, name)
	}
	if ceiling > 0 && n > ceiling {
		n = ceiling
	}
	return n, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
