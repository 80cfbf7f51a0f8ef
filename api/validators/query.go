package validators

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/producers-backend/pkg/errors"
	"github.com/angelmondragon/producers-backend/pkg/pagination"
)

const maxFilterLength = 100

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]string{key: "must be an integer"})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]string{key: "must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)})
	}
	return value, nil
}

// ParseQueryBool reads an optional boolean; nil means the parameter was absent.
func ParseQueryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]string{key: "must be true or false"})
	}
	return &value, nil
}

// ParsePagination reads page and page_size. Sizes above the maximum are clamped
// rather than rejected.
func ParsePagination(r *http.Request, defaultSize int) (pagination.Params, error) {
	page, err := ParseQueryInt(r, pagination.PageParam, 1, 1, math.MaxInt32)
	if err != nil {
		return pagination.Params{}, err
	}
	size, err := ParseQueryInt(r, pagination.PageSizeParam, defaultSize, 1, math.MaxInt32)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, PageSize: size}.Normalize(defaultSize), nil
}

const dateLayout = "2006-01-02"

// ParseQueryTime reads an optional RFC 3339 timestamp or YYYY-MM-DD date as UTC.
// With endOfDay a bare date means the start of the following day, so it can be
// used as an exclusive upper bound that still covers the whole date.
func ParseQueryTime(r *http.Request, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		ts = ts.UTC()
		return &ts, nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a date").
			WithDetails(map[string]string{key: "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"})
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1)
	}
	return &day, nil
}

// QueryFilter returns a trimmed, length-capped filter value.
func QueryFilter(r *http.Request, key string) string {
	return SanitizeString(r.URL.Query().Get(key), maxFilterLength)
}

// ParseUUIDParam reads a route parameter that must hold a UUID.
func ParseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").WithDetails(map[string]string{key: "must be a valid id"})
	}
	return id, nil
}
