package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/producers-backend/pkg/errors"
	"github.com/angelmondragon/producers-backend/pkg/pagination"
	"github.com/angelmondragon/producers-backend/pkg/types"
)

type samplePayload struct {
	Name     string                  `json:"name" validate:"required"`
	Latitude types.Optional[float64] `json:"latitude"`
	IDs      []string                `json:"ids"`
}

func detailsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %#v", pkgerrors.As(err).Details())
	}
	return details
}

func decode(body string) error {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dest samplePayload
	return DecodeJSONBody(req, &dest)
}

func TestDecodeJSONBody(t *testing.T) {
	if err := decode(`{"name":"Queijaria","latitude":38.7}`); err != nil {
		t.Fatalf("expected valid body, got %v", err)
	}

	cases := map[string]map[string]string{
		``:                                {"body": "is required"},
		`{"name":`:                        {"body": "must be valid JSON"},
		`{"name":"x","colour":"red"}`:     {"colour": "is not a known field"},
		`{"name":"x","ids":"abc"}`:        {"ids": "must be a list"},
		`{"name":"x","latitude":"north"}`: {"latitude": "must be a number"},
		`{}`:                              {"name": "is required"},
		`{"name":"x"} {"name":"y"}`:       {"body": "must contain a single JSON document"},
	}
	for body, want := range cases {
		details := detailsOf(t, decode(body))
		for field, msg := range want {
			if details[field] != msg {
				t.Fatalf("body %q: expected %s -> %q, got %v", body, field, msg, details)
			}
		}
	}
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?is_active=false&bad=maybe", nil)
	v, err := ParseQueryBool(req, "is_active")
	if err != nil || v == nil || *v {
		t.Fatalf("expected false, got %v %v", v, err)
	}
	if v, err := ParseQueryBool(req, "missing"); err != nil || v != nil {
		t.Fatalf("expected nil for missing param")
	}
	if _, err := ParseQueryBool(req, "bad"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParsePagination(t *testing.T) {
	params, err := ParsePagination(httptest.NewRequest(http.MethodGet, "/", nil), pagination.DefaultPageSize)
	if err != nil || params.Page != 1 || params.PageSize != 20 {
		t.Fatalf("unexpected defaults %+v %v", params, err)
	}

	params, err = ParsePagination(httptest.NewRequest(http.MethodGet, "/?page=3&page_size=500", nil), pagination.DefaultPageSize)
	if err != nil || params.Page != 3 || params.PageSize != pagination.MaxPageSize {
		t.Fatalf("expected clamp, got %+v %v", params, err)
	}

	for _, query := range []string{"page=0", "page=abc", "page_size=0", "page_size=-1"} {
		_, err := ParsePagination(httptest.NewRequest(http.MethodGet, "/?"+query, nil), pagination.DefaultPageSize)
		if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", query, err)
		}
	}
}

func TestParseUUIDParam(t *testing.T) {
	withParam := func(value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", value)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	if _, err := ParseUUIDParam(withParam("6f1c1f43-3c1b-4b43-8a36-0e5b7a9e4c11"), "id"); err != nil {
		t.Fatalf("expected valid uuid, got %v", err)
	}
	details := detailsOf(t, func() error { _, err := ParseUUIDParam(withParam("42"), "id"); return err }())
	if details["id"] != "must be a valid id" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  Évora  ", 3); got != "Évo" {
		t.Fatalf("unexpected sanitized value %q", got)
	}
	if got := SanitizeString(" porto ", 0); got != "porto" {
		t.Fatalf("unexpected sanitized value %q", got)
	}
}

func TestParseQueryTime(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2025-03-01T10:00:00%2B01:00&day=2025-03-01&bad=03/01/2025", nil)

	ts, err := ParseQueryTime(req, "from", true)
	if err != nil || ts == nil || !ts.Equal(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)) || ts.Location() != time.UTC {
		t.Fatalf("expected timestamp normalized to UTC, got %v (%v)", ts, err)
	}

	start, err := ParseQueryTime(req, "day", false)
	if err != nil || !start.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected start of day, got %v (%v)", start, err)
	}
	end, err := ParseQueryTime(req, "day", true)
	if err != nil || !end.Equal(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected start of next day, got %v (%v)", end, err)
	}

	if missing, err := ParseQueryTime(req, "absent", false); missing != nil || err != nil {
		t.Fatalf("expected absent parameter to be nil, got %v %v", missing, err)
	}
	if _, err := ParseQueryTime(req, "bad", false); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
