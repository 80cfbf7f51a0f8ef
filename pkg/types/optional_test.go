package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestOptionalUnmarshal(t *testing.T) {
	type payload struct {
		Name Optional[string] `json:"name"`
	}

	var got payload
	if err := json.Unmarshal([]byte(`{"name": "Queijaria"}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.Name.Present() || got.Name.Value != "Queijaria" {
		t.Fatalf("expected value, got %+v", got.Name)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"name": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.Name.Set || !got.Name.Null || got.Name.Ptr() != nil {
		t.Fatalf("expected explicit null, got %+v", got.Name)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{}`), &got); err != nil {
		t.Fatalf("unmarshal missing: %v", err)
	}
	if got.Name.Set {
		t.Fatalf("expected missing field to stay unset, got %+v", got.Name)
	}
	if got.Name.OrElse("fallback") != "fallback" {
		t.Fatalf("expected fallback for missing field")
	}
}

func TestOptionalReportsFieldOnTypeMismatch(t *testing.T) {
	type payload struct {
		Type Optional[TagList] `json:"type"`
	}

	var got payload
	err := json.Unmarshal([]byte(`{"type": 12}`), &got)
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnmarshalTypeError, got %v", err)
	}
	if typeErr.Field != "type" {
		t.Fatalf("expected field type, got %q", typeErr.Field)
	}
}

func TestFieldErrorsKeepsFirstMessage(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("name", "is required")
	errs.Add("name", "is too long")
	errs.Merge(FieldErrors{"email": "is invalid", "name": "other"})

	if errs["name"] != "is required" || errs["email"] != "is invalid" {
		t.Fatalf("unexpected errors %v", errs)
	}
	if errs.Empty() {
		t.Fatalf("expected non-empty")
	}
}
