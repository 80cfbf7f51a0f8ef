package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/producers-backend/pkg/types"
)

var (
	ptPhonePattern    = regexp.MustCompile(`^\+?351?\d{9}$`)
	looseEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// New returns a validator reporting json field names and knowing the catalog rules.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "-" {
			return ""
		}
		if tag == "" {
			return f.Name
		}
		return tag
	})
	mustRegister(v, "pt_phone", func(fl validator.FieldLevel) bool {
		return ptPhonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "http_url", func(fl validator.FieldLevel) bool {
		return IsHTTPURL(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// IsHTTPURL reports whether raw is an absolute http(s) URL with a host.
func IsHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fields converts validator errors into a field -> message map keyed by json path.
// It returns false when err is not a validation failure.
func Fields(err error) (types.FieldErrors, bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil, false
	}
	out := types.FieldErrors{}
	for _, fe := range errs {
		out.Add(fieldPath(fe), Message(fe))
	}
	return out, true
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

// Message renders a human readable message for one failed rule.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email", "loose_email":
		return "must be a valid email"
	case "pt_phone":
		return "must be a valid phone number"
	case "http_url", "url":
		return "must be a valid http(s) url"
	case "uuid", "uuid4":
		return "must be a valid id"
	case "dive":
		return "is invalid"
	}
	return "is invalid"
}
