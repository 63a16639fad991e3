package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/googlesheets-ru/championship-r7-2025/pkg/errcat"
)

var v *validator.Validate

// dateLayouts accepted by the "datestr" rule, in match order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Validator returns a singleton validator with custom rules registered.
func Validator() *validator.Validate {
	if v == nil {
		v = validator.New()
		// Custom: single-rune field delimiter that cannot collide with the
		// line splitter or silently merge into values.
		_ = v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if utf8.RuneCountInString(s) != 1 {
				return false
			}
			r, _ := utf8.DecodeRuneInString(s)
			if r == '\r' || r == '\n' {
				return false
			}
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		// Custom: period bound as a calendar date or RFC3339 timestamp
		_ = v.RegisterValidation("datestr", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			if s == "" {
				return true // empty is allowed; use omitempty with this tag
			}
			for _, layout := range dateLayouts {
				if _, err := time.Parse(layout, s); err == nil {
					return true
				}
			}
			return false
		})
		// Custom: local source path must have a delimited-text extension;
		// http(s) URLs pass through untouched.
		_ = v.RegisterValidation("source_ext", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			if s == "" {
				return false
			}
			low := strings.ToLower(s)
			if strings.HasPrefix(low, "http://") || strings.HasPrefix(low, "https://") {
				return true
			}
			return strings.HasSuffix(low, ".csv") || strings.HasSuffix(low, ".tsv") || strings.HasSuffix(low, ".txt")
		})
	}
	return v
}

// ValidateStruct validates a struct and returns a catalogued VALIDATION error
// with a user-friendly message. Returns nil when valid.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
		fe := ve[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return errcat.Wrapf(errcat.Validation, "%s is required", field)
		case "delimiter":
			return errcat.Wrapf(errcat.Validation, "%s must be a single separator rune such as ';' or ','", field)
		case "datestr":
			return errcat.Wrapf(errcat.Validation, "%s must be YYYY-MM-DD or RFC3339", field)
		case "source_ext":
			return errcat.New(errcat.Validation, "input must be an http(s) URL or a .csv/.tsv/.txt file")
		case "min", "max", "gte", "lte":
			return errcat.Wrapf(errcat.Validation, "%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
		}
		return errcat.Wrapf(errcat.Validation, "invalid %s", field)
	}
	return errcat.Wrap(errcat.Validation, "invalid inputs", fmt.Errorf("validation: %w", err))
}
