// Package validation turns raw caller input into typed values.
//
// Every function here is pure. A rejected input yields an *Error listing each
// violated constraint; the error matches apperr.ErrValidation.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Black-And-White-Club/competitions/app/shared/apperr"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format used for apply_till.
const DateLayout = "2006-01-02"

// isoLayouts are the ISO-8601 forms accepted for a calendar date.
var isoLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Violation names one failed constraint.
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Error is a validation failure enumerating the violated constraints.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Param != "" {
			parts = append(parts, fmt.Sprintf("%s (%s=%s)", v.Field, v.Rule, v.Param))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", v.Field, v.Rule))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Is makes every *Error match apperr.ErrValidation.
func (e *Error) Is(target error) bool { return target == apperr.ErrValidation }

func violation(field, rule, param string) *Error {
	return &Error{Violations: []Violation{{Field: field, Rule: rule, Param: param}}}
}

// Merge combines validation errors into one. Nil entries are skipped and the
// first non-validation error is returned unchanged.
func Merge(errs ...error) error {
	var merged []Violation
	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *Error
		if !errors.As(err, &verr) {
			return err
		}
		merged = append(merged, verr.Violations...)
	}
	if len(merged) == 0 {
		return nil
	}
	return &Error{Violations: merged}
}

// Struct applies the validate tags of v and reports every failed rule.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", v, err)
	}
	out := &Error{}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, Violation{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// ParseID parses a strictly positive integer identifier.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, violation(field, "integer", "")
	}
	if id <= 0 {
		return 0, violation(field, "positive", "")
	}
	return id, nil
}

// ParseScore parses a caller-supplied score. Anything but a base-10 integer
// that fits a 32-bit column is rejected.
func ParseScore(raw string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, violation("score", "range", "int32")
		}
		return 0, violation("score", "integer", "")
	}
	return int(n), nil
}

// ParseDate parses an ISO-8601 date or date-time and keeps its calendar date.
func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, violation(field, "required", "")
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, violation(field, "iso_date", "")
}

// CompetitionInput is the raw payload of a create or edit request.
type CompetitionInput struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=3,max=1000"`
	ApplyTill   string `json:"apply_till"`
}

// CompetitionFields is an accepted CompetitionInput.
type CompetitionFields struct {
	Name        string
	Description string
	ApplyTill   time.Time
}

// ValidateCompetition checks the name, description and apply_till constraints.
func ValidateCompetition(in CompetitionInput) (CompetitionFields, error) {
	structErr := Struct(in)
	applyTill, dateErr := ParseDate("apply_till", in.ApplyTill)

	if err := Merge(structErr, dateErr); err != nil {
		return CompetitionFields{}, err
	}
	return CompetitionFields{
		Name:        in.Name,
		Description: in.Description,
		ApplyTill:   applyTill,
	}, nil
}

// UserInput registers or renames a user.
type UserInput struct {
	ID   int64  `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required,max=100"`
}
