package upsert

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the declared type of a parent field.
type Kind int

const (
	String Kind = iota // single-line text, trimmed
	Choice             // one of a closed set, expressed with a oneof rule
	Number             // float; empty means null
	Text               // free text, kept verbatim
)

// Field declares one parent column.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Rule     string // validator tag applied to non-empty values
}

// Schema is the ordered field list of a parent kind.
type Schema []Field

// FieldErrors maps a field name to a human readable reason.
type FieldErrors map[string]string

// ValidationError aborts an operation before anything is written.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// AsValidationError unwraps a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

var validate = validator.New()

// Validate checks raw values against the schema. With partial set, absent
// required fields are allowed; supplied values are always checked. Keys that
// the schema does not declare are ignored.
func (s Schema) Validate(raw map[string]string, partial bool) (Values, error) {
	out := make(Values)
	errs := make(FieldErrors)

	for _, f := range s {
		val, ok := raw[f.Name]
		if !ok {
			if f.Required && !partial {
				errs[f.Name] = "This field is required."
			}
			continue
		}
		if f.Kind != Text {
			val = strings.TrimSpace(val)
		}
		if val == "" {
			if f.Required {
				errs[f.Name] = "This field may not be blank."
				continue
			}
			if f.Kind == Number {
				out[f.Name] = (*float64)(nil)
			} else {
				out[f.Name] = ""
			}
			continue
		}

		if f.Kind == Number {
			n, err := strconv.ParseFloat(val, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				errs[f.Name] = "A valid number is required."
				continue
			}
			if f.Rule != "" {
				if err := validate.Var(n, f.Rule); err != nil {
					errs[f.Name] = describe(err)
					continue
				}
			}
			out[f.Name] = &n
			continue
		}

		if f.Rule != "" {
			if err := validate.Var(val, f.Rule); err != nil {
				errs[f.Name] = describe(err)
				continue
			}
		}
		out[f.Name] = val
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return out, nil
}

func describe(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err.Error()
	}
	fe := ves[0]
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "url":
		return "Enter a valid URL."
	}
	return fmt.Sprintf("Failed %q validation.", fe.Tag())
}

// Values holds validated parent fields: strings, or *float64 for numbers.
// Only supplied keys are present.
type Values map[string]any

// Has reports whether the field was supplied.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns a supplied string field.
func (v Values) String(name string) (string, bool) {
	s, ok := v[name].(string)
	return s, ok
}

// Number returns a supplied number field; nil means cleared.
func (v Values) Number(name string) (*float64, bool) {
	n, ok := v[name].(*float64)
	return n, ok
}

// SetString assigns a supplied string field to dst.
func (v Values) SetString(name string, dst *string) {
	if s, ok := v.String(name); ok {
		*dst = s
	}
}

// SetNumber assigns a supplied number field to dst.
func (v Values) SetNumber(name string, dst **float64) {
	if n, ok := v.Number(name); ok {
		*dst = n
	}
}
