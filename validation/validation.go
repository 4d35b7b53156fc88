// ABOUTME: Struct validation for inbound requests using validator tags
// ABOUTME: Registers domain enums as tags and turns failures into validation errors
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/models"
)

// Validator wraps the go-playground validator with the domain tags registered.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with lead_status, lead_source, activity_type,
// outcome and priority tags available.
func New() *Validator {
	v := validator.New()
	enums := map[string]func(string) bool{
		"lead_status":   models.IsValidStatus,
		"lead_source":   models.IsValidSource,
		"activity_type": models.IsValidActivityType,
		"outcome":       models.IsValidOutcome,
		"priority":      models.IsValidPriority,
	}
	for tag, fn := range enums {
		check := fn
		// Registration only fails for an empty tag or nil func.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || check(s)
		})
	}
	return &Validator{v: v}
}

var std = New()

// Struct validates s with the shared validator.
func Struct(s any) error { return std.Struct(s) }

// Struct validates s and returns an apperr validation error listing every
// failed field.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.KindValidation, "invalid input", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return apperr.Validation(strings.Join(msgs, ", "))
}

func message(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + param
	case "max":
		return field + " must be at most " + param
	case "email":
		return field + " must be a valid email"
	case "uuid", "uuid4":
		return field + " must be a valid id"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "lead_status":
		return field + " must be one of: " + strings.Join(models.Statuses(), ", ")
	case "lead_source", "activity_type", "outcome", "priority":
		return field + " has unknown value " + quote(fe.Value())
	default:
		return field + " is invalid"
	}
}

func quote(v any) string {
	if s, ok := v.(string); ok {
		return `"` + s + `"`
	}
	return "value"
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
