// Package validation implements validation.Validator ports on top of
// go-playground/validator struct tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	portvalidation "github.com/0xsj/overwatch-kernel/internal/port/outbound/validation"
)

// StructValidator validates an aggregate by projecting it onto a struct with
// `validate` tags. Field names in violations come from the `json` tag.
type StructValidator[A any] struct {
	validate *validator.Validate
	view     func(A) any
}

var _ portvalidation.Validator[struct{}] = (*StructValidator[struct{}])(nil)

// NewStructValidator creates a StructValidator. view must return a struct or
// a pointer to one.
func NewStructValidator[A any](view func(A) any) *StructValidator[A] {
	return &StructValidator[A]{
		validate: newValidate(),
		view:     view,
	}
}

// EnsureValid returns nil or a *domainerror.ValidationError.
func (v *StructValidator[A]) EnsureValid(aggregate A) error {
	err := v.validate.Struct(v.view(aggregate))
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	violations := make([]domainerror.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, domainerror.Violation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: messageFor(fe),
		})
	}
	return domainerror.NewValidationError(violations...)
}

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "notblank":
		return "must not be blank"
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}
