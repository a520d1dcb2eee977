package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"github.com/Kerhoff/storehouse/internal/patch"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldError describes one rejected request field
type fieldError struct {
	Field   string
	Message string
}

func (e fieldError) Error() string {
	return e.Field + ": " + e.Message
}

// validationError aggregates every field problem found in a request
type validationError struct {
	errs *multierror.Error
}

func (e *validationError) Error() string {
	return "validation failed"
}

func (e *validationError) Unwrap() error {
	return e.errs
}

func (e *validationError) details() []string {
	out := make([]string, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		out = append(out, err.Error())
	}
	return out
}

// checks collects field errors for hand-written validation
type checks struct {
	errs *multierror.Error
}

func (c *checks) add(err error) {
	if err != nil {
		c.errs = multierror.Append(c.errs, err)
	}
}

func (c *checks) fail(field, format string, args ...any) {
	c.add(fieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// enum records an error when a present value is not in the allowed set
func (c *checks) enum(field string, present, valid bool) {
	if present && !valid {
		c.fail(field, "invalid value")
	}
}

func (c *checks) email(field, value string, present bool) {
	if present && validate.Var(value, "email") != nil {
		c.fail(field, "must be a valid email address")
	}
}

// text rejects a required string sent as null or empty.
func (c *checks) text(field string, f patch.Field[string]) {
	c.add(f.NotNull(field))
	if f.HasValue() && f.Value == "" {
		c.fail(field, "is required")
	}
}

type number interface {
	~int | ~float64
}

func atLeast[T number](c *checks, field string, f patch.Field[T], floor T) {
	if f.HasValue() && f.Value < floor {
		c.fail(field, "must be at least %v", floor)
	}
}

func greaterThan[T number](c *checks, field string, f patch.Field[T], floor T) {
	if f.HasValue() && f.Value <= floor {
		c.fail(field, "must be greater than %v", floor)
	}
}

func (c *checks) err() error {
	if c.errs == nil {
		return nil
	}
	return &validationError{errs: c.errs}
}

// validateRequest runs struct tag validation and folds the result into a
// validationError.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	c := &checks{}
	for _, fe := range verrs {
		c.add(fieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return c.err()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}
