// Package validate checks console form input before it is sent to the
// backend. Each form function parses raw field strings, applies the rules
// and returns a ready request or Errors.
package validate

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Errors is an ordered list of failed rules. The first entry is the one a
// form shows.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// First returns the first message, or "" when e is empty.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Message returns the user-facing text of a validation error, or
// err.Error() for anything else.
func Message(err error) string {
	var ve Errors
	if errors.As(err, &ve) {
		return ve.First()
	}
	return err.Error()
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	val.RegisterValidation("slipimage", func(fl validator.FieldLevel) bool { //nolint:errcheck // static tag
		return IsSlipImage(fl.Field().String())
	})
	val.RegisterValidation("notblank", func(fl validator.FieldLevel) bool { //nolint:errcheck // static tag
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return val
}

// check runs struct-tag rules on s. msgs maps "field.tag" or "field" to the
// message shown for that failure.
func check(s any, msgs map[string]string) Errors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Message: err.Error()}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := msgs[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg, ok = msgs[fe.Field()]
		}
		if !ok {
			msg = fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// IsSlipImage reports whether path names a JPG or PNG file.
func IsSlipImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
