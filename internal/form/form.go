// Package form parses and validates the dashboard's HTML forms.  Rules
// are declared as validator tags; each failing field maps to one
// human-readable message rendered under the input.
package form

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/cinema-dashboard/internal/model"
)

// Errors maps a form field name to its message.  An empty map means the
// form is valid.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Valid reports whether no errors were recorded.
func (e Errors) Valid() bool { return len(e) == 0 }

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("location", func(fl validator.FieldLevel) bool {
			return model.Location(fl.Field().String()).Valid()
		})
	})
	return validate
}

// check runs the struct rules and translates failures through messages,
// keyed by form field name and then by tag.
func check(v any, errs Errors, messages map[string]map[string]string) {
	err := instance().Struct(v)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("_form", err.Error())
		return
	}
	for _, fe := range verrs {
		field := fe.Field()
		msg := messages[field][fe.Tag()]
		if msg == "" {
			msg = messages[field]["*"]
		}
		if msg == "" {
			msg = "Invalid value"
		}
		errs.Add(field, msg)
	}
}
