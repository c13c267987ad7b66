package form

import (
	"net/url"
	"strings"
)

// Genre is the dashboard's create genre form.
type Genre struct {
	Name string `form:"name" validate:"required,max=64"`
}

var genreMessages = map[string]map[string]string{
	"name": {"required": "Name is required", "max": "Name must be at most 64 characters"},
}

// ParseGenre reads and validates a submitted genre.
func ParseGenre(values url.Values) (Genre, Errors) {
	f := Genre{Name: strings.TrimSpace(values.Get("name"))}
	errs := Errors{}
	check(f, errs, genreMessages)
	return f, errs
}
