package form

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-dashboard/internal/model"
)

// DefaultPrice is the price pre-filled when creating a movie.
const DefaultPrice = 100

// Movie is the create/edit dialog form.  Price and GenreID keep the raw
// submitted text so that a rejected value is shown back as typed.
type Movie struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
	Price       int    `form:"price" validate:"gte=1"`
	PriceRaw    string `form:"-" validate:"-"`
	Location    string `form:"location" validate:"location"`
	ImageURL    string `form:"imageUrl" validate:"required,url"`
	GenreID     uint64 `form:"genreId" validate:"gt=0"`
	Published   bool   `form:"published" validate:"-"`
}

var movieMessages = map[string]map[string]string{
	"name":        {"*": "Name is required"},
	"description": {"*": "Description is required"},
	"price":       {"*": "Price must be at least 1"},
	"location":    {"*": "Choose a location"},
	"imageUrl":    {"required": "Image URL is required", "url": "Image URL must be a valid link"},
	"genreId":     {"*": "Choose a genre"},
}

// NewMovie returns the form for create mode, or pre-populated from m in
// edit mode.
func NewMovie(m *model.Movie) Movie {
	if m == nil {
		return Movie{
			Price:    DefaultPrice,
			PriceRaw: strconv.Itoa(DefaultPrice),
			Location: string(model.LocationMSK),
		}
	}
	loc := string(m.Location)
	if loc == "" {
		loc = string(model.LocationMSK)
	}
	return Movie{
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		PriceRaw:    strconv.Itoa(m.Price),
		Location:    loc,
		ImageURL:    m.ImageURL,
		GenreID:     m.GenreID,
		Published:   m.Published,
	}
}

// ParseMovie reads a submitted movie form and validates it.
func ParseMovie(values url.Values) (Movie, Errors) {
	f := Movie{
		Name:        strings.TrimSpace(values.Get("name")),
		Description: strings.TrimSpace(values.Get("description")),
		PriceRaw:    strings.TrimSpace(values.Get("price")),
		Location:    strings.TrimSpace(values.Get("location")),
		ImageURL:    strings.TrimSpace(values.Get("imageUrl")),
		Published:   checkbox(values.Get("published")),
	}
	errs := Errors{}

	if n, err := strconv.Atoi(f.PriceRaw); err == nil {
		f.Price = n
	} else {
		errs.Add("price", movieMessages["price"]["*"])
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(values.Get("genreId")), 10, 64); err == nil {
		f.GenreID = id
	}

	check(f, errs, movieMessages)
	return f, errs
}

// Input converts a valid form into the API body.
func (f Movie) Input() model.MovieInput {
	return model.MovieInput{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Location:    model.Location(f.Location),
		ImageURL:    f.ImageURL,
		GenreID:     f.GenreID,
		Published:   f.Published,
	}
}

func checkbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
