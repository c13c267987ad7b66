package form

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-dashboard/internal/model"
)

func validMovieValues() url.Values {
	return url.Values{
		"name":        {"Dune"},
		"description": {"Sand and worms"},
		"price":       {"350"},
		"location":    {"SPB"},
		"imageUrl":    {"https://img.example.com/dune.jpg"},
		"genreId":     {"3"},
		"published":   {"on"},
	}
}

func TestParseMovieValid(t *testing.T) {
	f, errs := ParseMovie(validMovieValues())

	assert.True(t, errs.Valid(), "%v", errs)
	assert.Equal(t, model.MovieInput{
		Name:        "Dune",
		Description: "Sand and worms",
		Price:       350,
		Location:    model.LocationSPB,
		ImageURL:    "https://img.example.com/dune.jpg",
		GenreID:     3,
		Published:   true,
	}, f.Input())
}

func TestParseMoviePriceBelowOneBlocked(t *testing.T) {
	for _, price := range []string{"0", "-5", "abc", ""} {
		v := validMovieValues()
		v.Set("price", price)

		_, errs := ParseMovie(v)

		assert.False(t, errs.Valid(), "price %q", price)
		assert.Equal(t, "Price must be at least 1", errs["price"], "price %q", price)
	}
}

func TestParseMovieRequiredFields(t *testing.T) {
	v := url.Values{"name": {"   "}, "price": {"100"}, "location": {"MSK"}}

	_, errs := ParseMovie(v)

	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Description is required", errs["description"])
	assert.Equal(t, "Image URL is required", errs["imageUrl"])
	assert.Equal(t, "Choose a genre", errs["genreId"])
	assert.NotContains(t, errs, "price")
	assert.NotContains(t, errs, "location")
}

func TestParseMovieUnknownLocation(t *testing.T) {
	v := validMovieValues()
	v.Set("location", "LON")

	_, errs := ParseMovie(v)

	assert.Equal(t, "Choose a location", errs["location"])
}

func TestNewMovieDefaults(t *testing.T) {
	f := NewMovie(nil)
	assert.Equal(t, 100, f.Price)
	assert.Equal(t, "MSK", f.Location)
	assert.Equal(t, uint64(0), f.GenreID)
	assert.False(t, f.Published)

	f = NewMovie(&model.Movie{Name: "Heat", Price: 250, Location: model.LocationKZN, GenreID: 2, Published: true})
	assert.Equal(t, "Heat", f.Name)
	assert.Equal(t, "250", f.PriceRaw)
	assert.Equal(t, "KZN", f.Location)
	assert.True(t, f.Published)
}

func TestParseReviewEmptyTextBlocked(t *testing.T) {
	_, errs := ParseReview(url.Values{"text": {"  "}, "rating": {"4"}})

	assert.False(t, errs.Valid())
	assert.Equal(t, "Review text is required", errs["text"])
}

func TestParseReviewRating(t *testing.T) {
	f, errs := ParseReview(url.Values{"text": {"great movie"}, "rating": {"4"}})
	assert.True(t, errs.Valid())
	assert.Equal(t, model.ReviewInput{Text: "great movie", Rating: 4}, f.Input())

	f, errs = ParseReview(url.Values{"text": {"fine"}})
	assert.True(t, errs.Valid())
	assert.Equal(t, 5, f.Rating)

	_, errs = ParseReview(url.Values{"text": {"fine"}, "rating": {"9"}})
	assert.Equal(t, "Rating must be between 1 and 5", errs["rating"])
}

func TestNewReview(t *testing.T) {
	assert.Equal(t, Review{Rating: 5}, NewReview(nil))
	assert.Equal(t, Review{Text: "ok", Rating: 5}, NewReview(&model.Review{Text: "ok", Rating: 5}))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Ratings())
}

func TestParseGenre(t *testing.T) {
	f, errs := ParseGenre(url.Values{"name": {"  Drama "}})
	assert.True(t, errs.Valid())
	assert.Equal(t, "Drama", f.Name)

	_, errs = ParseGenre(url.Values{"name": {"   "}})
	assert.Equal(t, "Name is required", errs["name"])
}
