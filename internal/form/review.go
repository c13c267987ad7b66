package form

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-dashboard/internal/model"
)

// DefaultRating is pre-selected when the viewer has no review yet.
const DefaultRating = model.MaxRating

// Review is the personal review form.
type Review struct {
	Text   string `form:"text" validate:"required"`
	Rating int    `form:"rating" validate:"gte=1,lte=5"`
}

var reviewMessages = map[string]map[string]string{
	"text":   {"*": "Review text is required"},
	"rating": {"*": "Rating must be between 1 and 5"},
}

// NewReview returns the form pre-filled from r, or empty with the
// default rating when r is nil.
func NewReview(r *model.Review) Review {
	if r == nil {
		return Review{Rating: DefaultRating}
	}
	rating := r.Rating
	if rating < model.MinRating || rating > model.MaxRating {
		rating = DefaultRating
	}
	return Review{Text: r.Text, Rating: rating}
}

// ParseReview reads a submitted review and validates it.
func ParseReview(values url.Values) (Review, Errors) {
	f := Review{Text: strings.TrimSpace(values.Get("text"))}
	errs := Errors{}
	raw := strings.TrimSpace(values.Get("rating"))
	if raw == "" {
		f.Rating = DefaultRating
	} else if n, err := strconv.Atoi(raw); err == nil {
		f.Rating = n
	} else {
		errs.Add("rating", reviewMessages["rating"]["*"])
	}
	check(f, errs, reviewMessages)
	return f, errs
}

// Input converts a valid form into the API body.
func (f Review) Input() model.ReviewInput {
	return model.ReviewInput{Text: f.Text, Rating: f.Rating}
}

// Ratings lists the selectable ratings.
func Ratings() []int {
	out := make([]int, 0, model.MaxRating-model.MinRating+1)
	for r := model.MinRating; r <= model.MaxRating; r++ {
		out = append(out, r)
	}
	return out
}
