package model

import "time"

// MinRating and MaxRating bound Review.Rating.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is one user's text and rating for one movie.  A user has at
// most one review per movie.
type Review struct {
	UserID    uint64    `json:"userId"`
	MovieID   uint64    `json:"movieId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewInput is the body sent when creating or editing a review.
type ReviewInput struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}
