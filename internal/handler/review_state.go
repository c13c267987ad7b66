package handler

import (
	"github.com/iliyamo/cinema-dashboard/internal/form"
	"github.com/iliyamo/cinema-dashboard/internal/model"
	"github.com/iliyamo/cinema-dashboard/internal/session"
)

// ReviewState is what the personal review block shows.
type ReviewState string

const (
	ReviewUnauthenticated ReviewState = "unauthenticated"
	ReviewNone            ReviewState = "none"
	ReviewViewing         ReviewState = "viewing"
	ReviewEditing         ReviewState = "editing"
)

// reviewState picks the block state.  Editing requires an existing
// review; asking to edit without one shows the empty form.
func reviewState(s session.Session, mine *model.Review, editing bool) ReviewState {
	switch {
	case !s.IsAuthenticated():
		return ReviewUnauthenticated
	case mine == nil:
		return ReviewNone
	case editing:
		return ReviewEditing
	default:
		return ReviewViewing
	}
}

// personalReview is the view data of the personal review block.
type personalReview struct {
	State     ReviewState
	MovieID   uint64
	Review    *model.Review
	Form      form.Review
	Errors    form.Errors
	Ratings   []int
	LoginNext string
}

func newPersonalReview(state ReviewState, movieID uint64, mine *model.Review, loginNext string) personalReview {
	return personalReview{
		State:     state,
		MovieID:   movieID,
		Review:    mine,
		Form:      form.NewReview(mine),
		Ratings:   form.Ratings(),
		LoginNext: loginNext,
	}
}
