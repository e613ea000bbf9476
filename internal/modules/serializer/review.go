package serializer

import (
	"github.com/ajutor-app/ajutor/internal/modules/model"
)

// ReviewView carries the author/target display names alongside the review.
type ReviewView struct {
	model.Review
	AuthorName string `json:"author_name,omitempty"`
	TargetName string `json:"target_name,omitempty"`
}

func BuildReview(rv *model.Review) ReviewView {
	view := ReviewView{Review: *rv}
	if rv.Author != nil {
		view.AuthorName = rv.Author.Name
	}
	if rv.Target != nil {
		view.TargetName = rv.Target.Name
	}
	view.Author = nil
	view.Target = nil
	return view
}

func BuildReviews(reviews []model.Review) []ReviewView {
	out := make([]ReviewView, 0, len(reviews))
	for i := range reviews {
		out = append(out, BuildReview(&reviews[i]))
	}
	return out
}
