package filter

import (
	"context"

	"eurekastreams-backend/internal/domain"
)

// ActivityDeleteStrategy decides whether the viewer may delete an activity.
type ActivityDeleteStrategy interface {
	Execute(ctx context.Context, viewer *domain.PersonModelView, activity *domain.ActivityDTO) error
}

// CommentDeleteStrategy decides whether the viewer may delete each comment of an
// activity.
type CommentDeleteStrategy interface {
	Execute(ctx context.Context, viewer *domain.PersonModelView, activity *domain.ActivityDTO, comments []*domain.CommentDTO) error
}

// DeletabilityFilter sets Deletable on activities and their embedded comments.
type DeletabilityFilter struct {
	activities ActivityDeleteStrategy
	comments   CommentDeleteStrategy
}

func NewDeletabilityFilter(activities ActivityDeleteStrategy, comments CommentDeleteStrategy) *DeletabilityFilter {
	return &DeletabilityFilter{activities: activities, comments: comments}
}

func (f *DeletabilityFilter) Filter(ctx context.Context, activities []*domain.ActivityDTO, viewer *domain.PersonModelView) error {
	for _, a := range activities {
		if err := f.activities.Execute(ctx, viewer, a); err != nil {
			return err
		}
		if comments := a.AllComments(); len(comments) > 0 {
			if err := f.comments.Execute(ctx, viewer, a, comments); err != nil {
				return err
			}
		}
	}
	return nil
}
