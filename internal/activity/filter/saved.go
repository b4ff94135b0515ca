package filter

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
)

// SavedDataFilter sets Starred on the activities the viewer saved.
type SavedDataFilter struct {
	starredByPerson mapper.DomainMapper[int64, []int64]
}

func NewSavedDataFilter(starredByPerson mapper.DomainMapper[int64, []int64]) *SavedDataFilter {
	return &SavedDataFilter{starredByPerson: starredByPerson}
}

func (f *SavedDataFilter) Filter(ctx context.Context, activities []*domain.ActivityDTO, viewer *domain.PersonModelView) error {
	if len(activities) == 0 {
		return nil
	}

	starred := make(map[int64]bool)
	if viewer != nil {
		ids, err := f.starredByPerson.Execute(ctx, viewer.ID)
		if err != nil {
			return fmt.Errorf("failed to load activities saved by %d: %w", viewer.ID, err)
		}
		for _, id := range ids {
			starred[id] = true
		}
	}

	for _, a := range activities {
		a.Starred = starred[a.ID]
	}
	return nil
}
