package filter

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
)

// DefaultLikerLimit is the number of likers shown with an activity when no limit
// is configured.
const DefaultLikerLimit = 10

// LikeDataFilter sets Liked for the viewer, LikeCount, and a sample of at most
// limit Likers per activity. Likers of all activities are loaded in one lookup.
type LikeDataFilter struct {
	likedByPerson mapper.DomainMapper[int64, []int64]
	likers        mapper.DomainMapper[[]int64, map[int64][]int64]
	people        mapper.DomainMapper[[]int64, []*domain.PersonModelView]
	limit         int
}

func NewLikeDataFilter(
	likedByPerson mapper.DomainMapper[int64, []int64],
	likers mapper.DomainMapper[[]int64, map[int64][]int64],
	people mapper.DomainMapper[[]int64, []*domain.PersonModelView],
	limit int,
) *LikeDataFilter {
	if limit <= 0 {
		limit = DefaultLikerLimit
	}
	return &LikeDataFilter{likedByPerson: likedByPerson, likers: likers, people: people, limit: limit}
}

func (f *LikeDataFilter) Filter(ctx context.Context, activities []*domain.ActivityDTO, viewer *domain.PersonModelView) error {
	if len(activities) == 0 {
		return nil
	}

	liked := make(map[int64]bool)
	if viewer != nil {
		ids, err := f.likedByPerson.Execute(ctx, viewer.ID)
		if err != nil {
			return fmt.Errorf("failed to load activities liked by %d: %w", viewer.ID, err)
		}
		for _, id := range ids {
			liked[id] = true
		}
	}

	activityIDs := make([]int64, len(activities))
	for i, a := range activities {
		activityIDs[i] = a.ID
	}
	likers, err := f.likers.Execute(ctx, activityIDs)
	if err != nil {
		return fmt.Errorf("failed to load likers: %w", err)
	}

	var sampleIDs []int64
	seen := make(map[int64]bool)
	for _, a := range activities {
		for _, id := range f.sample(likers[a.ID]) {
			if !seen[id] {
				seen[id] = true
				sampleIDs = append(sampleIDs, id)
			}
		}
	}
	people := make(map[int64]*domain.PersonModelView, len(sampleIDs))
	if len(sampleIDs) > 0 {
		found, err := f.people.Execute(ctx, sampleIDs)
		if err != nil {
			return fmt.Errorf("failed to load likers: %w", err)
		}
		for _, p := range found {
			people[p.ID] = p
		}
	}

	for _, a := range activities {
		ids := likers[a.ID]
		a.Liked = liked[a.ID]
		a.LikeCount = len(ids)
		a.Likers = make([]*domain.PersonModelView, 0, min(len(ids), f.limit))
		for _, id := range f.sample(ids) {
			if p, ok := people[id]; ok {
				a.Likers = append(a.Likers, p)
			}
		}
	}
	return nil
}

func (f *LikeDataFilter) sample(ids []int64) []int64 {
	if len(ids) > f.limit {
		return ids[:f.limit]
	}
	return ids
}
