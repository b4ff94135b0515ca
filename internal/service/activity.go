package service

import (
	"context"
	"fmt"
	"math"

	"eurekastreams-backend/internal/activity/filter"
	"eurekastreams-backend/internal/collider"
	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/mapper"
)

// DefaultPageSize is used when a stream read asks for no particular size.
const DefaultPageSize = 10

type activityService struct {
	activities mapper.DomainMapper[[]int64, []*domain.ActivityDTO]
	streamIDs  mapper.DomainMapper[domain.StreamKey, []int64]
	savedIDs   mapper.DomainMapper[int64, []int64]
	filters    filter.Filter
	and        collider.ListCollider
	or         collider.ListCollider
}

func NewActivityService(
	activities mapper.DomainMapper[[]int64, []*domain.ActivityDTO],
	streamIDs mapper.DomainMapper[domain.StreamKey, []int64],
	savedIDs mapper.DomainMapper[int64, []int64],
	filters filter.Filter,
) ActivityService {
	return &activityService{
		activities: activities,
		streamIDs:  streamIDs,
		savedIDs:   savedIDs,
		filters:    filters,
		and:        collider.NewAndCollider(),
		or:         collider.NewOrCollider(),
	}
}

func (s *activityService) GetActivity(ctx context.Context, viewer *domain.PersonModelView, id int64) (*domain.ActivityDTO, error) {
	activities, err := s.GetActivities(ctx, viewer, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, fmt.Errorf("activity %d: %w", id, domain.ErrNotFound)
	}
	return activities[0], nil
}

func (s *activityService) GetActivities(ctx context.Context, viewer *domain.PersonModelView, ids []int64) ([]*domain.ActivityDTO, error) {
	if len(ids) == 0 {
		return []*domain.ActivityDTO{}, nil
	}
	activities, err := s.activities.Execute(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}
	if err := s.filters.Filter(ctx, activities, viewer); err != nil {
		return nil, err
	}
	return activities, nil
}

func (s *activityService) GetStream(ctx context.Context, viewer *domain.PersonModelView, streams []domain.StreamKey, maxResults int) ([]*domain.ActivityDTO, error) {
	if maxResults <= 0 {
		maxResults = DefaultPageSize
	}
	ids, err := s.unionStreams(ctx, streams, maxResults)
	if err != nil {
		return nil, err
	}
	logger.Debug("Stream ids collected", "streams", len(streams), "ids", len(ids))
	return s.GetActivities(ctx, viewer, ids)
}

func (s *activityService) GetSavedInStreams(ctx context.Context, viewer *domain.PersonModelView, streams []domain.StreamKey, maxResults int) ([]*domain.ActivityDTO, error) {
	if viewer == nil {
		return []*domain.ActivityDTO{}, nil
	}
	if maxResults <= 0 {
		maxResults = DefaultPageSize
	}
	saved, err := s.savedIDs.Execute(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("load saved activity ids: %w", err)
	}
	if len(saved) == 0 {
		return []*domain.ActivityDTO{}, nil
	}

	// The intersection needs the complete stream lists.
	inStreams, err := s.unionStreams(ctx, streams, math.MaxInt)
	if err != nil {
		return nil, err
	}
	ids := s.and.Collide(inStreams, saved, maxResults)
	logger.Debug("Saved stream ids collected", "streams", len(streams), "saved", len(saved), "ids", len(ids))
	return s.GetActivities(ctx, viewer, ids)
}

// unionStreams merges the id lists of the streams, newest first.
func (s *activityService) unionStreams(ctx context.Context, streams []domain.StreamKey, maxResults int) ([]int64, error) {
	var ids []int64
	for _, stream := range streams {
		streamIDs, err := s.streamIDs.Execute(ctx, stream)
		if err != nil {
			return nil, fmt.Errorf("load %s stream %d: %w", stream.Type, stream.ID, err)
		}
		ids = s.or.Collide(ids, streamIDs, maxResults)
	}
	return ids, nil
}
