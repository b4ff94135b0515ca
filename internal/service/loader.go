package service

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/notification"
)

type placeholderLoader struct {
	people     mapper.DomainMapper[[]int64, []*domain.PersonModelView]
	groups     mapper.DomainMapper[int64, *domain.DomainGroupModelView]
	activities mapper.DomainMapper[int64, *domain.ActivityDTO]
}

// NewPlaceholderLoader loads the people, groups and activities notification
// properties refer to.
func NewPlaceholderLoader(
	people mapper.DomainMapper[[]int64, []*domain.PersonModelView],
	groups mapper.DomainMapper[int64, *domain.DomainGroupModelView],
	activities mapper.DomainMapper[int64, *domain.ActivityDTO],
) notification.PlaceholderLoader {
	return &placeholderLoader{people: people, groups: groups, activities: activities}
}

func (l *placeholderLoader) Load(ctx context.Context, entityType domain.EntityType, id int64) (any, error) {
	switch entityType {
	case domain.EntityTypePerson:
		people, err := l.people.Execute(ctx, []int64{id})
		if err != nil {
			return nil, err
		}
		for _, p := range people {
			if p != nil && p.ID == id {
				return p, nil
			}
		}
		return nil, nil
	case domain.EntityTypeGroup:
		g, err := l.groups.Execute(ctx, id)
		if err != nil || g == nil {
			return nil, err
		}
		return g, nil
	case notification.PlaceholderActivity:
		a, err := l.activities.Execute(ctx, id)
		if err != nil || a == nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("no loader for %s placeholders: %w", entityType, domain.ErrInvalidArgument)
	}
}
