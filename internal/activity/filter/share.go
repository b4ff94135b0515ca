package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
)

// CanShareFilter sets Shareable: activities on personal streams can always be
// shared, activities on group streams only when the group is public.
type CanShareFilter struct {
	groups mapper.DomainMapper[[]string, []*domain.DomainGroupModelView]
}

func NewCanShareFilter(groups mapper.DomainMapper[[]string, []*domain.DomainGroupModelView]) *CanShareFilter {
	return &CanShareFilter{groups: groups}
}

func (f *CanShareFilter) Filter(ctx context.Context, activities []*domain.ActivityDTO, _ *domain.PersonModelView) error {
	public := make(map[string]bool)
	for _, a := range activities {
		switch destinationType(a) {
		case domain.EntityTypePerson:
		case domain.EntityTypeGroup:
			public[streamKey(a)] = false
		default:
			return unsupportedDestination(a)
		}
	}

	if len(public) > 0 {
		groups, err := f.groups.Execute(ctx, slices.Sorted(maps.Keys(public)))
		if err != nil {
			return fmt.Errorf("failed to load groups: %w", err)
		}
		for _, g := range groups {
			public[domain.NormalizeKey(g.ShortName)] = g.Public
		}
	}

	for _, a := range activities {
		if destinationType(a) == domain.EntityTypePerson {
			a.Shareable = true
		} else {
			a.Shareable = public[streamKey(a)]
		}
	}
	return nil
}
