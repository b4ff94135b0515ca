package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"eurekastreams-backend/internal/activity/permission"
	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
)

// CanCommentFilter sets Commentable from the destination stream. People may
// always comment on their own stream. Coordinators may comment on a group stream
// even when the group disabled comments.
type CanCommentFilter struct {
	people mapper.DomainMapper[[]string, []*domain.PersonModelView]
	groups mapper.DomainMapper[[]string, []*domain.DomainGroupModelView]
	access permission.CoordinatorAccess
}

func NewCanCommentFilter(
	people mapper.DomainMapper[[]string, []*domain.PersonModelView],
	groups mapper.DomainMapper[[]string, []*domain.DomainGroupModelView],
	access permission.CoordinatorAccess,
) *CanCommentFilter {
	return &CanCommentFilter{people: people, groups: groups, access: access}
}

func (f *CanCommentFilter) Filter(ctx context.Context, activities []*domain.ActivityDTO, viewer *domain.PersonModelView) error {
	if len(activities) == 0 {
		return nil
	}

	// Streams missing from the lookup stay commentable.
	personCommentable := make(map[string]bool)
	groupCommentable := make(map[string]bool)
	for _, a := range activities {
		switch destinationType(a) {
		case domain.EntityTypePerson:
			personCommentable[streamKey(a)] = true
		case domain.EntityTypeGroup:
			groupCommentable[streamKey(a)] = true
		default:
			return unsupportedDestination(a)
		}
	}

	if err := f.setPersonCommentable(ctx, viewer, personCommentable); err != nil {
		return err
	}
	if err := f.setGroupCommentable(ctx, viewer, groupCommentable); err != nil {
		return err
	}

	for _, a := range activities {
		if destinationType(a) == domain.EntityTypePerson {
			a.Commentable = personCommentable[streamKey(a)]
		} else {
			a.Commentable = groupCommentable[streamKey(a)]
		}
	}
	return nil
}

func (f *CanCommentFilter) setPersonCommentable(ctx context.Context, viewer *domain.PersonModelView, commentable map[string]bool) error {
	if len(commentable) == 0 {
		return nil
	}

	owners, err := f.people.Execute(ctx, slices.Sorted(maps.Keys(commentable)))
	if err != nil {
		return fmt.Errorf("failed to load stream owners: %w", err)
	}
	for _, owner := range owners {
		commentable[domain.NormalizeKey(owner.AccountID)] = owner.Commentable || viewer.MatchesAccount(owner.AccountID)
	}
	return nil
}

func (f *CanCommentFilter) setGroupCommentable(ctx context.Context, viewer *domain.PersonModelView, commentable map[string]bool) error {
	if len(commentable) == 0 {
		return nil
	}

	groups, err := f.groups.Execute(ctx, slices.Sorted(maps.Keys(commentable)))
	if err != nil {
		return fmt.Errorf("failed to load groups: %w", err)
	}
	for _, g := range groups {
		canComment := g.Commentable
		if !canComment && viewer != nil {
			canComment, err = f.access.HasGroupCoordinatorAccessRecursively(ctx, viewer.ID, g.ID)
			if err != nil {
				return fmt.Errorf("failed to check coordinator access to group %d: %w", g.ID, err)
			}
		}
		commentable[domain.NormalizeKey(g.ShortName)] = canComment
	}
	return nil
}
