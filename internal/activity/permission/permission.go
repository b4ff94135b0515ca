// Package permission decides which activities and comments a viewer may delete.
package permission

import (
	"context"
	"fmt"
	"slices"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
)

// CoordinatorAccess answers coordinator questions. Both checks follow the
// organization hierarchy upward, so coordinators of a parent organization count.
type CoordinatorAccess interface {
	HasGroupCoordinatorAccessRecursively(ctx context.Context, personID, groupID int64) (bool, error)
	IsOrgCoordinatorRecursively(ctx context.Context, personID, orgID int64) (bool, error)
}

// ActivityDeleteStrategy sets Activity.Deletable for a viewer. An activity can be
// deleted by its author, by the owner of the personal stream it is on, by a
// coordinator of the group stream it is on, and by system administrators.
type ActivityDeleteStrategy struct {
	access CoordinatorAccess
	admins mapper.DomainMapper[mapper.NoKey, []int64]
}

func NewActivityDeleteStrategy(access CoordinatorAccess, admins mapper.DomainMapper[mapper.NoKey, []int64]) *ActivityDeleteStrategy {
	return &ActivityDeleteStrategy{access: access, admins: admins}
}

func (s *ActivityDeleteStrategy) Execute(ctx context.Context, viewer *domain.PersonModelView, activity *domain.ActivityDTO) error {
	deletable, err := s.deletable(ctx, viewer, activity)
	if err != nil {
		return err
	}
	activity.Deletable = deletable
	return nil
}

func (s *ActivityDeleteStrategy) deletable(ctx context.Context, viewer *domain.PersonModelView, activity *domain.ActivityDTO) (bool, error) {
	if viewer == nil {
		return false, nil
	}

	if actor := activity.Actor; actor != nil && actor.Type == domain.EntityTypePerson && viewer.MatchesAccount(actor.UniqueID) {
		return true, nil
	}

	stream := activity.DestinationStream
	if stream != nil && stream.Type == domain.EntityTypePerson && viewer.MatchesAccount(stream.UniqueID) {
		return true, nil
	}

	if stream != nil && stream.Type == domain.EntityTypeGroup {
		ok, err := s.access.HasGroupCoordinatorAccessRecursively(ctx, viewer.ID, stream.ID)
		if err != nil {
			return false, fmt.Errorf("failed to check coordinator access to group %d: %w", stream.ID, err)
		}
		if ok {
			return true, nil
		}
	}

	return isSystemAdmin(ctx, s.admins, viewer)
}

// CommentDeleteStrategy sets Comment.Deletable for a viewer. Whoever controls the
// stream the parent activity is on may delete every comment: the personal stream
// owner, a coordinator of the group, a coordinator of the owner's organization, or
// a system administrator. Anyone else may delete only their own comments.
type CommentDeleteStrategy struct {
	access            CoordinatorAccess
	admins            mapper.DomainMapper[mapper.NoKey, []int64]
	personByAccountID mapper.DomainMapper[string, *domain.PersonModelView]
}

func NewCommentDeleteStrategy(
	access CoordinatorAccess,
	admins mapper.DomainMapper[mapper.NoKey, []int64],
	personByAccountID mapper.DomainMapper[string, *domain.PersonModelView],
) *CommentDeleteStrategy {
	return &CommentDeleteStrategy{access: access, admins: admins, personByAccountID: personByAccountID}
}

func (s *CommentDeleteStrategy) Execute(ctx context.Context, viewer *domain.PersonModelView, activity *domain.ActivityDTO, comments []*domain.CommentDTO) error {
	if viewer == nil {
		setAll(comments, false)
		return nil
	}

	all, err := s.controlsStream(ctx, viewer, activity.DestinationStream)
	if err != nil {
		return err
	}
	if all {
		setAll(comments, true)
		return nil
	}

	for _, c := range comments {
		c.Deletable = c.AuthorID == viewer.ID
	}
	return nil
}

func (s *CommentDeleteStrategy) controlsStream(ctx context.Context, viewer *domain.PersonModelView, stream *domain.StreamEntityDTO) (bool, error) {
	if stream != nil {
		switch stream.Type {
		case domain.EntityTypePerson:
			if viewer.MatchesAccount(stream.UniqueID) {
				return true, nil
			}
			owner, err := s.personByAccountID.Execute(ctx, domain.NormalizeKey(stream.UniqueID))
			if err != nil {
				return false, fmt.Errorf("failed to load stream owner %q: %w", stream.UniqueID, err)
			}
			if owner != nil && owner.ParentOrganizationID != nil {
				ok, err := s.access.IsOrgCoordinatorRecursively(ctx, viewer.ID, *owner.ParentOrganizationID)
				if err != nil {
					return false, fmt.Errorf("failed to check coordinator access to organization %d: %w", *owner.ParentOrganizationID, err)
				}
				if ok {
					return true, nil
				}
			}
		case domain.EntityTypeGroup:
			ok, err := s.access.HasGroupCoordinatorAccessRecursively(ctx, viewer.ID, stream.ID)
			if err != nil {
				return false, fmt.Errorf("failed to check coordinator access to group %d: %w", stream.ID, err)
			}
			if ok {
				return true, nil
			}
		}
	}
	return isSystemAdmin(ctx, s.admins, viewer)
}

func isSystemAdmin(ctx context.Context, admins mapper.DomainMapper[mapper.NoKey, []int64], viewer *domain.PersonModelView) (bool, error) {
	if viewer.HasRole(domain.RoleSystemAdmin) {
		return true, nil
	}
	ids, err := admins.Execute(ctx, mapper.NoKey{})
	if err != nil {
		return false, fmt.Errorf("failed to load system administrators: %w", err)
	}
	return slices.Contains(ids, viewer.ID), nil
}

func setAll(comments []*domain.CommentDTO, deletable bool) {
	for _, c := range comments {
		c.Deletable = deletable
	}
}
