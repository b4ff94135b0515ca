package translator

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/notification"
)

// FollowPersonTranslator notifies a person that someone started following them.
type FollowPersonTranslator struct{}

func NewFollowPersonTranslator() *FollowPersonTranslator {
	return &FollowPersonTranslator{}
}

func (t *FollowPersonTranslator) Translate(_ context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	if req.DestinationID == 0 || req.DestinationID == req.ActorID {
		return nil, nil
	}

	batch := newStreamBatch(req.ActorID, domain.EntityTypePerson, req.DestinationID)
	batch.SetRecipients(domain.NotificationFollowPerson, []int64{req.DestinationID})
	return batch, nil
}

// FollowGroupTranslator notifies the coordinators of a group that someone
// started following it. A coordinator following their own group is not told.
type FollowGroupTranslator struct {
	coordinators mapper.DomainMapper[int64, []int64]
}

func NewFollowGroupTranslator(coordinators mapper.DomainMapper[int64, []int64]) *FollowGroupTranslator {
	return &FollowGroupTranslator{coordinators: coordinators}
}

func (t *FollowGroupTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	coordinators, err := fetchIDs(ctx, t.coordinators, req.DestinationID, "group coordinators")
	if err != nil {
		return nil, err
	}

	recipients := notification.NewRecipientAssigner(req.ActorID)
	if recipients.Assign(domain.NotificationFollowGroup, coordinators...) == 0 {
		logger.Debug("No coordinators left to notify of new follower", "groupID", req.DestinationID)
		return nil, nil
	}

	batch := newStreamBatch(req.ActorID, domain.EntityTypeGroup, req.DestinationID)
	recipients.ApplyTo(batch)
	return batch, nil
}

// FollowerTranslator handles follow events for either kind of stream, choosing
// the person or group translation by the destination type.
type FollowerTranslator struct {
	person Translator
	group  Translator
}

func NewFollowerTranslator(person, group Translator) *FollowerTranslator {
	return &FollowerTranslator{person: person, group: group}
}

func (t *FollowerTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	switch req.DestinationType {
	case domain.EntityTypePerson:
		return t.person.Translate(ctx, req)
	case domain.EntityTypeGroup:
		return t.group.Translate(ctx, req)
	default:
		return nil, unsupportedDestination(req)
	}
}

// GroupFollowerTranslator is the group follow translation for callers that need
// the group itself in the message. A group that no longer exists produces nothing.
type GroupFollowerTranslator struct {
	groups       mapper.DomainMapper[int64, *domain.DomainGroupModelView]
	coordinators mapper.DomainMapper[int64, []int64]
}

func NewGroupFollowerTranslator(
	groups mapper.DomainMapper[int64, *domain.DomainGroupModelView],
	coordinators mapper.DomainMapper[int64, []int64],
) *GroupFollowerTranslator {
	return &GroupFollowerTranslator{groups: groups, coordinators: coordinators}
}

func (t *GroupFollowerTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	group, err := t.groups.Execute(ctx, req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group %d: %w", req.DestinationID, err)
	}
	if group == nil {
		logger.Debug("Group no longer exists, nothing to notify", "groupID", req.DestinationID)
		return nil, nil
	}

	coordinators, err := fetchIDs(ctx, t.coordinators, group.ID, "group coordinators")
	if err != nil {
		return nil, err
	}
	recipients := notification.NewRecipientAssigner(req.ActorID)
	if recipients.Assign(domain.NotificationFollowGroup, coordinators...) == 0 {
		return nil, nil
	}

	batch := notification.NewBatch()
	recipients.ApplyTo(batch)
	batch.SetPlaceholder(notification.PropActor, domain.EntityTypePerson, req.ActorID)
	batch.SetLiteral(notification.PropGroup, group)
	batch.SetAlias(notification.PropStream, notification.PropGroup)
	batch.SetAlias(notification.PropSource, notification.PropGroup)
	return batch, nil
}
