package translator

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/notification"
)

// RequestGroupAccessTranslator asks the coordinators of a private group to review
// an access request.
type RequestGroupAccessTranslator struct {
	coordinators mapper.DomainMapper[int64, []int64]
}

func NewRequestGroupAccessTranslator(coordinators mapper.DomainMapper[int64, []int64]) *RequestGroupAccessTranslator {
	return &RequestGroupAccessTranslator{coordinators: coordinators}
}

func (t *RequestGroupAccessTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	coordinators, err := fetchIDs(ctx, t.coordinators, req.DestinationID, "group coordinators")
	if err != nil {
		return nil, err
	}
	return newGroupBatch(req, domain.NotificationRequestGroupAccess, coordinators), nil
}

// RequestNewGroupTranslator asks the system administrators to review a newly
// requested group.
type RequestNewGroupTranslator struct {
	admins mapper.DomainMapper[mapper.NoKey, []int64]
}

func NewRequestNewGroupTranslator(admins mapper.DomainMapper[mapper.NoKey, []int64]) *RequestNewGroupTranslator {
	return &RequestNewGroupTranslator{admins: admins}
}

func (t *RequestNewGroupTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	admins, err := t.admins.Execute(ctx, mapper.NoKey{})
	if err != nil {
		return nil, fmt.Errorf("failed to load system administrators: %w", err)
	}
	return newGroupBatch(req, domain.NotificationRequestNewGroup, admins), nil
}

// PendingGroupApprovedTranslator tells the coordinators of a requested group that
// it was approved.
type PendingGroupApprovedTranslator struct {
	coordinators mapper.DomainMapper[int64, []int64]
}

func NewPendingGroupApprovedTranslator(coordinators mapper.DomainMapper[int64, []int64]) *PendingGroupApprovedTranslator {
	return &PendingGroupApprovedTranslator{coordinators: coordinators}
}

func (t *PendingGroupApprovedTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	coordinators, err := fetchIDs(ctx, t.coordinators, req.DestinationID, "group coordinators")
	if err != nil {
		return nil, err
	}
	return newGroupBatch(req, domain.NotificationRequestNewGroupApproved, coordinators), nil
}

// PendingGroupDeniedTranslator tells the would-be coordinators of a requested
// group that it was denied. The group is deleted on denial, so the recipients and
// the group name travel in the request.
type PendingGroupDeniedTranslator struct{}

func NewPendingGroupDeniedTranslator() *PendingGroupDeniedTranslator {
	return &PendingGroupDeniedTranslator{}
}

func (t *PendingGroupDeniedTranslator) Translate(_ context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	recipients := notification.NewRecipientAssigner(req.ActorID)
	if recipients.Assign(domain.NotificationRequestNewGroupDenied, req.RecipientIDs...) == 0 {
		return nil, nil
	}

	batch := notification.NewBatch()
	recipients.ApplyTo(batch)
	batch.SetPlaceholder(notification.PropActor, domain.EntityTypePerson, req.ActorID)
	batch.SetLiteral(notification.PropGroupName, req.GroupName)
	return batch, nil
}

// GroupMembershipResponseTranslator tells a person that their request for access
// to a group was answered.
type GroupMembershipResponseTranslator struct {
	notificationType domain.NotificationType
}

func NewGroupMembershipResponseTranslator(t domain.NotificationType) *GroupMembershipResponseTranslator {
	return &GroupMembershipResponseTranslator{notificationType: t}
}

func (t *GroupMembershipResponseTranslator) Translate(_ context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	if req.RequestorID == 0 {
		return nil, nil
	}
	return newGroupBatch(req, t.notificationType, []int64{req.RequestorID}), nil
}

// newGroupBatch builds a batch about the group named by the request destination,
// or returns nil when no recipient remains once the actor is excluded.
func newGroupBatch(req *domain.NotificationRequest, t domain.NotificationType, ids []int64) *notification.Batch {
	recipients := notification.NewRecipientAssigner(req.ActorID)
	if recipients.Assign(t, ids...) == 0 {
		return nil
	}

	batch := notification.NewBatch()
	recipients.ApplyTo(batch)
	batch.SetPlaceholder(notification.PropActor, domain.EntityTypePerson, req.ActorID)
	batch.SetPlaceholder(notification.PropGroup, domain.EntityTypeGroup, req.DestinationID)
	batch.SetAlias(notification.PropStream, notification.PropGroup)
	batch.SetAlias(notification.PropSource, notification.PropGroup)
	return batch
}
