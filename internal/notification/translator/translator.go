// Package translator converts notification requests into notification batches,
// one strategy per request type.
package translator

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/notification"
)

// Translator computes who is notified about an event and with which properties.
// A nil batch with a nil error means no notification is warranted.
type Translator interface {
	Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error)
}

// Registry maps each enabled request type to its translator. A missing entry
// disables notifications for that type.
type Registry map[domain.RequestType]Translator

func (r Registry) Lookup(t domain.RequestType) (Translator, bool) {
	tr, ok := r[t]
	return tr, ok
}

// Mappers are the lookups translators read domain data through. Id-list mappers
// are keyed by the id of the activity, person or group they describe.
type Mappers struct {
	Comments                mapper.DomainMapper[int64, *domain.CommentDTO]
	Activities              mapper.DomainMapper[int64, *domain.ActivityDTO]
	Groups                  mapper.DomainMapper[int64, *domain.DomainGroupModelView]
	Commenters              mapper.DomainMapper[int64, []int64]
	Savers                  mapper.DomainMapper[int64, []int64]
	Followers               mapper.DomainMapper[int64, []int64]
	Coordinators            mapper.DomainMapper[int64, []int64]
	GroupSubscribers        mapper.DomainMapper[int64, []int64]
	UnrestrictedSubscribers mapper.DomainMapper[int64, []int64]
	SystemAdmins            mapper.DomainMapper[mapper.NoKey, []int64]
}

// NewRegistry wires a translator for every request type.
func NewRegistry(m Mappers) Registry {
	followPerson := NewFollowPersonTranslator()
	followGroup := NewFollowGroupTranslator(m.Coordinators)
	postPerson := NewPostPersonStreamTranslator(m.Followers)
	groupStreamPost := NewGroupStreamPostTranslator(m.Coordinators, m.UnrestrictedSubscribers)

	return Registry{
		domain.RequestComment:             NewCommentTranslator(m.Comments, m.Activities, m.Commenters, m.Savers),
		domain.RequestGroupComment:        NewGroupCommentTranslator(m.Comments, m.Activities, m.Commenters, m.Savers, m.Coordinators),
		domain.RequestFollowPerson:        followPerson,
		domain.RequestFollowGroup:         followGroup,
		domain.RequestFollower:            NewFollowerTranslator(followPerson, followGroup),
		domain.RequestGroupFollower:       NewGroupFollowerTranslator(m.Groups, m.Coordinators),
		domain.RequestLikeActivity:        NewLikeTranslator(m.Activities),
		domain.RequestPostPersonStream:    postPerson,
		domain.RequestPostGroupStream:     NewPostGroupStreamTranslator(m.Coordinators, m.GroupSubscribers, m.UnrestrictedSubscribers),
		domain.RequestStreamPost:          NewStreamPostTranslator(postPerson, groupStreamPost),
		domain.RequestGroupStreamPost:     groupStreamPost,
		domain.RequestGroupAccess:         NewRequestGroupAccessTranslator(m.Coordinators),
		domain.RequestNewGroup:            NewRequestNewGroupTranslator(m.SystemAdmins),
		domain.RequestNewGroupApproved:    NewPendingGroupApprovedTranslator(m.Coordinators),
		domain.RequestNewGroupDenied:      NewPendingGroupDeniedTranslator(),
		domain.RequestGroupAccessApproved: NewGroupMembershipResponseTranslator(domain.NotificationRequestGroupAccessApproved),
		domain.RequestGroupAccessDenied:   NewGroupMembershipResponseTranslator(domain.NotificationRequestGroupAccessDenied),
		domain.RequestPrebuilt:            NewPreBuiltNotificationTranslator(),
		domain.RequestFlagActivity:        NewFlagTranslator(m.Activities, m.SystemAdmins),
	}
}

func activityURL(activityID int64) string {
	return fmt.Sprintf("#activity/%d", activityID)
}

// newStreamBatch starts a batch with the properties every stream event carries:
// the acting person and the stream, which is also the message source.
func newStreamBatch(actorID int64, streamType domain.EntityType, streamID int64) *notification.Batch {
	batch := notification.NewBatch()
	batch.SetPlaceholder(notification.PropActor, domain.EntityTypePerson, actorID)
	batch.SetPlaceholder(notification.PropStream, streamType, streamID)
	batch.SetAlias(notification.PropSource, notification.PropStream)
	return batch
}

// newActivityBatch is newStreamBatch for the stream an activity was posted to,
// with the activity itself attached.
func newActivityBatch(actorID int64, activity *domain.ActivityDTO) *notification.Batch {
	var batch *notification.Batch
	if stream := activity.DestinationStream; stream != nil {
		batch = newStreamBatch(actorID, stream.Type, stream.ID)
	} else {
		batch = notification.NewBatch()
		batch.SetPlaceholder(notification.PropActor, domain.EntityTypePerson, actorID)
	}
	batch.SetLiteral(notification.PropActivity, activity)
	batch.SetLiteral(notification.PropURL, activityURL(activity.ID))
	return batch
}

func fetchIDs(ctx context.Context, m mapper.DomainMapper[int64, []int64], key int64, what string) ([]int64, error) {
	ids, err := m.Execute(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s of %d: %w", what, key, err)
	}
	return ids, nil
}

func fetchActivity(ctx context.Context, m mapper.DomainMapper[int64, *domain.ActivityDTO], id int64) (*domain.ActivityDTO, error) {
	activity, err := m.Execute(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity %d: %w", id, err)
	}
	if activity == nil {
		logger.Debug("Activity no longer exists, nothing to notify", "activityID", id)
	}
	return activity, nil
}

func unsupportedDestination(req *domain.NotificationRequest) error {
	return fmt.Errorf("%s request with unsupported destination type %q: %w", req.Type, req.DestinationType, domain.ErrInvalidArgument)
}
