package translator

import (
	"context"
	"slices"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/notification"
)

// PostPersonStreamTranslator notifies the owner and the followers of a personal
// stream of a new post. The owner is told about a post to their stream rather than
// a post to a stream they follow.
type PostPersonStreamTranslator struct {
	followers mapper.DomainMapper[int64, []int64]
}

func NewPostPersonStreamTranslator(followers mapper.DomainMapper[int64, []int64]) *PostPersonStreamTranslator {
	return &PostPersonStreamTranslator{followers: followers}
}

func (t *PostPersonStreamTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	followers, err := fetchIDs(ctx, t.followers, req.DestinationID, "followers")
	if err != nil {
		return nil, err
	}

	recipients := notification.NewRecipientAssigner(req.ActorID)
	recipients.Assign(domain.NotificationPostToPersonalStream, req.DestinationID)
	recipients.Assign(domain.NotificationPostToFollowedStream, followers...)
	if recipients.IsEmpty() {
		return nil, nil
	}

	return newPostBatch(req, domain.EntityTypePerson, recipients), nil
}

// PostGroupStreamTranslator notifies the subscribers of a group stream of a new
// post. Subscribers who asked to hear only from coordinators are included when
// the poster is a coordinator.
type PostGroupStreamTranslator struct {
	coordinators            mapper.DomainMapper[int64, []int64]
	subscribers             mapper.DomainMapper[int64, []int64]
	unrestrictedSubscribers mapper.DomainMapper[int64, []int64]
}

func NewPostGroupStreamTranslator(
	coordinators mapper.DomainMapper[int64, []int64],
	subscribers mapper.DomainMapper[int64, []int64],
	unrestrictedSubscribers mapper.DomainMapper[int64, []int64],
) *PostGroupStreamTranslator {
	return &PostGroupStreamTranslator{
		coordinators:            coordinators,
		subscribers:             subscribers,
		unrestrictedSubscribers: unrestrictedSubscribers,
	}
}

func (t *PostGroupStreamTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	coordinators, err := fetchIDs(ctx, t.coordinators, req.DestinationID, "group coordinators")
	if err != nil {
		return nil, err
	}

	var subscribers []int64
	if slices.Contains(coordinators, req.ActorID) {
		subscribers, err = fetchIDs(ctx, t.subscribers, req.DestinationID, "group subscribers")
	} else {
		subscribers, err = fetchIDs(ctx, t.unrestrictedSubscribers, req.DestinationID, "unrestricted group subscribers")
	}
	if err != nil {
		return nil, err
	}

	recipients := notification.NewRecipientAssigner(req.ActorID)
	if recipients.Assign(domain.NotificationPostToFollowedStream, subscribers...) == 0 {
		return nil, nil
	}
	return newPostBatch(req, domain.EntityTypeGroup, recipients), nil
}

// GroupStreamPostTranslator notifies the coordinators of a group stream that it
// was posted to, and its unrestricted subscribers that a followed stream was.
type GroupStreamPostTranslator struct {
	coordinators            mapper.DomainMapper[int64, []int64]
	unrestrictedSubscribers mapper.DomainMapper[int64, []int64]
}

func NewGroupStreamPostTranslator(
	coordinators mapper.DomainMapper[int64, []int64],
	unrestrictedSubscribers mapper.DomainMapper[int64, []int64],
) *GroupStreamPostTranslator {
	return &GroupStreamPostTranslator{coordinators: coordinators, unrestrictedSubscribers: unrestrictedSubscribers}
}

func (t *GroupStreamPostTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	coordinators, err := fetchIDs(ctx, t.coordinators, req.DestinationID, "group coordinators")
	if err != nil {
		return nil, err
	}
	subscribers, err := fetchIDs(ctx, t.unrestrictedSubscribers, req.DestinationID, "unrestricted group subscribers")
	if err != nil {
		return nil, err
	}

	recipients := notification.NewRecipientAssigner(req.ActorID)
	recipients.Assign(domain.NotificationPostToGroupStream, coordinators...)
	recipients.Assign(domain.NotificationPostToFollowedStream, subscribers...)
	if recipients.IsEmpty() {
		return nil, nil
	}
	return newPostBatch(req, domain.EntityTypeGroup, recipients), nil
}

// StreamPostTranslator handles posts to either kind of stream, choosing the
// person or group translation by the destination type.
type StreamPostTranslator struct {
	person Translator
	group  Translator
}

func NewStreamPostTranslator(person, group Translator) *StreamPostTranslator {
	return &StreamPostTranslator{person: person, group: group}
}

func (t *StreamPostTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	switch req.DestinationType {
	case domain.EntityTypePerson:
		return t.person.Translate(ctx, req)
	case domain.EntityTypeGroup:
		return t.group.Translate(ctx, req)
	default:
		return nil, unsupportedDestination(req)
	}
}

func newPostBatch(req *domain.NotificationRequest, streamType domain.EntityType, recipients *notification.RecipientAssigner) *notification.Batch {
	batch := newStreamBatch(req.ActorID, streamType, req.DestinationID)
	recipients.ApplyTo(batch)
	batch.SetPlaceholder(notification.PropActivity, notification.PlaceholderActivity, req.ActivityID)
	batch.SetLiteral(notification.PropURL, activityURL(req.ActivityID))
	return batch
}
