package translator

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/notification"
)

// CommentTranslator notifies the people involved with an activity that it was
// commented on. Each person gets one notification, chosen in this order: author of
// the post, owner of the personal stream, earlier commenter, saver.
type CommentTranslator struct {
	comments   mapper.DomainMapper[int64, *domain.CommentDTO]
	activities mapper.DomainMapper[int64, *domain.ActivityDTO]
	commenters mapper.DomainMapper[int64, []int64]
	savers     mapper.DomainMapper[int64, []int64]
}

func NewCommentTranslator(
	comments mapper.DomainMapper[int64, *domain.CommentDTO],
	activities mapper.DomainMapper[int64, *domain.ActivityDTO],
	commenters mapper.DomainMapper[int64, []int64],
	savers mapper.DomainMapper[int64, []int64],
) *CommentTranslator {
	return &CommentTranslator{comments: comments, activities: activities, commenters: commenters, savers: savers}
}

func (t *CommentTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	return t.translate(ctx, req, nil)
}

// GroupCommentTranslator also notifies the coordinators of the group stream the
// activity was posted to. Without a coordinator mapper it behaves like
// CommentTranslator.
type GroupCommentTranslator struct {
	CommentTranslator
	coordinators mapper.DomainMapper[int64, []int64]
}

func NewGroupCommentTranslator(
	comments mapper.DomainMapper[int64, *domain.CommentDTO],
	activities mapper.DomainMapper[int64, *domain.ActivityDTO],
	commenters mapper.DomainMapper[int64, []int64],
	savers mapper.DomainMapper[int64, []int64],
	coordinators mapper.DomainMapper[int64, []int64],
) *GroupCommentTranslator {
	return &GroupCommentTranslator{
		CommentTranslator: *NewCommentTranslator(comments, activities, commenters, savers),
		coordinators:      coordinators,
	}
}

func (t *GroupCommentTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	return t.translate(ctx, req, t.coordinators)
}

func (t *CommentTranslator) translate(
	ctx context.Context,
	req *domain.NotificationRequest,
	coordinators mapper.DomainMapper[int64, []int64],
) (*notification.Batch, error) {
	comment, err := t.comments.Execute(ctx, req.CommentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment %d: %w", req.CommentID, err)
	}
	if comment == nil {
		logger.Debug("Comment no longer exists, nothing to notify", "commentID", req.CommentID)
		return nil, nil
	}

	activityID := req.ActivityID
	if activityID == 0 {
		activityID = comment.ActivityID
	}
	activity, err := fetchActivity(ctx, t.activities, activityID)
	if err != nil || activity == nil {
		return nil, err
	}
	stream := activity.DestinationStream

	recipients := notification.NewRecipientAssigner(req.ActorID)
	if activity.Actor != nil && activity.Actor.Type == domain.EntityTypePerson {
		recipients.Assign(domain.NotificationCommentToPersonalPost, activity.Actor.ID)
	}
	if stream != nil && stream.Type == domain.EntityTypePerson {
		recipients.Assign(domain.NotificationCommentToPersonalStream, stream.ID)
	}

	commenters, err := fetchIDs(ctx, t.commenters, activityID, "commenters")
	if err != nil {
		return nil, err
	}
	recipients.Assign(domain.NotificationCommentToCommentedPost, commenters...)

	if coordinators != nil && stream != nil && stream.Type == domain.EntityTypeGroup {
		ids, err := fetchIDs(ctx, coordinators, stream.ID, "group coordinators")
		if err != nil {
			return nil, err
		}
		recipients.Assign(domain.NotificationCommentToGroupStream, ids...)
	}

	savers, err := fetchIDs(ctx, t.savers, activityID, "savers")
	if err != nil {
		return nil, err
	}
	recipients.Assign(domain.NotificationCommentToSavedPost, savers...)

	if recipients.IsEmpty() {
		return nil, nil
	}

	batch := newActivityBatch(req.ActorID, activity)
	recipients.ApplyTo(batch)
	batch.SetLiteral(notification.PropComment, comment)
	return batch, nil
}
