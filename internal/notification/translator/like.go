package translator

import (
	"context"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/notification"
)

// LikeTranslator notifies the author of a liked activity, and the person who
// shared it when it is a reshare. Liking your own activity, or an activity posted
// as a group, yields an empty batch.
type LikeTranslator struct {
	activities mapper.DomainMapper[int64, *domain.ActivityDTO]
}

func NewLikeTranslator(activities mapper.DomainMapper[int64, *domain.ActivityDTO]) *LikeTranslator {
	return &LikeTranslator{activities: activities}
}

func (t *LikeTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	activity, err := fetchActivity(ctx, t.activities, req.ActivityID)
	if err != nil || activity == nil {
		return nil, err
	}

	author := activity.Author()
	if author == nil || author.Type == domain.EntityTypeGroup || author.ID == req.ActorID {
		return notification.NewBatch(), nil
	}

	recipients := notification.NewRecipientAssigner(req.ActorID)
	recipients.Assign(domain.NotificationLikeActivity, author.ID)
	if activity.IsReshare() && activity.Actor != nil && activity.Actor.Type == domain.EntityTypePerson {
		recipients.Assign(domain.NotificationLikeActivity, activity.Actor.ID)
	}

	batch := newActivityBatch(req.ActorID, activity)
	recipients.ApplyTo(batch)
	return batch, nil
}
