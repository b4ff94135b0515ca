package translator

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/mapper"
	"eurekastreams-backend/internal/notification"
)

// PreBuiltNotificationTranslator delivers a message composed by the caller, such
// as an application alert, to one person. The actor is not excluded: a person may
// send themselves an alert.
type PreBuiltNotificationTranslator struct{}

func NewPreBuiltNotificationTranslator() *PreBuiltNotificationTranslator {
	return &PreBuiltNotificationTranslator{}
}

func (t *PreBuiltNotificationTranslator) Translate(_ context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	if req.DestinationID == 0 {
		return nil, nil
	}

	batch := notification.NewBatch()
	batch.SetRecipients(domain.NotificationPassThrough, []int64{req.DestinationID})
	if req.ActorID != 0 {
		batch.SetPlaceholder(notification.PropActor, domain.EntityTypePerson, req.ActorID)
	}
	batch.SetLiteral(notification.PropMessage, req.Message)
	batch.SetLiteral(notification.PropURL, req.URL)
	batch.SetLiteral(notification.PropHighPriority, req.HighPriority)
	return batch, nil
}

// FlagTranslator tells the system administrators that an activity was flagged as
// inappropriate.
type FlagTranslator struct {
	activities mapper.DomainMapper[int64, *domain.ActivityDTO]
	admins     mapper.DomainMapper[mapper.NoKey, []int64]
}

func NewFlagTranslator(
	activities mapper.DomainMapper[int64, *domain.ActivityDTO],
	admins mapper.DomainMapper[mapper.NoKey, []int64],
) *FlagTranslator {
	return &FlagTranslator{activities: activities, admins: admins}
}

func (t *FlagTranslator) Translate(ctx context.Context, req *domain.NotificationRequest) (*notification.Batch, error) {
	activity, err := fetchActivity(ctx, t.activities, req.ActivityID)
	if err != nil || activity == nil {
		return nil, err
	}

	admins, err := t.admins.Execute(ctx, mapper.NoKey{})
	if err != nil {
		return nil, fmt.Errorf("failed to load system administrators: %w", err)
	}
	recipients := notification.NewRecipientAssigner(req.ActorID)
	if recipients.Assign(domain.NotificationFlagActivity, admins...) == 0 {
		return nil, nil
	}

	batch := newActivityBatch(req.ActorID, activity)
	recipients.ApplyTo(batch)
	return batch, nil
}
