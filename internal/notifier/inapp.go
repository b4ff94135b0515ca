package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	texttemplate "text/template"
	"time"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/notification"
	"eurekastreams-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Publisher fans a payload out to live subscribers. *redis.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// InAppNotifier stores a notification per recipient and publishes it on the
// recipient's channel. Every notification of one call shares an event id.
//
// Types with an aggregate message fold into the recipient's unread notification
// of the same type and url: its count grows and its message is re-rendered
// instead of a new row being stored.
type InAppNotifier struct {
	repo          repository.NotificationRepository
	publisher     Publisher
	channelPrefix string
	messages      map[domain.NotificationType]*texttemplate.Template
	aggregates    map[domain.NotificationType]*texttemplate.Template
	now           func() time.Time
}

func NewInAppNotifier(repo repository.NotificationRepository, publisher Publisher, channelPrefix string, messages, aggregates map[domain.NotificationType]string) (*InAppNotifier, error) {
	parsed, err := parseMessages(messages)
	if err != nil {
		return nil, err
	}
	parsedAggregates, err := parseMessages(aggregates)
	if err != nil {
		return nil, err
	}
	return &InAppNotifier{
		repo:          repo,
		publisher:     publisher,
		channelPrefix: channelPrefix,
		messages:      parsed,
		aggregates:    parsedAggregates,
		now:           time.Now,
	}, nil
}

func (n *InAppNotifier) Notify(ctx context.Context, t domain.NotificationType, recipients []int64, properties map[string]any, recipientIndex map[int64]*domain.PersonModelView) error {
	tmpl, ok := n.messages[t]
	if !ok || len(recipients) == 0 {
		return nil
	}

	var single *domain.PersonModelView
	if len(recipients) == 1 {
		single = recipientIndex[recipients[0]]
	}
	message, err := renderText(tmpl, templateData(t, properties, single))
	if err != nil {
		return fmt.Errorf("render %s message: %w", t, err)
	}

	eventID := uuid.NewString()
	createdOn := n.now().UTC()
	url := stringProperty(properties, notification.PropURL)
	highPriority := boolProperty(properties, notification.PropHighPriority)
	aggregate, aggregates := n.aggregates[t]
	aggregates = aggregates && url != ""

	var errs []error
	for _, recipientID := range recipients {
		recipient := recipientIndex[recipientID]
		if recipient == nil {
			logger.DebugContext(ctx, "Skipping unknown in-app recipient", "recipientID", recipientID, "type", t)
			continue
		}

		if aggregates {
			existing, err := n.repo.FindUnread(ctx, recipientID, t, url)
			if err != nil {
				errs = append(errs, fmt.Errorf("find unread notification for %d: %w", recipientID, err))
				continue
			}
			if existing != nil {
				if err := n.fold(ctx, existing, aggregate, t, properties, recipient, eventID, highPriority, createdOn); err != nil {
					errs = append(errs, fmt.Errorf("aggregate notification for %d: %w", recipientID, err))
					continue
				}
				n.publish(ctx, existing)
				continue
			}
		}

		note := &domain.InAppNotification{
			EventID:          eventID,
			RecipientID:      recipientID,
			Type:             t,
			Message:          message,
			URL:              url,
			HighPriority:     highPriority,
			CreatedOn:        createdOn,
			AggregationCount: 1,
		}
		if err := n.repo.Create(ctx, note); err != nil {
			errs = append(errs, fmt.Errorf("store notification for %d: %w", recipientID, err))
			continue
		}
		n.publish(ctx, note)
	}
	return errors.Join(errs...)
}

// fold adds one event to an unread notification and stores it.
func (n *InAppNotifier) fold(
	ctx context.Context,
	note *domain.InAppNotification,
	aggregate *texttemplate.Template,
	t domain.NotificationType,
	properties map[string]any,
	recipient *domain.PersonModelView,
	eventID string,
	highPriority bool,
	createdOn time.Time,
) error {
	count := max(note.AggregationCount, 1) + 1
	data := templateData(t, properties, recipient)
	data["count"] = count
	data["others"] = count - 1

	message, err := renderText(aggregate, data)
	if err != nil {
		return fmt.Errorf("render %s aggregate message: %w", t, err)
	}

	note.EventID = eventID
	note.Message = message
	note.HighPriority = note.HighPriority || highPriority
	note.AggregationCount = count
	note.CreatedOn = createdOn
	return n.repo.Update(ctx, note)
}

// publish is best effort: the notification is already stored and is picked up
// on the client's next poll.
func (n *InAppNotifier) publish(ctx context.Context, note *domain.InAppNotification) {
	if n.publisher == nil {
		return
	}
	payload, err := json.Marshal(note)
	if err != nil {
		logger.WarnContext(ctx, "Failed to marshal in-app notification", "notificationID", note.ID, "error", err)
		return
	}
	channel := fmt.Sprintf("%s%d", n.channelPrefix, note.RecipientID)
	if err := n.publisher.Publish(ctx, channel, payload).Err(); err != nil {
		logger.WarnContext(ctx, "Failed to publish in-app notification", "channel", channel, "error", err)
	}
}
