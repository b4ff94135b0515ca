package notifier

import (
	"context"
	"fmt"
	texttemplate "text/template"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/notification"
	"eurekastreams-backend/internal/repository"

	"firebase.google.com/go/v4/messaging"
)

// maxMulticastTokens is the FCM limit on tokens per multicast request.
const maxMulticastTokens = 500

// PushClient sends a message to many devices. *messaging.Client satisfies it.
type PushClient interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// PushNotifier sends mobile push notifications to every registered device of the
// recipients.
type PushNotifier struct {
	client   PushClient
	devices  repository.DeviceRepository
	title    string
	messages map[domain.NotificationType]*texttemplate.Template
}

func NewPushNotifier(client PushClient, devices repository.DeviceRepository, title string, messages map[domain.NotificationType]string) (*PushNotifier, error) {
	parsed, err := parseMessages(messages)
	if err != nil {
		return nil, err
	}
	return &PushNotifier{client: client, devices: devices, title: title, messages: parsed}, nil
}

func (n *PushNotifier) Notify(ctx context.Context, t domain.NotificationType, recipients []int64, properties map[string]any, recipientIndex map[int64]*domain.PersonModelView) error {
	tmpl, ok := n.messages[t]
	if !ok || len(recipients) == 0 {
		return nil
	}

	tokensByPerson, err := n.devices.GetPushTokens(ctx, recipients)
	if err != nil {
		return fmt.Errorf("load push tokens: %w", err)
	}
	var tokens []string
	for _, id := range recipients {
		tokens = append(tokens, tokensByPerson[id]...)
	}
	if len(tokens) == 0 {
		return nil
	}

	var single *domain.PersonModelView
	if len(recipients) == 1 {
		single = recipientIndex[recipients[0]]
	}
	body, err := renderText(tmpl, templateData(t, properties, single))
	if err != nil {
		return fmt.Errorf("render %s message: %w", t, err)
	}

	msg := &messaging.MulticastMessage{
		Notification: &messaging.Notification{Title: n.title, Body: body},
		Data: map[string]string{
			"type": string(t),
			"url":  stringProperty(properties, notification.PropURL),
		},
	}
	if boolProperty(properties, notification.PropHighPriority) {
		msg.Android = &messaging.AndroidConfig{Priority: "high"}
		msg.APNS = &messaging.APNSConfig{Headers: map[string]string{"apns-priority": "10"}}
	}

	for start := 0; start < len(tokens); start += maxMulticastTokens {
		end := min(start+maxMulticastTokens, len(tokens))
		msg.Tokens = tokens[start:end]

		logger.ExternalServiceCall(ctx, "fcm", "SendEachForMulticast", "type", t, "tokens", len(msg.Tokens))
		resp, err := n.client.SendEachForMulticast(ctx, msg)
		logger.ExternalServiceResult(ctx, "fcm", "SendEachForMulticast", err, "type", t)
		if err != nil {
			return fmt.Errorf("send %s push: %w", t, err)
		}
		if resp != nil && resp.FailureCount > 0 {
			logger.WarnContext(ctx, "Some push notifications were not delivered", "type", t, "failed", resp.FailureCount, "sent", resp.SuccessCount)
		}
	}
	return nil
}
