// Package notifier delivers rendered notifications over the supported channels.
package notifier

import (
	"context"
	"fmt"

	"eurekastreams-backend/internal/domain"
)

// Notifier delivers one notification type to a set of recipients. Properties are
// already resolved. recipientIndex holds the person view of every recipient.
// A notifier with no template for the type skips it without error.
type Notifier interface {
	Notify(ctx context.Context, t domain.NotificationType, recipients []int64, properties map[string]any, recipientIndex map[int64]*domain.PersonModelView) error
}

// templateData is what message templates are executed against: the resolved
// properties plus the notification type, and the recipient when there is only one.
func templateData(t domain.NotificationType, properties map[string]any, recipient *domain.PersonModelView) map[string]any {
	data := make(map[string]any, len(properties)+2)
	for k, v := range properties {
		data[k] = v
	}
	data["type"] = t
	if recipient != nil {
		data["recipient"] = recipient
	}
	return data
}

// DisplayName renders an entity the way messages refer to it.
func DisplayName(v any) string {
	switch e := v.(type) {
	case nil:
		return ""
	case *domain.PersonModelView:
		if e == nil {
			return ""
		}
		if name := domain.StringValue(e.DisplayName); name != "" {
			return name
		}
		return e.AccountID
	case *domain.DomainGroupModelView:
		if e == nil {
			return ""
		}
		return e.Name
	case *domain.StreamEntityDTO:
		if e == nil {
			return ""
		}
		return e.DisplayName
	case string:
		return e
	default:
		return fmt.Sprint(v)
	}
}

func stringProperty(properties map[string]any, key string) string {
	s, _ := properties[key].(string)
	return s
}

func boolProperty(properties map[string]any, key string) bool {
	b, _ := properties[key].(bool)
	return b
}
