package notifier

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"eurekastreams-backend/internal/domain"
)

// DefaultMessages are the one-line messages shown in-app and in push
// notifications, and used as email subjects.
var DefaultMessages = map[domain.NotificationType]string{
	domain.NotificationCommentToPersonalPost:      `{{name .actor}} commented on your post`,
	domain.NotificationCommentToPersonalStream:    `{{name .actor}} commented on a post in your stream`,
	domain.NotificationCommentToCommentedPost:     `{{name .actor}} commented on a post you commented on`,
	domain.NotificationCommentToSavedPost:         `{{name .actor}} commented on a post you saved`,
	domain.NotificationCommentToGroupStream:       `{{name .actor}} commented on a post in {{name .stream}}`,
	domain.NotificationPostToPersonalStream:       `{{name .actor}} posted to your stream`,
	domain.NotificationPostToFollowedStream:       `{{name .actor}} posted to {{name .stream}}`,
	domain.NotificationPostToGroupStream:          `{{name .actor}} posted to {{name .stream}}`,
	domain.NotificationFollowPerson:               `{{name .actor}} is now following you`,
	domain.NotificationFollowGroup:                `{{name .actor}} is now following {{name .stream}}`,
	domain.NotificationLikeActivity:               `{{name .actor}} liked your post`,
	domain.NotificationFlagActivity:               `A post in {{name .stream}} was flagged as inappropriate`,
	domain.NotificationRequestNewGroup:            `{{name .actor}} requested the new group {{name .group}}`,
	domain.NotificationRequestNewGroupApproved:    `Your new group {{name .group}} was approved`,
	domain.NotificationRequestNewGroupDenied:      `Your request for the new group {{.groupName}} was denied`,
	domain.NotificationRequestGroupAccess:         `{{name .actor}} requested access to {{name .group}}`,
	domain.NotificationRequestGroupAccessApproved: `Your request to join {{name .group}} was approved`,
	domain.NotificationRequestGroupAccessDenied:   `Your request to join {{name .group}} was denied`,
	domain.NotificationPassThrough:                `{{.message}}`,
}

// DefaultAggregateMessages replace an unread in-app notification's message when
// another event of the same type arrives for the same url. .others counts the
// earlier events.
var DefaultAggregateMessages = map[domain.NotificationType]string{
	domain.NotificationCommentToPersonalPost:   `{{name .actor}} and {{others .others}} commented on your post`,
	domain.NotificationCommentToPersonalStream: `{{name .actor}} and {{others .others}} commented on a post in your stream`,
	domain.NotificationCommentToCommentedPost:  `{{name .actor}} and {{others .others}} commented on a post you commented on`,
	domain.NotificationCommentToSavedPost:      `{{name .actor}} and {{others .others}} commented on a post you saved`,
	domain.NotificationCommentToGroupStream:    `{{name .actor}} and {{others .others}} commented on a post in {{name .stream}}`,
	domain.NotificationLikeActivity:            `{{name .actor}} and {{others .others}} liked your post`,
}

var templateFuncs = map[string]any{
	"name":   DisplayName,
	"others": othersText,
}

func othersText(n int32) string {
	if n == 1 {
		return "1 other"
	}
	return fmt.Sprintf("%d others", n)
}

func parseMessages(messages map[domain.NotificationType]string) (map[domain.NotificationType]*texttemplate.Template, error) {
	parsed := make(map[domain.NotificationType]*texttemplate.Template, len(messages))
	for t, text := range messages {
		tmpl, err := texttemplate.New(string(t)).Funcs(templateFuncs).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s message: %w", t, err)
		}
		parsed[t] = tmpl
	}
	return parsed, nil
}

func renderText(tmpl *texttemplate.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func renderHTML(tmpl *htmltemplate.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
