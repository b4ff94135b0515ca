package notifier

import (
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
	"eurekastreams-backend/internal/notification"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const emailTextBody = `{{.subject}}
{{with .comment}}
"{{.Body}}"
{{end}}{{with .url}}
{{link .}}
{{end}}`

const emailHTMLBody = `<html><body>
<p>{{.subject}}</p>
{{with .comment}}<blockquote>{{.Body}}</blockquote>
{{end}}{{with .url}}<p><a href="{{link .}}">View it on Eureka Streams</a></p>
{{end}}</body></html>`

// EmailClient sends a composed message. *sendgrid.Client satisfies it.
type EmailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type EmailConfig struct {
	FromAddress   string
	FromName      string
	SubjectPrefix string
	BaseURL       string
}

// EmailNotifier sends one email per notification, with a personalization per
// recipient so addresses are not disclosed to each other.
type EmailNotifier struct {
	client   EmailClient
	cfg      EmailConfig
	subjects map[domain.NotificationType]*texttemplate.Template
	text     *texttemplate.Template
	html     *htmltemplate.Template
}

func NewEmailNotifier(client EmailClient, cfg EmailConfig, messages map[domain.NotificationType]string) (*EmailNotifier, error) {
	subjects, err := parseMessages(messages)
	if err != nil {
		return nil, err
	}
	link := func(url string) string {
		if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
			return url
		}
		return strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.TrimLeft(url, "/")
	}
	text, err := texttemplate.New("email-text").Funcs(texttemplate.FuncMap{"link": link}).Parse(emailTextBody)
	if err != nil {
		return nil, err
	}
	html, err := htmltemplate.New("email-html").Funcs(htmltemplate.FuncMap{"link": link}).Parse(emailHTMLBody)
	if err != nil {
		return nil, err
	}
	return &EmailNotifier{client: client, cfg: cfg, subjects: subjects, text: text, html: html}, nil
}

func (n *EmailNotifier) Notify(ctx context.Context, t domain.NotificationType, recipients []int64, properties map[string]any, recipientIndex map[int64]*domain.PersonModelView) error {
	subjectTmpl, ok := n.subjects[t]
	if !ok {
		return nil
	}

	var to []*domain.PersonModelView
	for _, id := range recipients {
		p := recipientIndex[id]
		if p == nil || strings.TrimSpace(domain.StringValue(p.Email)) == "" {
			continue
		}
		to = append(to, p)
	}
	if len(to) == 0 {
		return nil
	}

	var single *domain.PersonModelView
	if len(to) == 1 {
		single = to[0]
	}
	data := templateData(t, properties, single)
	subject, err := renderText(subjectTmpl, data)
	if err != nil {
		return fmt.Errorf("render %s subject: %w", t, err)
	}
	data["subject"] = subject
	textBody, err := renderText(n.text, data)
	if err != nil {
		return fmt.Errorf("render %s text body: %w", t, err)
	}
	htmlBody, err := renderHTML(n.html, data)
	if err != nil {
		return fmt.Errorf("render %s html body: %w", t, err)
	}

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(n.cfg.FromName, n.cfg.FromAddress))
	m.Subject = n.cfg.SubjectPrefix + subject
	m.AddContent(mail.NewContent("text/plain", textBody), mail.NewContent("text/html", htmlBody))
	for _, p := range to {
		personalization := mail.NewPersonalization()
		personalization.AddTos(mail.NewEmail(DisplayName(p), domain.StringValue(p.Email)))
		m.AddPersonalizations(personalization)
	}
	if boolProperty(properties, notification.PropHighPriority) {
		m.Headers = map[string]string{"X-Priority": "1", "Importance": "high"}
	}

	logger.ExternalServiceCall(ctx, "sendgrid", "send", "type", t, "recipients", len(to))
	response, err := n.client.SendWithContext(ctx, m)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult(ctx, "sendgrid", "send", err, "type", t)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", t, err)
	}
	return nil
}
