package mail

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/commerce-tools/order-export/pkg/services/export"
	mail "github.com/wneessen/go-mail"
)

// bodyTemplates holds the known report email bodies by template id.
var bodyTemplates = map[string]string{
	"order_report": `Hello {{.ReceiverName}},

{{.Subject}}.

The exported order report is attached to this email.

This is an automated message, please do not reply.
`,
}

const defaultTemplateID = "order_report"

// Mailer sends order report emails over SMTP with a single attachment.
type Mailer struct {
	settings domain.EmailSettings
	client   *mail.Client
}

func NewMailer(settings domain.EmailSettings) (*Mailer, error) {
	if settings.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}

	opts := []mail.Option{mail.WithPort(settings.Port)}
	if settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(settings.Username),
			mail.WithPassword(settings.Password),
		)
	}

	client, err := mail.NewClient(settings.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &Mailer{settings: settings, client: client}, nil
}

// SendReport builds and sends the report message. Recipients and bcc come
// from the comma-separated configuration strings.
func (m *Mailer) SendReport(ctx context.Context, report export.EmailReport) error {
	to := export.SplitRecipients(m.settings.To)
	if len(to) == 0 {
		return fmt.Errorf("no report recipients configured")
	}

	body, err := renderBody(m.settings.TemplateID, bodyVars{
		Subject:      report.Subject,
		ReceiverName: m.settings.ToName,
	})
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.settings.FromName, m.settings.From); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", m.settings.From, err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("invalid recipient list: %w", err)
	}
	if bcc := export.SplitRecipients(m.settings.Bcc); len(bcc) > 0 {
		if err := msg.Bcc(bcc...); err != nil {
			return fmt.Errorf("invalid bcc list: %w", err)
		}
	}
	msg.Subject(report.Subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := msg.AttachReader(report.Filename, bytes.NewReader(report.Attachment),
		mail.WithFileContentType(mail.ContentType(report.MIMEType))); err != nil {
		return fmt.Errorf("failed to attach %s: %w", report.Filename, err)
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}
	return nil
}

type bodyVars struct {
	Subject      string
	ReceiverName string
}

func renderBody(templateID string, vars bodyVars) (string, error) {
	text, ok := bodyTemplates[templateID]
	if !ok {
		text = bodyTemplates[defaultTemplateID]
	}
	t, err := template.New("report_email").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}
