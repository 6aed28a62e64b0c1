package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/rs/zerolog"
)

// EmailReport is the message handed to the report mailer.
type EmailReport struct {
	Subject    string
	Filename   string
	MIMEType   string
	Attachment []byte
}

// ReportMailer sends the rendered export as an email attachment. Transport
// mechanics (SMTP, templating) live behind this interface.
type ReportMailer interface {
	SendReport(ctx context.Context, report EmailReport) error
}

// DeliverySink writes the export artifact to its configured destinations:
// a retention-managed directory and/or an email attachment. The two sinks
// are independently togglable and independently fallible.
type DeliverySink struct {
	mailer ReportMailer
	now    func() time.Time
}

func NewDeliverySink(mailer ReportMailer) *DeliverySink {
	return &DeliverySink{mailer: mailer, now: time.Now}
}

// Filename builds the timestamped export filename.
func Filename(now time.Time, format domain.FileFormat) string {
	return "order_export_" + now.Format("02-01-2006_03:04_PM") + "." + format.Ext()
}

// Deliver persists and/or emails the artifact. A file-write failure aborts
// delivery for the run so no email goes out referencing a file that was never
// written. An email failure is logged but does not undo a successful persist.
func (s *DeliverySink) Deliver(
	ctx context.Context,
	artifact *domain.Artifact,
	cfg domain.ExportConfig,
	minDate, maxDate *time.Time,
) (domain.DeliveryResult, error) {
	logger := zerolog.Ctx(ctx)
	var result domain.DeliveryResult

	if cfg.PersistToFile {
		if err := os.MkdirAll(cfg.ExportDir, 0o775); err != nil {
			return result, fmt.Errorf("failed to create export dir %s: %w", cfg.ExportDir, err)
		}
		path := filepath.Join(cfg.ExportDir, artifact.Filename)
		if err := os.WriteFile(path, artifact.Bytes, 0o644); err != nil {
			return result, fmt.Errorf("failed to write export file %s: %w", path, err)
		}
		artifact.Path = path
		result.FilePersisted = true
		logger.Info().Str("path", path).Msg("export file written")
	}

	if cfg.EmailAttachment && s.mailer == nil {
		logger.Warn().Msg("email attachment enabled but no mailer configured")
	}

	if cfg.EmailAttachment && s.mailer != nil {
		content := artifact.Bytes
		if artifact.Path != "" {
			// Attach what actually landed on disk, not the buffer.
			persisted, err := os.ReadFile(artifact.Path)
			if err != nil {
				logger.Error().Err(err).Str("path", artifact.Path).
					Msg("failed to read back export file for email attachment")
				return result, nil
			}
			content = persisted
		}

		report := EmailReport{
			Subject:    SubjectLine(s.now(), cfg.WindowDays, minDate, maxDate),
			Filename:   artifact.Filename,
			MIMEType:   artifact.Format.MIMEType(),
			Attachment: content,
		}
		if err := s.mailer.SendReport(ctx, report); err != nil {
			logger.Error().Err(err).Msg("order report email failed")
		} else {
			result.EmailSent = true
		}
	}

	return result, nil
}

// SubjectLine builds the report email subject. The date range comes from the
// run's min/max order dates; when those are unavailable it falls back to
// today minus the configured window through today.
func SubjectLine(now time.Time, windowDays int, minDate, maxDate *time.Time) string {
	from, to := now.AddDate(0, 0, -windowDays), now
	if minDate != nil {
		from = *minDate
	}
	if maxDate != nil {
		to = *maxDate
	}
	return fmt.Sprintf("Order Report Between %s - %s",
		from.Format("Jan 02, 2006"), to.Format("Jan 02, 2006"))
}

// SplitRecipients parses a comma-separated recipient list, trimming entries
// and dropping empties.
func SplitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
