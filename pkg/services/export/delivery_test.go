package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	sent []EmailReport
	err  error
}

func (m *captureMailer) SendReport(_ context.Context, report EmailReport) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, report)
	return nil
}

func testArtifact() *domain.Artifact {
	return &domain.Artifact{
		Format:   domain.FormatCSV,
		Filename: "order_export_05-01-2024_10:30_AM.csv",
		Bytes:    []byte("Grand Total\r\n$150.00\r\n"),
	}
}

func TestDeliverySink_Deliver(t *testing.T) {
	ctx := context.Background()

	t.Run("email only attaches the in-memory buffer", func(t *testing.T) {
		dir := t.TempDir()
		mailer := &captureMailer{}
		sink := NewDeliverySink(mailer)
		artifact := testArtifact()

		result, err := sink.Deliver(ctx, artifact, domain.ExportConfig{
			EmailAttachment: true,
			ExportDir:       dir,
			WindowDays:      30,
		}, nil, nil)
		require.NoError(t, err)

		assert.False(t, result.FilePersisted)
		assert.True(t, result.EmailSent)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, artifact.Bytes, mailer.sent[0].Attachment)
		assert.Equal(t, "text/csv", mailer.sent[0].MIMEType)

		// No filesystem write occurred.
		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})

	t.Run("persist writes the file and re-reads it for the attachment", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exportorder")
		mailer := &captureMailer{}
		sink := NewDeliverySink(mailer)
		artifact := testArtifact()

		result, err := sink.Deliver(ctx, artifact, domain.ExportConfig{
			PersistToFile:   true,
			EmailAttachment: true,
			ExportDir:       dir,
		}, nil, nil)
		require.NoError(t, err)

		assert.True(t, result.FilePersisted)
		assert.True(t, result.EmailSent)
		assert.Equal(t, filepath.Join(dir, artifact.Filename), artifact.Path)

		onDisk, readErr := os.ReadFile(artifact.Path)
		require.NoError(t, readErr)
		assert.Equal(t, onDisk, mailer.sent[0].Attachment)
	})

	t.Run("file write failure aborts delivery without email", func(t *testing.T) {
		dir := t.TempDir()
		blocked := filepath.Join(dir, "blocked")
		require.NoError(t, os.WriteFile(blocked, []byte("not a dir"), 0o644))

		mailer := &captureMailer{}
		sink := NewDeliverySink(mailer)

		result, err := sink.Deliver(ctx, testArtifact(), domain.ExportConfig{
			PersistToFile:   true,
			EmailAttachment: true,
			ExportDir:       blocked, // MkdirAll over a file fails
		}, nil, nil)

		assert.Error(t, err)
		assert.False(t, result.FilePersisted)
		assert.Empty(t, mailer.sent)
	})

	t.Run("email failure does not roll back the persisted file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exportorder")
		sink := NewDeliverySink(&captureMailer{err: assert.AnError})
		artifact := testArtifact()

		result, err := sink.Deliver(ctx, artifact, domain.ExportConfig{
			PersistToFile:   true,
			EmailAttachment: true,
			ExportDir:       dir,
		}, nil, nil)
		require.NoError(t, err)

		assert.True(t, result.FilePersisted)
		assert.False(t, result.EmailSent)
		_, statErr := os.Stat(artifact.Path)
		assert.NoError(t, statErr)
	})
}

func TestSubjectLine(t *testing.T) {
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

	t.Run("uses run min and max dates when present", func(t *testing.T) {
		min := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
		max := time.Date(2024, 1, 20, 18, 0, 0, 0, time.UTC)

		subject := SubjectLine(now, 30, &min, &max)
		assert.Equal(t, "Order Report Between Jan 05, 2024 - Jan 20, 2024", subject)
	})

	t.Run("falls back to the configured window", func(t *testing.T) {
		subject := SubjectLine(now, 30, nil, nil)
		assert.Equal(t, "Order Report Between Jan 01, 2024 - Jan 31, 2024", subject)
	})
}

func TestSplitRecipients(t *testing.T) {
	assert.Equal(t,
		[]string{"a@example.com", "b@example.com"},
		SplitRecipients(" a@example.com , ,b@example.com,"))
	assert.Nil(t, SplitRecipients(""))
	assert.Nil(t, SplitRecipients(" , "))
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "order_export_05-01-2024_02:30_PM.csv", Filename(now, domain.FormatCSV))
	assert.Equal(t, "order_export_05-01-2024_02:30_PM.xlsx", Filename(now, domain.FormatXLSX))
}
