package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/commerce-tools/order-export/pkg/models/store"
	storesql "github.com/commerce-tools/order-export/pkg/store/sql"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrDisabled is returned by on-demand operations when the module is turned
// off in configuration. Background runs treat it as a benign skip.
var ErrDisabled = errors.New("order export module is disabled")

// OrderSource supplies matching order rows. Implemented by the SQL order
// store; substituted in tests.
type OrderSource interface {
	Query(ctx context.Context, f storesql.Filter) ([]store.OrderRow, error)
}

// Pipeline runs one export end to end: select, resolve fields, format,
// render, deliver. Runs are stateless; each invocation is independent.
type Pipeline struct {
	orders    OrderSource
	formatter *ValueFormatter
	sink      *DeliverySink
	cfg       domain.ExportConfig
	now       func() time.Time
}

func NewPipeline(
	orders OrderSource,
	formatter *ValueFormatter,
	sink *DeliverySink,
	cfg domain.ExportConfig,
) *Pipeline {
	return &Pipeline{
		orders:    orders,
		formatter: formatter,
		sink:      sink,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Config returns the run configuration the pipeline was built with.
func (p *Pipeline) Config() domain.ExportConfig {
	return p.cfg
}

// Window computes the selection date range: days ago at 00:00:00 through
// today at 23:59:59.
func Window(now time.Time, days int) (time.Time, time.Time) {
	from := now.AddDate(0, 0, -days)
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	to := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	return from, to
}

// Run executes one scheduled export. It never fails upward: every error is
// logged and recorded as a stage note so the scheduler always observes a
// completed run.
func (p *Pipeline) Run(ctx context.Context) domain.RunResult {
	result := domain.RunResult{RunID: uuid.NewString()}
	logger := zerolog.Ctx(ctx).With().Str("run_id", result.RunID).Logger()
	ctx = logger.WithContext(ctx)

	if !p.cfg.Enabled {
		logger.Info().Msg("order export module is disabled, skipping run")
		result.Skipped = true
		return result
	}

	fields := ResolveFields(p.cfg.SelectedFields)
	from, to := Window(p.now(), p.cfg.WindowDays)
	threshold := p.cfg.GrandTotalThreshold

	rows, err := p.orders.Query(ctx, storesql.Filter{
		GrandTotalOver: &threshold,
		From:           &from,
		To:             &to,
		FieldCodes:     Codes(fields),
	})
	if err != nil {
		logger.Error().Err(err).Msg("order selection failed")
		result.Degraded = append(result.Degraded, domain.StageNote{Stage: "select", Err: err})
		return result
	}
	if len(rows) == 0 {
		logger.Info().Int("window_days", p.cfg.WindowDays).Msg("no orders to export")
		result.Skipped = true
		return result
	}

	artifact, table, err := p.render(ctx, fields, rows)
	if err != nil {
		logger.Error().Err(err).Msg("rendering failed")
		result.Degraded = append(result.Degraded, domain.StageNote{Stage: "render", Err: err})
		return result
	}
	result.Records = len(rows)
	result.Headers = table.Headers
	result.Artifact = artifact

	if p.cfg.PersistToFile || p.cfg.EmailAttachment {
		delivery, err := p.sink.Deliver(ctx, artifact, p.cfg, table.MinDate, table.MaxDate)
		result.Delivery = delivery
		if err != nil {
			logger.Error().Err(err).Msg("delivery failed")
			result.Degraded = append(result.Degraded, domain.StageNote{Stage: "deliver", Err: err})
			return result
		}
	}

	logger.Info().
		Int("records", result.Records).
		Bool("file_persisted", result.Delivery.FilePersisted).
		Bool("email_sent", result.Delivery.EmailSent).
		Msg("order export completed")
	return result
}

// ExportOrders exports an explicit order set on demand, honoring the persist
// and email toggles, and returns the artifact for download regardless of
// which sinks ran.
func (p *Pipeline) ExportOrders(ctx context.Context, orderIDs []int64) (*domain.Artifact, error) {
	if !p.cfg.Enabled {
		return nil, ErrDisabled
	}
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("no orders selected")
	}

	fields := ResolveFields(p.cfg.SelectedFields)
	rows, err := p.orders.Query(ctx, storesql.Filter{
		OrderIDs:   orderIDs,
		FieldCodes: Codes(fields),
	})
	if err != nil {
		return nil, err
	}

	artifact, table, err := p.render(ctx, fields, rows)
	if err != nil {
		return nil, err
	}

	if p.cfg.PersistToFile || p.cfg.EmailAttachment {
		if _, err := p.sink.Deliver(ctx, artifact, p.cfg, table.MinDate, table.MaxDate); err != nil {
			return nil, err
		}
	}
	return artifact, nil
}

// ListOrders returns the resolved visible fields and the formatted rows of
// the current selection window, for operator-facing output.
func (p *Pipeline) ListOrders(ctx context.Context) ([]domain.FieldSpec, [][]string, error) {
	if !p.cfg.Enabled {
		return nil, nil, ErrDisabled
	}

	fields := ResolveFields(p.cfg.SelectedFields)
	from, to := Window(p.now(), p.cfg.WindowDays)
	threshold := p.cfg.GrandTotalThreshold

	rows, err := p.orders.Query(ctx, storesql.Filter{
		GrandTotalOver: &threshold,
		From:           &from,
		To:             &to,
		FieldCodes:     Codes(fields),
	})
	if err != nil {
		return nil, nil, err
	}

	formatted := make([][]string, len(rows))
	for i, row := range rows {
		formatted[i] = p.formatter.FormatRow(ctx, fields, row)
	}
	return Visible(fields), formatted, nil
}

func (p *Pipeline) render(
	ctx context.Context,
	fields []domain.FieldSpec,
	rows []store.OrderRow,
) (*domain.Artifact, *domain.RenderedTable, error) {
	renderRows := make([]Row, len(rows))
	for i, row := range rows {
		r := Row{Cells: p.formatter.FormatRow(ctx, fields, row)}
		if ts, ok := ParseTimestamp(row.CreatedAt); ok {
			r.CreatedAt = ts
		}
		renderRows[i] = r
	}

	table, content, err := Render(Headers(fields), renderRows, p.cfg.FileFormat)
	if err != nil {
		return nil, nil, err
	}

	artifact := &domain.Artifact{
		Format:   p.cfg.FileFormat,
		Filename: Filename(p.now(), p.cfg.FileFormat),
		Bytes:    content,
	}
	return artifact, table, nil
}
