package export

import (
	"context"
	"testing"
	"time"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/commerce-tools/order-export/pkg/models/store"
	storesql "github.com/commerce-tools/order-export/pkg/store/sql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderSource struct{ mock.Mock }

func (m *mockOrderSource) Query(ctx context.Context, f storesql.Filter) ([]store.OrderRow, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.OrderRow), args.Error(1)
}

func testConfig() domain.ExportConfig {
	return domain.ExportConfig{
		Enabled:             true,
		GrandTotalThreshold: decimal.RequireFromString("100.00"),
		WindowDays:          30,
		FileFormat:          domain.FormatCSV,
		SelectedFields: []domain.SelectedField{
			{Code: "increment_id", Label: "Increment ID"},
			{Code: "customer_firstname", Label: "Customer Name"},
		},
	}
}

func testOrders() []store.OrderRow {
	return []store.OrderRow{
		{
			EntityID:  2,
			CreatedAt: "2024-01-20 08:00:00",
			Fields: map[string]string{
				"increment_id":       "100000002",
				"customer_firstname": "Jane",
				"customer_lastname":  "Doe",
			},
		},
		{
			EntityID:  1,
			CreatedAt: "2024-01-05 08:00:00",
			Fields: map[string]string{
				"increment_id":       "100000001",
				"customer_firstname": "John",
				"customer_lastname":  "Smith",
			},
		},
	}
}

func newTestPipeline(src OrderSource, cfg domain.ExportConfig, mailer ReportMailer) *Pipeline {
	p := NewPipeline(src, newTestFormatter(), NewDeliverySink(mailer), cfg)
	p.now = func() time.Time {
		return time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	}
	return p
}

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled module skips the run", func(t *testing.T) {
		src := new(mockOrderSource)
		cfg := testConfig()
		cfg.Enabled = false

		result := newTestPipeline(src, cfg, nil).Run(ctx)

		assert.True(t, result.Skipped)
		assert.Empty(t, result.Degraded)
		src.AssertNotCalled(t, "Query")
	})

	t.Run("no matching orders skips delivery", func(t *testing.T) {
		src := new(mockOrderSource)
		src.On("Query", mock.Anything, mock.Anything).Return([]store.OrderRow{}, nil)

		result := newTestPipeline(src, testConfig(), nil).Run(ctx)

		assert.True(t, result.Skipped)
		assert.Zero(t, result.Records)
	})

	t.Run("selection failure degrades but the run completes", func(t *testing.T) {
		src := new(mockOrderSource)
		src.On("Query", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		result := newTestPipeline(src, testConfig(), nil).Run(ctx)

		require.Len(t, result.Degraded, 1)
		assert.Equal(t, "select", result.Degraded[0].Stage)
	})

	t.Run("renders and emails matched orders", func(t *testing.T) {
		src := new(mockOrderSource)
		src.On("Query", mock.Anything, mock.MatchedBy(func(f storesql.Filter) bool {
			// threshold and window pass through to the store; explicit ids
			// are never part of a scheduled run
			return f.GrandTotalOver != nil &&
				f.GrandTotalOver.Equal(decimal.RequireFromString("100.00")) &&
				f.From != nil && f.To != nil && len(f.OrderIDs) == 0
		})).Return(testOrders(), nil)

		mailer := &captureMailer{}
		cfg := testConfig()
		cfg.EmailAttachment = true

		result := newTestPipeline(src, cfg, mailer).Run(ctx)

		assert.Equal(t, 2, result.Records)
		assert.Equal(t, []string{"Increment ID", "Customer Name"}, result.Headers)
		assert.True(t, result.Delivery.EmailSent)
		assert.Empty(t, result.Degraded)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t,
			"Order Report Between Jan 05, 2024 - Jan 20, 2024",
			mailer.sent[0].Subject)
		src.AssertExpectations(t)
	})

	t.Run("hidden lastname is fetched but not rendered", func(t *testing.T) {
		src := new(mockOrderSource)
		src.On("Query", mock.Anything, mock.MatchedBy(func(f storesql.Filter) bool {
			return assert.ObjectsAreEqual(
				[]string{"increment_id", "customer_firstname", "customer_lastname"},
				f.FieldCodes)
		})).Return(testOrders(), nil)

		result := newTestPipeline(src, testConfig(), nil).Run(ctx)

		assert.Len(t, result.Headers, 2)
		src.AssertExpectations(t)
	})
}

func TestPipeline_ExportOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled module returns ErrDisabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Enabled = false

		_, err := newTestPipeline(new(mockOrderSource), cfg, nil).ExportOrders(ctx, []int64{1})
		assert.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("empty selection is an error", func(t *testing.T) {
		_, err := newTestPipeline(new(mockOrderSource), testConfig(), nil).ExportOrders(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("exports the explicit id set without threshold or window", func(t *testing.T) {
		src := new(mockOrderSource)
		src.On("Query", mock.Anything, mock.MatchedBy(func(f storesql.Filter) bool {
			return assert.ObjectsAreEqual([]int64{2, 1}, f.OrderIDs) &&
				f.GrandTotalOver == nil && f.From == nil && f.To == nil
		})).Return(testOrders(), nil)

		artifact, err := newTestPipeline(src, testConfig(), nil).ExportOrders(ctx, []int64{2, 1})
		require.NoError(t, err)

		assert.Equal(t, domain.FormatCSV, artifact.Format)
		assert.NotEmpty(t, artifact.Bytes)
		assert.Contains(t, string(artifact.Bytes), "Jane Doe")
		src.AssertExpectations(t)
	})
}

func TestPipeline_ListOrders(t *testing.T) {
	ctx := context.Background()

	src := new(mockOrderSource)
	src.On("Query", mock.Anything, mock.Anything).Return(testOrders(), nil)

	fields, rows, err := newTestPipeline(src, testConfig(), nil).ListOrders(ctx)
	require.NoError(t, err)

	require.Len(t, fields, 2)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"100000002", "Jane Doe"}, rows[0])
	assert.Equal(t, []string{"100000001", "John Smith"}, rows[1])
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, 1, 31, 14, 45, 12, 0, time.UTC)
	from, to := Window(now, 30)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), to)
}
