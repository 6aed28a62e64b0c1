package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/commerce-tools/order-export/pkg/services/export"
	"github.com/stretchr/testify/assert"
)

type stubExporter struct {
	artifact *domain.Artifact
	err      error
}

func (s *stubExporter) ExportOrders(context.Context, []int64) (*domain.Artifact, error) {
	return s.artifact, s.err
}

func TestHandler_MassExport_ErrorMapping(t *testing.T) {
	t.Run("disabled module maps to conflict", func(t *testing.T) {
		h := NewHandler(&stubExporter{err: export.ErrDisabled}, t.TempDir())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/exports",
			strings.NewReader(`{"order_ids":[1]}`))
		rec := httptest.NewRecorder()
		h.MassExport(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		h := NewHandler(&stubExporter{}, t.TempDir())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/exports",
			strings.NewReader(`{"order_ids":`))
		rec := httptest.NewRecorder()
		h.MassExport(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("export failure is an internal error", func(t *testing.T) {
		h := NewHandler(&stubExporter{err: assert.AnError}, t.TempDir())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/exports",
			strings.NewReader(`{"order_ids":[1]}`))
		rec := httptest.NewRecorder()
		h.MassExport(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
