package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/commerce-tools/order-export/pkg/models/api"
	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/commerce-tools/order-export/pkg/services/export"
	"github.com/rs/zerolog"
)

// Exporter runs an on-demand export of an explicit order set.
type Exporter interface {
	ExportOrders(ctx context.Context, orderIDs []int64) (*domain.Artifact, error)
}

type Handler struct {
	exporter  Exporter
	exportDir string
}

func NewHandler(exporter Exporter, exportDir string) *Handler {
	return &Handler{exporter: exporter, exportDir: exportDir}
}

// MassExport renders the selected orders and streams the artifact back as a
// download, running the configured persist/email sinks along the way.
func (h *Handler) MassExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.MassExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.OrderIDs) == 0 {
		writeError(w, http.StatusBadRequest, "no orders selected")
		return
	}

	artifact, err := h.exporter.ExportOrders(ctx, req.OrderIDs)
	if errors.Is(err, export.ErrDisabled) {
		writeError(w, http.StatusConflict, "order export is disabled")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("mass export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", artifact.Format.MIMEType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	if _, err := w.Write(artifact.Bytes); err != nil {
		logger.Error().Err(err).Msg("failed to stream export artifact")
	}
}

// ListExports returns the persisted export files, newest first.
func (h *Handler) ListExports(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	files, err := export.ListExports(h.exportDir)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list exports")
		writeError(w, http.StatusInternalServerError, "failed to list exports")
		return
	}

	response := make([]api.ExportFile, 0, len(files))
	for _, f := range files {
		response = append(response, api.ExportFile{
			Name:     filepath.Base(f.Path),
			Size:     f.Size,
			Modified: f.ModTime,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode export list")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Message: msg})
}
