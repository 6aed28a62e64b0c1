package api

import "time"

// MassExportRequest selects the orders to export on demand.
type MassExportRequest struct {
	OrderIDs []int64 `json:"order_ids"`
}

// ExportFile describes one persisted export artifact.
type ExportFile struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Error is the JSON error envelope.
type Error struct {
	Message string `json:"message"`
}
