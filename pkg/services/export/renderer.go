package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// Row is one rendered table row plus the record's creation timestamp used
// for min/max date tracking.
type Row struct {
	Cells     []string
	CreatedAt time.Time // zero when the record had no parsable timestamp
}

// Render produces the tabular document for the given format. Row order is
// preserved exactly as supplied; the renderer never re-sorts. While iterating
// it tracks the min/max creation timestamp across all rows, independent of
// the displayed columns.
func Render(headers []string, rows []Row, format domain.FileFormat) (*domain.RenderedTable, []byte, error) {
	table := &domain.RenderedTable{Headers: headers}
	for _, row := range rows {
		table.Rows = append(table.Rows, row.Cells)
		if row.CreatedAt.IsZero() {
			continue
		}
		ts := row.CreatedAt
		if table.MinDate == nil || ts.Before(*table.MinDate) {
			table.MinDate = &ts
		}
		if table.MaxDate == nil || ts.After(*table.MaxDate) {
			table.MaxDate = &ts
		}
	}

	var (
		content []byte
		err     error
	)
	switch format {
	case domain.FormatXLSX:
		content, err = renderXLSX(table)
	case domain.FormatCSV:
		content, err = renderCSV(table)
	default:
		return nil, nil, fmt.Errorf("unsupported file format: %q", format)
	}
	if err != nil {
		return nil, nil, err
	}
	return table, content, nil
}

// renderCSV writes comma-delimited, double-quote enclosed records with CRLF
// line endings for spreadsheet-importer compatibility.
func renderCSV(table *domain.RenderedTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

const sheetName = "Sheet1"

func renderXLSX(table *domain.RenderedTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &table.Headers); err != nil {
		return nil, fmt.Errorf("failed to write xlsx header: %w", err)
	}
	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write xlsx row %d: %w", i+2, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, err := excelize.CoordinatesToCellName(len(table.Headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol, bold); err != nil {
		return nil, fmt.Errorf("failed to apply header style: %w", err)
	}

	for col := range table.Headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, columnWidth(table, col)); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidth sizes a column to its widest cell content, clamped so one long
// address does not blow up the sheet.
func columnWidth(table *domain.RenderedTable, col int) float64 {
	width := len(table.Headers[col])
	for _, row := range table.Rows {
		if col < len(row) && len(row[col]) > width {
			width = len(row[col])
		}
	}
	const pad, max = 2, 80
	if width+pad > max {
		return max
	}
	return float64(width + pad)
}
