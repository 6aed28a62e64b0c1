package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/commerce-tools/order-export/pkg/models/domain"
)

// Reporter prints resolved order fields to the console, one labelled line
// per field per order.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type reportCell struct {
	Label string
	Value string
}

type reportRow struct {
	Cells []reportCell
}

func (r *Reporter) Handle(fields []domain.FieldSpec, rows [][]string) error {
	tmpl := `{{range .}}{{separator}}
{{range .Cells}}{{.Label}} : {{.Value}}
{{end}}{{end}}`

	t, err := template.New("orders").Funcs(template.FuncMap{
		"separator": func() string { return strings.Repeat("-", 100) },
	}).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	view := make([]reportRow, 0, len(rows))
	for _, row := range rows {
		var cells []reportCell
		for i, f := range fields {
			if i >= len(row) {
				break
			}
			cells = append(cells, reportCell{Label: f.Label, Value: row[i]})
		}
		view = append(view, reportRow{Cells: cells})
	}

	return t.Execute(r.writer, view)
}
