package domain

import "github.com/shopspring/decimal"

// FileFormat is the export artifact format.
type FileFormat string

const (
	FormatCSV  FileFormat = "csv"
	FormatXLSX FileFormat = "xlsx"
)

func (f FileFormat) Valid() bool {
	return f == FormatCSV || f == FormatXLSX
}

// Ext returns the filename extension for the format.
func (f FileFormat) Ext() string {
	return string(f)
}

// MIMEType returns the attachment content type for the format.
func (f FileFormat) MIMEType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// EmailSettings configures the report email transport.
type EmailSettings struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	FromName   string `mapstructure:"from_name"`
	To         string `mapstructure:"to"`
	ToName     string `mapstructure:"to_name"`
	Bcc        string `mapstructure:"bcc"`
	TemplateID string `mapstructure:"template"`
}

// ExportConfig is the per-run configuration of the export pipeline. It is
// assembled once by the config loader and passed by value; nothing mutates it
// mid-run.
type ExportConfig struct {
	Enabled             bool            `mapstructure:"enabled"`
	DatabaseURL         string          `mapstructure:"database_url"`
	GrandTotalThreshold decimal.Decimal `mapstructure:"-"`
	WindowDays          int             `mapstructure:"window_days"`
	FileFormat          FileFormat      `mapstructure:"file_format"`
	PersistToFile       bool            `mapstructure:"persist_to_file"`
	EmailAttachment     bool            `mapstructure:"email_attachment"`
	SelectedFields      []SelectedField `mapstructure:"-"`
	ExportDir           string          `mapstructure:"export_dir"`
	RetentionCount      int             `mapstructure:"retention_count"`
	Currency            string          `mapstructure:"currency"`
	Email               EmailSettings   `mapstructure:"email"`
}
