package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/commerce-tools/order-export/pkg/services/export"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Load reads the export configuration file and assembles the immutable
// per-run ExportConfig.
func Load(path string) (*domain.ExportConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("enabled", true)
	v.SetDefault("window_days", 30)
	v.SetDefault("file_format", string(domain.FormatCSV))
	v.SetDefault("retention_count", export.DefaultRetentionCount)
	v.SetDefault("export_dir", filepath.Join("var", "exportorder"))
	v.SetDefault("email.port", 587)
	v.SetDefault("email.template", "order_report")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg domain.ExportConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse export config: %w", err)
	}

	if !cfg.FileFormat.Valid() {
		return nil, fmt.Errorf("unsupported file format: %q", cfg.FileFormat)
	}

	threshold := v.GetString("grand_total_threshold")
	if threshold != "" {
		d, err := decimal.NewFromString(threshold)
		if err != nil {
			return nil, fmt.Errorf("invalid grand_total_threshold %q: %w", threshold, err)
		}
		cfg.GrandTotalThreshold = d
	}

	// The admin field picker may hand the selection over either as a
	// structured list or as a JSON-encoded string. A malformed selection
	// falls back to empty, which in turn triggers the default field list.
	var fields []domain.SelectedField
	if err := v.UnmarshalKey("fields", &fields); err == nil && len(fields) > 0 {
		cfg.SelectedFields = fields
	} else {
		cfg.SelectedFields = decodeFieldSelection(v.GetString("fields"))
	}

	return &cfg, nil
}

func decodeFieldSelection(raw string) []domain.SelectedField {
	if raw == "" {
		return nil
	}
	var fields []domain.SelectedField
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil
	}
	return fields
}
