package commands

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/commerce-tools/order-export/pkg/services/address"
	"github.com/commerce-tools/order-export/pkg/services/config"
	"github.com/commerce-tools/order-export/pkg/services/customer"
	"github.com/commerce-tools/order-export/pkg/services/export"
	"github.com/commerce-tools/order-export/pkg/services/pricing"
	storesql "github.com/commerce-tools/order-export/pkg/store/sql"
	"github.com/rs/zerolog"

	mailer "github.com/commerce-tools/order-export/pkg/mail"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type env struct {
	cfg      domain.ExportConfig
	pipeline *export.Pipeline
	logger   zerolog.Logger
	close    func()
}

// setup loads the configuration and wires the export pipeline. Every command
// goes through here so a run is always built from one immutable config value.
func setup(cfgPath string) (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	orders, err := storesql.NewOrderStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	groups, err := customer.NewGroupStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	var reportMailer export.ReportMailer
	if cfg.EmailAttachment {
		m, err := mailer.NewMailer(cfg.Email)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure report mailer: %w", err)
		}
		reportMailer = m
	}

	formatter := export.NewValueFormatter(
		pricing.NewFormatter(cfg.Currency),
		address.NewRenderer(),
		groups,
	)
	pipeline := export.NewPipeline(orders, formatter, export.NewDeliverySink(reportMailer), *cfg)

	return &env{
		cfg:      *cfg,
		pipeline: pipeline,
		logger:   logger,
		close:    func() { _ = db.Close() },
	}, nil
}
