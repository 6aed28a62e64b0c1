package main

import (
	"database/sql"
	"fmt"
	"net"
	"os"

	"github.com/commerce-tools/order-export/pkg/server"
	"github.com/commerce-tools/order-export/pkg/services/address"
	"github.com/commerce-tools/order-export/pkg/services/config"
	"github.com/commerce-tools/order-export/pkg/services/customer"
	"github.com/commerce-tools/order-export/pkg/services/export"
	"github.com/commerce-tools/order-export/pkg/services/pricing"
	storesql "github.com/commerce-tools/order-export/pkg/store/sql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	mailer "github.com/commerce-tools/order-export/pkg/mail"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the order export web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "order-export.yaml",
		"Path to the export configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	orders, err := storesql.NewOrderStore(db)
	if err != nil {
		return err
	}
	groups, err := customer.NewGroupStore(db)
	if err != nil {
		return err
	}

	var reportMailer export.ReportMailer
	if cfg.EmailAttachment {
		m, err := mailer.NewMailer(cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to configure report mailer: %w", err)
		}
		reportMailer = m
	}

	formatter := export.NewValueFormatter(
		pricing.NewFormatter(cfg.Currency),
		address.NewRenderer(),
		groups,
	)
	pipeline := export.NewPipeline(orders, formatter, export.NewDeliverySink(reportMailer), *cfg)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Exporter:  pipeline,
			ExportDir: cfg.ExportDir,
		},
	})

	return api.Start()
}
