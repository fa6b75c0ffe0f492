package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/config"
	"github.com/garyjia/vip-ledger/internal/container"
	"github.com/garyjia/vip-ledger/internal/i18n"
	"github.com/garyjia/vip-ledger/pkg/utils"
)

var version = "1.0.0"

// app carries what every subcommand shares once the root has loaded configuration
type app struct {
	configPath string
	lang       string
	currency   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ledger",
		Short: "VIP ledger and billing reconciliation",
		Long: `ledger runs the VIP billing API and works with its data from the shell.

Invoices, payments, the client directory and per-client statements live in the
configured store (sqlite, redis or memory). Commands that change data through a
running server, such as pay, go through the HTTP API instead.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "configs/config.yaml", "Path to the YAML config file")
	root.PersistentFlags().StringVar(&a.lang, "lang", "", "Display language (ar or en), overrides locale.language")
	root.PersistentFlags().StringVar(&a.currency, "currency", "", "Display currency (SAR, USD or EUR), overrides locale.currency")

	root.AddCommand(
		newServeCmd(a),
		newStatementCmd(a),
		newExportCmd(a),
		newClientsCmd(a),
		newPayCmd(a),
	)
	return root
}

// load reads configuration and builds the logger
func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.lang != "" {
		cfg.Locale.Language = i18n.Normalize(a.lang)
	}
	if a.currency != "" {
		cfg.Locale.Currency = strings.ToUpper(a.currency)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
		Service:    "vip-ledger",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// open starts a container over the configured store. Callers must Close it.
func (a *app) open(ctx context.Context) (*container.Container, error) {
	c, err := container.NewContainer(a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	if err := c.Start(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (a *app) translator() *i18n.Translator {
	return i18n.NewTranslator(a.cfg.Locale.Language)
}
