package main

import (
	"fmt"
	"os"

	"github.com/natserract/sfcli/pkg/config"
	"github.com/natserract/sfcli/pkg/export"
	httpclient "github.com/natserract/sfcli/pkg/http"
	sfcore "github.com/natserract/sfcli/pkg/salesforce/core"
	"github.com/natserract/sfcli/pkg/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:          "sfcli",
	Short:        "Interactive Salesforce CRM terminal",
	Long:         "A menu-driven client for querying and managing Salesforce Accounts, Contacts, Leads, and Opportunities.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func run(cmd *cobra.Command) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	httpClient := httpclient.NewClientWithLogger(logger)
	auth, err := sfcore.NewAuthenticator(cfg, shell.TerminalSecretReader(), httpClient, logger)
	if err != nil {
		return err
	}

	client := sfcore.NewSalesforceWithLogger(cfg, auth, logger)
	exporter := export.NewCSVExporter(logger)

	sh := shell.New(client, exporter, os.Stdin, os.Stdout, logger)
	return sh.Run(cmd.Context())
}

func newLogger() (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	// Production logs go to stderr, keeping stdout clean for the menu.
	return zap.NewProduction()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
