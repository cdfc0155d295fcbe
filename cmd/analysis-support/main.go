// analysis-support: business-analysis frameworks over MCP.
//
// Serves the 5 Whys, MECE, SCAMPER, RBS and m-SHELL frameworks as MCP
// tools to any AI client that speaks the stdio transport.
//
// Usage:
//
//	analysis-support serve      # Start MCP server (stdio transport)
//	analysis-support version    # Print the version
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/analysis-support/internal/config"
	"github.com/HendryAvila/analysis-support/internal/logging"
	asserver "github.com/HendryAvila/analysis-support/internal/server"
)

var (
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "analysis-support",
	Short:         "MCP server for business-analysis frameworks",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		// stdout carries the MCP protocol, so logs go to stderr.
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := asserver.New(cfg, logger)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		defer cleanup()

		// ServeStdio handles SIGINT and SIGTERM itself.
		return server.ServeStdio(s, server.WithErrorLogger(zap.NewStdLog(logger)))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "analysis-support v%s\n", asserver.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default <data_dir>/config.yaml)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
