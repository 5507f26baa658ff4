package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resumatehq/resumate/internal/config"
	"github.com/resumatehq/resumate/internal/server"
)

var (
	serveAddr       string
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the resume builder REST API:
authentication, resume CRUD, editing sessions with undo history, preview,
sharing, and PDF export.

Configuration comes from environment variables (DATABASE_URL, REDIS_URL,
GEMINI_API_KEY, JWT_SECRET, ...), optionally overlaid on a JSON config file.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		// Environment wins over the file
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	cfg.Verbose = verbose

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	srv, err := server.New(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
