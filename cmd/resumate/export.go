package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/resumatehq/resumate/internal/document"
	"github.com/resumatehq/resumate/internal/export"
	"github.com/resumatehq/resumate/internal/schemas"
)

var (
	exportOutDir     string
	exportChromePath string
	exportTimeout    time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export [document.json ...]",
	Short: "Export resume documents to PDF",
	Long: `Render one or more resume document JSON files to PDF without starting
the server. Each document is validated against the resume schema, rendered
through its template, and printed via headless Chrome. Output files are named
after the resume title.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", ".", "Output directory for PDF files")
	exportCmd.Flags().StringVar(&exportChromePath, "chrome", "", "Path to the Chrome binary (default: autodetect)")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 60*time.Second, "Per-document render timeout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	docs := make([]*document.ResumeDocument, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := schemas.ValidateResume(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		var doc document.ResumeDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		docs = append(docs, &doc)
	}

	exporter := export.NewPDFExporter()
	exporter.ChromePath = exportChromePath
	exporter.Timeout = exportTimeout

	logger.Info("exporting documents",
		zap.Int("count", len(docs)),
		zap.String("out", exportOutDir))

	if err := export.Batch(cmd.Context(), exporter, docs, exportOutDir); err != nil {
		return err
	}

	logger.Info("export complete", zap.Int("count", len(docs)))
	return nil
}
