// Package export prints rendered resume HTML to PDF using headless Chrome.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 paper size in inches for Chrome's print-to-PDF.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// PDFExporter renders HTML into PDF bytes via chromedp. A zero value is
// usable; ChromePath overrides the browser binary (the CHROME_PATH
// environment variable does the same).
type PDFExporter struct {
	ChromePath string
	Timeout    time.Duration
}

// NewPDFExporter returns an exporter with the default 60s render timeout.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{Timeout: 60 * time.Second}
}

// PDF renders the HTML page into A4 PDF bytes. The page is written to a
// temporary file and loaded over file:// so relative assets inside the
// document resolve consistently.
func (e *PDFExporter) PDF(ctx context.Context, html []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := e.chromePath(); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resumate-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print PDF: %w", err)
	}
	return pdf, nil
}

func (e *PDFExporter) chromePath() string {
	if e.ChromePath != "" {
		return e.ChromePath
	}
	return os.Getenv("CHROME_PATH")
}
