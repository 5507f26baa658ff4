package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/resumatehq/resumate/internal/document"
	"github.com/resumatehq/resumate/internal/preview"
	"github.com/resumatehq/resumate/internal/render"
)

// batchConcurrency bounds parallel Chrome instances during batch export.
const batchConcurrency = 2

// Renderer is the HTML-to-PDF half of the export pipeline, kept as an
// interface so batch tests can run without a browser.
type Renderer interface {
	PDF(ctx context.Context, html []byte) ([]byte, error)
}

// Document renders a document through the preview projection and its
// template, then prints the result to PDF.
func Document(ctx context.Context, r Renderer, doc *document.ResumeDocument) ([]byte, error) {
	html, err := render.HTML(preview.Render(doc))
	if err != nil {
		return nil, err
	}
	return r.PDF(ctx, html)
}

// Batch exports every document into dir as <title>.pdf, running a bounded
// number of renders in parallel. The first failure cancels the rest.
func Batch(ctx context.Context, r Renderer, docs []*document.ResumeDocument, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, doc := range docs {
		g.Go(func() error {
			pdf, err := Document(gctx, r, doc)
			if err != nil {
				return fmt.Errorf("failed to export %q: %w", doc.Title, err)
			}
			name := FileName(doc.Title)
			if name == "resume.pdf" && i > 0 {
				name = fmt.Sprintf("resume-%d.pdf", i+1)
			}
			if err := os.WriteFile(filepath.Join(dir, name), pdf, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// FileName derives a filesystem-safe PDF name from a resume title.
func FileName(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, strings.TrimSpace(title))
	cleaned = strings.Trim(cleaned, "-")
	for strings.Contains(cleaned, "--") {
		cleaned = strings.ReplaceAll(cleaned, "--", "-")
	}
	if cleaned == "" {
		cleaned = "resume"
	}
	return cleaned + ".pdf"
}
