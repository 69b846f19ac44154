package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/models"
)

//go:embed templates/catalog.html
var templatesFS embed.FS

// CatalogExporter renders the catalog as an HTML page and prints it to PDF
type CatalogExporter struct {
	catalog    *CatalogService
	baseURL    string // Base URL the browser loads the render page from (e.g. "http://localhost:8080")
	chromePath string
	tmpl       *template.Template
	logger     *zap.Logger
}

// detectChromePath returns the configured Chrome/Chromium path when it exists,
// then falls back to common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// NewCatalogExporter creates a new CatalogExporter
func NewCatalogExporter(catalogService *CatalogService, baseURL, chromePath string, logger *zap.Logger) (*CatalogExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.ParseFS(templatesFS, "templates/catalog.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &CatalogExporter{
		catalog:    catalogService,
		baseURL:    baseURL,
		chromePath: chromePath,
		tmpl:       tmpl,
		logger:     logger,
	}, nil
}

// RenderHTML renders the catalog page for the given category
func (e *CatalogExporter) RenderHTML(category string) (string, error) {
	view := e.catalog.Catalog(category)

	templateData := struct {
		Category      string
		CategoryLabel string
		Categories    []models.Category
		Loading       bool
		Cards         []models.CatalogCard
	}{
		Category:      category,
		CategoryLabel: categoryLabel(category),
		Categories:    catalog.Categories,
		Loading:       view.Loading,
		Cards:         view.Cards,
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF loads the render page in headless Chrome and prints it to PDF
func (e *CatalogExporter) GeneratePDF(ctx context.Context, category string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(e.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := e.renderURL(category)
	e.logger.Info("generating catalog PDF", zap.String("url", renderURL))

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete) {
								resolve();
								return;
							}
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]);
			})();
		`, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

func (e *CatalogExporter) renderURL(category string) string {
	return fmt.Sprintf("%s/catalog/render?category=%s", e.baseURL, url.QueryEscape(category))
}

func categoryLabel(key string) string {
	for _, c := range catalog.Categories {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}
