package export

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 paper size in inches (210mm x 297mm).
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// DefaultTimeout bounds a single print job, browser startup included.
const DefaultTimeout = 60 * time.Second

// Exporter converts a rendered HTML document into PDF bytes.
type Exporter interface {
	ExportPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeExporter prints documents through a headless Chrome instance. The
// binary comes from ExecPath when set, then the CHROME_PATH environment
// variable, then PATH discovery.
type ChromeExporter struct {
	Timeout  time.Duration
	ExecPath string
}

// NewChromeExporter returns an exporter with the default job timeout.
func NewChromeExporter() *ChromeExporter {
	return &ChromeExporter{Timeout: DefaultTimeout}
}

// ExportPDF writes the document to a temporary file, loads it in headless
// Chrome, and prints it to an A4 page with zero margins. The page's own
// @page CSS takes precedence over the paper size given here.
func (e *ChromeExporter) ExportPDF(ctx context.Context, html string) ([]byte, error) {
	if html == "" {
		return nil, &ExportError{Message: "document is empty"}
	}

	tmpDir, err := os.MkdirTemp("", "resume-export-*")
	if err != nil {
		return nil, &ExportError{Message: "failed to create temp dir", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "document.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, &ExportError{Message: "failed to write document", Cause: err}
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, e.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &ExportError{Message: "headless print failed", Cause: err}
	}

	return pdfBuf, nil
}

// allocatorOptions builds the browser launch options, resolving the Chrome
// binary from the ExecPath field first and the CHROME_PATH environment
// variable second.
func (e *ChromeExporter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	path := e.ExecPath
	if path == "" {
		path = os.Getenv("CHROME_PATH")
	}
	if path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	return opts
}
