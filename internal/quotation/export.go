package quotation

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Content types produced by the exporters.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
)

// Exporter produces the printable artefact for a document.
type Exporter interface {
	Export(ctx context.Context, doc Document) (body []byte, contentType string, err error)
}

// HTMLExporter returns the rendered HTML as is.
type HTMLExporter struct {
	renderer *Renderer
}

func NewHTMLExporter(renderer *Renderer) *HTMLExporter {
	return &HTMLExporter{renderer: renderer}
}

func (e *HTMLExporter) Export(_ context.Context, doc Document) ([]byte, string, error) {
	body, err := e.renderer.Render(doc)
	if err != nil {
		return nil, "", err
	}
	return body, ContentTypeHTML, nil
}

// PDFExporter prints the rendered HTML to PDF with headless Chrome.
type PDFExporter struct {
	renderer   *Renderer
	chromePath string
	timeout    time.Duration
}

func NewPDFExporter(renderer *Renderer, chromePath string, timeout time.Duration) *PDFExporter {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PDFExporter{renderer: renderer, chromePath: chromePath, timeout: timeout}
}

func (e *PDFExporter) Export(ctx context.Context, doc Document) ([]byte, string, error) {
	html, err := e.renderer.Render(doc)
	if err != nil {
		return nil, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if e.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("#quotation-summary", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// A4 portrait, margins in inches.
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, "", fmt.Errorf("print quotation pdf: %w", err)
	}
	return pdf, ContentTypePDF, nil
}

func detectChromePath() string {
	for _, path := range []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
