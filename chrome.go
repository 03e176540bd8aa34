package pdfdoc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromeEngine renders documents with headless Chrome over the DevTools
// protocol. Content is buffered and printed once, on Output.
//
// Call [ChromeEngine.Close] when the engine is no longer needed to release
// browser resources. A [Document] does this after rendering.
type ChromeEngine struct {
	layout

	bcfg          browserConfig
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Chrome returns an [EngineFactory] for [ChromeEngine].
func Chrome(opts ...BrowserOption) EngineFactory {
	return func(cfg EngineConfig) (Engine, error) {
		return NewChromeEngine(cfg, opts...)
	}
}

// NewChromeEngine creates a ChromeEngine with the given options.
//
// It starts a headless browser in the background. The caller must call
// [ChromeEngine.Close] when finished.
func NewChromeEngine(cfg EngineConfig, opts ...BrowserOption) (*ChromeEngine, error) {
	bcfg := defaultBrowserConfig()
	for _, o := range opts {
		o(&bcfg)
	}
	execPath, err := bcfg.browserPath()
	if err != nil {
		return nil, err
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
	)
	if bcfg.headless != "" {
		allocOpts = append(allocOpts, chromedp.Flag("headless", bcfg.headless))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(execPath))
	}
	if bcfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("pdfdoc: starting browser: %w", err)
	}

	e := &ChromeEngine{
		layout:        newLayout(cfg),
		bcfg:          bcfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}
	e.log.Debug("chrome engine started", "format", cfg.PageFormat)
	return e, nil
}

// Close releases all resources held by the engine, including the
// browser process. Close is idempotent.
func (e *ChromeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.browserCancel()
	e.allocCancel()
	return nil
}

// Output prints the buffered document to PDF.
func (e *ChromeEngine) Output(ctx context.Context) ([]byte, error) {
	if err := e.checkClosed(); err != nil {
		return nil, err
	}

	path, cleanup, err := writeTempHTML(e.document())
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if e.bcfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.bcfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(e.browserCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	// Dimensions already account for orientation.
	width, height := paperDimensions(e.cfg.PageSize, e.cfg.Orientation)
	marginTop, marginRight, marginBottom, marginLeft := e.margins.inches()
	withFooter := !e.footer.IsZero()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+path),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(marginTop).
				WithMarginRight(marginRight).
				WithMarginBottom(marginBottom).
				WithMarginLeft(marginLeft).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(withFooter)

			if withFooter {
				params = params.
					WithHeaderTemplate("<span></span>").
					WithFooterTemplate(e.chromeFooterTemplate())
			}

			var err error
			buf, _, err = params.Do(ctx)
			return err
		}),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("pdfdoc: rendering: %w", ctxErr)
		}
		return nil, fmt.Errorf("pdfdoc: rendering: %w", err)
	}

	e.log.Debug("chrome engine printed document", "bytes", len(buf))
	return buf, nil
}

func (e *ChromeEngine) checkClosed() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return nil
}

// writeTempHTML stores markup in a temporary file so the browser can load it
// with a file:// URL and resolve relative resources.
func writeTempHTML(markup string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "pdfdoc-*.html")
	if err != nil {
		return "", nil, fmt.Errorf("pdfdoc: creating temp file: %w", err)
	}
	name := f.Name()
	cleanup = func() { os.Remove(name) }

	if _, err := f.WriteString(markup); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("pdfdoc: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("pdfdoc: closing temp file: %w", err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("pdfdoc: resolving path: %w", err)
	}
	return abs, cleanup, nil
}
