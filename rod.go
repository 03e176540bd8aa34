package pdfdoc

import (
	"context"
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// RodEngine renders documents with headless Chrome driven by go-rod.
// Unlike [ChromeEngine] it connects lazily, on the first Output, and the
// rod launcher downloads Chromium when none is installed.
type RodEngine struct {
	layout

	bcfg    browserConfig
	browser *rod.Browser
	closed  bool
}

// Rod returns an [EngineFactory] for [RodEngine].
func Rod(opts ...BrowserOption) EngineFactory {
	return func(cfg EngineConfig) (Engine, error) {
		return NewRodEngine(cfg, opts...), nil
	}
}

// NewRodEngine creates a RodEngine. No browser is started until Output.
func NewRodEngine(cfg EngineConfig, opts ...BrowserOption) *RodEngine {
	bcfg := defaultBrowserConfig()
	for _, o := range opts {
		o(&bcfg)
	}
	return &RodEngine{layout: newLayout(cfg), bcfg: bcfg}
}

// ensureBrowser lazily connects to the browser.
func (e *RodEngine) ensureBrowser() error {
	if e.browser != nil {
		return nil
	}

	l, err := e.launcher()
	if err != nil {
		return err
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("pdfdoc: launching browser: %w", err)
	}

	e.browser = rod.New().ControlURL(u)
	if err := e.browser.Connect(); err != nil {
		e.browser = nil
		return fmt.Errorf("pdfdoc: connecting to browser: %w", err)
	}
	e.log.Debug("rod engine connected", "control_url", u)
	return nil
}

// launcher builds the browser launcher from the engine options. Without a
// configured or downloaded binary, rod searches standard locations and
// falls back to its own download.
func (e *RodEngine) launcher() (*launcher.Launcher, error) {
	path, err := e.bcfg.browserPath()
	if err != nil {
		return nil, err
	}
	l := launcher.New()
	if path != "" {
		l = l.Bin(path)
	}
	if e.bcfg.headless != "" {
		l = l.Set(flags.Headless, e.bcfg.headless)
	} else {
		l = l.Headless(false)
	}
	return l.NoSandbox(e.bcfg.noSandbox), nil
}

// Output prints the buffered document to PDF.
func (e *RodEngine) Output(ctx context.Context) ([]byte, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.ensureBrowser(); err != nil {
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

	pg, err := e.browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: opening page: %w", err)
	}
	defer pg.Close()
	pg = pg.Context(ctx)

	if err := pg.WaitLoad(); err != nil {
		return nil, fmt.Errorf("pdfdoc: loading page: %w", err)
	}

	reader, err := pg.PDF(e.printOptions())
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: rendering: %w", err)
	}
	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: reading PDF stream: %w", err)
	}
	return buf, nil
}

// printOptions builds the print request from the buffered layout.
func (e *RodEngine) printOptions() *proto.PagePrintToPDF {
	// Dimensions already account for orientation.
	width, height := paperDimensions(e.cfg.PageSize, e.cfg.Orientation)
	top, right, bottom, left := e.margins.inches()

	opts := &proto.PagePrintToPDF{
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &top,
		MarginRight:     &right,
		MarginBottom:    &bottom,
		MarginLeft:      &left,
		PrintBackground: true,
	}
	if !e.footer.IsZero() {
		opts.DisplayHeaderFooter = true
		opts.HeaderTemplate = "<span></span>"
		opts.FooterTemplate = e.chromeFooterTemplate()
	}
	return opts
}

// Close releases browser resources. Close is idempotent.
func (e *RodEngine) Close() error {
	e.closed = true
	if e.browser != nil {
		err := e.browser.Close()
		e.browser = nil
		return err
	}
	return nil
}
