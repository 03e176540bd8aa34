package pdfdoc

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/afero"
)

// browserConfig holds internal configuration for browser-backed engines.
type browserConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	autoDownload bool
	headless     string
}

func defaultBrowserConfig() browserConfig {
	return browserConfig{
		timeout:  30 * time.Second,
		headless: "new",
	}
}

// BrowserOption configures [ChromeEngine] and [RodEngine].
type BrowserOption func(*browserConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) BrowserOption {
	return func(c *browserConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for rendering a document.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) BrowserOption {
	return func(c *browserConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() BrowserOption {
	return func(c *browserConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload fetches a compatible Chromium build when no browser
// path is configured. The download is cached between runs.
func WithAutoDownload() BrowserOption {
	return func(c *browserConfig) {
		c.autoDownload = true
	}
}

// WithHeadlessMode sets the value of Chrome's --headless switch. The
// default is "new"; an empty mode opens a visible window, which helps when
// debugging layout.
func WithHeadlessMode(mode string) BrowserOption {
	return func(c *browserConfig) {
		c.headless = mode
	}
}

// Option configures a [Document].
type Option func(*Document)

// WithEngine selects the rendering engine. Defaults to [Chrome].
func WithEngine(f EngineFactory) Option {
	return func(d *Document) {
		if f != nil {
			d.newEngine = f
		}
	}
}

// WithLogger sets the logger used for fallbacks and lifecycle events.
// Documents are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.baseLog = l
		}
	}
}

// WithStrict makes setters record a validation error instead of silently
// falling back to defaults. See [Document.Err].
func WithStrict() Option {
	return func(d *Document) {
		d.strict = true
	}
}

// WithOutput sets the sink for the Inline and Download destinations.
// An [net/http.ResponseWriter] also receives content headers.
func WithOutput(w io.Writer) Option {
	return func(d *Document) {
		d.sink = w
	}
}

// WithFS sets the filesystem used by the File destination.
// Defaults to the operating system filesystem.
func WithFS(fs afero.Fs) Option {
	return func(d *Document) {
		if fs != nil {
			d.fs = fs
		}
	}
}

// WithClock overrides the time source used by [DateMacro].
func WithClock(now func() time.Time) Option {
	return func(d *Document) {
		if now != nil {
			d.now = now
		}
	}
}
