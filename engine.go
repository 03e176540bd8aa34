package pdfdoc

import (
	"context"
	"log/slog"
)

// EngineConfig is the configuration an engine is constructed from. It is
// captured once, when a [Document] first needs its engine.
type EngineConfig struct {
	Encoding    string
	PageFormat  string
	PageSize    PageSize
	Orientation Orientation
	FontSize    int    // points
	FontFamily  string // CSS font stack
	Margins     Margins
	Logger      *slog.Logger
}

// Engine is the rendering delegate behind a [Document]. Engines do all
// layout work; a Document only validates arguments and forwards them.
//
// Margins are in millimetres and font sizes in points. Footer content may
// contain [PageNumberToken] and [TotalPagesToken].
type Engine interface {
	SetLeftMargin(mm int)
	SetTopMargin(mm int)
	SetRightMargin(mm int)
	SetAutoPageBreak(enabled bool, bottomMargin int)
	SetHeaderFooterMargins(header, footer int)

	SetTitle(s string)
	SetAuthor(s string)
	SetCreator(s string)
	SetSubject(s string)
	SetKeywords(s string)

	SetDefaultFontSize(pt int)
	SetDefaultBodyCSS(property, value string)

	WriteHTML(markup string) error
	WriteCSS(css string, priority int) error
	SetFooter(spec FooterSpec)

	// Output renders the document. It is called at most once.
	Output(ctx context.Context) ([]byte, error)

	// Close releases engine resources. It is idempotent.
	Close() error
}

// EngineFactory constructs an engine from the accumulated configuration.
type EngineFactory func(cfg EngineConfig) (Engine, error)

// Compile-time interface checks
var (
	_ Engine = (*ChromeEngine)(nil)
	_ Engine = (*RodEngine)(nil)
	_ Engine = (*FPDFEngine)(nil)
	_ Engine = (*WkhtmlEngine)(nil)
)

func (cfg EngineConfig) logger() *slog.Logger {
	if cfg.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.Logger
}
