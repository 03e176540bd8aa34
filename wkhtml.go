package pdfdoc

import (
	"context"
	"fmt"
	"strings"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// WkhtmlEngine renders documents with the wkhtmltopdf binary, which must be
// in PATH or named by the WKHTMLTOPDF_PATH environment variable. Footers
// are drawn as plain text; only the title reaches the PDF metadata.
type WkhtmlEngine struct {
	layout

	pdfg   *wkhtmltopdf.PDFGenerator
	closed bool
}

// Wkhtmltopdf returns an [EngineFactory] for [WkhtmlEngine].
func Wkhtmltopdf() EngineFactory {
	return func(cfg EngineConfig) (Engine, error) {
		return NewWkhtmlEngine(cfg)
	}
}

// NewWkhtmlEngine locates wkhtmltopdf and creates an engine.
func NewWkhtmlEngine(cfg EngineConfig) (*WkhtmlEngine, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: locating wkhtmltopdf: %w", err)
	}
	return &WkhtmlEngine{layout: newLayout(cfg), pdfg: pdfg}, nil
}

// Output runs wkhtmltopdf on the buffered document.
func (e *WkhtmlEngine) Output(ctx context.Context) ([]byte, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfg := e.pdfg
	pdfg.PageSize.Set(string(e.cfg.PageSize))
	pdfg.Orientation.Set(e.cfg.Orientation.String())
	pdfg.MarginTop.Set(uintMargin(e.margins.Top))
	pdfg.MarginRight.Set(uintMargin(e.margins.Right))
	pdfg.MarginBottom.Set(uintMargin(e.margins.Bottom))
	pdfg.MarginLeft.Set(uintMargin(e.margins.Left))
	if e.title != "" {
		pdfg.Title.Set(e.title)
	}

	pg := wkhtmltopdf.NewPageReader(strings.NewReader(e.document()))
	if !e.footer.IsZero() {
		pg.FooterLeft.Set(wkhtmlFooterText(e.footer.Left))
		pg.FooterCenter.Set(wkhtmlFooterText(e.footer.Center))
		pg.FooterRight.Set(wkhtmlFooterText(e.footer.Right))
		pg.FooterFontName.Set(e.footer.Right.FontFamily)
		pg.FooterFontSize.Set(uint(e.footer.Right.FontSize))
		pg.FooterLine.Set(e.footer.Line)
	}
	pdfg.AddPage(pg)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("pdfdoc: rendering: %w", err)
	}
	return pdfg.Bytes(), nil
}

// Close is idempotent.
func (e *WkhtmlEngine) Close() error {
	e.closed = true
	return nil
}

// wkhtmlFooterText flattens a footer cell and swaps the page tokens for
// the wkhtmltopdf substitution variables.
func wkhtmlFooterText(c FooterCell) string {
	return strings.NewReplacer(
		PageNumberToken, "[page]",
		TotalPagesToken, "[topage]",
	).Replace(c.plainText())
}

func uintMargin(mm int) uint {
	if mm < 0 {
		return 0
	}
	return uint(mm)
}
