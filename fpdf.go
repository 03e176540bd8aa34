package pdfdoc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FPDFEngine renders documents in pure Go with go-pdf/fpdf. It needs no
// browser and writes real document metadata, but only understands basic
// inline HTML (b, i, u, a, br) and ignores stylesheets.
type FPDFEngine struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	log *slog.Logger

	family       string // core font
	size         float64
	footer       FooterSpec
	footerMargin int
	out          []byte
	closed       bool
}

// FPDF returns an [EngineFactory] for [FPDFEngine].
func FPDF() EngineFactory {
	return func(cfg EngineConfig) (Engine, error) {
		return NewFPDFEngine(cfg)
	}
}

// NewFPDFEngine creates an engine laid out from cfg.
func NewFPDFEngine(cfg EngineConfig) (*FPDFEngine, error) {
	w, h := cfg.PageSize.Dimensions()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: cfg.Orientation.code(),
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})

	e := &FPDFEngine{
		pdf:          pdf,
		tr:           pdf.UnicodeTranslatorFromDescriptor(""),
		log:          cfg.logger(),
		family:       coreFont(cfg.FontFamily),
		size:         float64(cfg.FontSize),
		footerMargin: cfg.Margins.Footer,
	}
	if e.size <= 0 {
		e.size = 12
	}

	m := cfg.Margins
	pdf.SetMargins(float64(m.Left), float64(m.Top), float64(m.Right))
	pdf.SetAutoPageBreak(true, float64(m.Bottom))
	pdf.SetFont(e.family, "", e.size)
	pdf.AliasNbPages(TotalPagesToken)
	pdf.SetFooterFunc(e.drawFooter)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdfdoc: creating fpdf document: %w", err)
	}
	return e, nil
}

// SetLeftMargin sets the left page margin in millimetres.
func (e *FPDFEngine) SetLeftMargin(mm int) { e.pdf.SetLeftMargin(float64(mm)) }

// SetTopMargin sets the top page margin in millimetres.
func (e *FPDFEngine) SetTopMargin(mm int) { e.pdf.SetTopMargin(float64(mm)) }

// SetRightMargin sets the right page margin in millimetres.
func (e *FPDFEngine) SetRightMargin(mm int) { e.pdf.SetRightMargin(float64(mm)) }

// SetAutoPageBreak turns automatic page breaks on or off and sets the
// distance from the bottom edge that triggers one.
func (e *FPDFEngine) SetAutoPageBreak(enabled bool, bottomMargin int) {
	e.pdf.SetAutoPageBreak(enabled, float64(bottomMargin))
}

// SetHeaderFooterMargins sets the footer distance from the bottom edge.
// The header margin is unused; the header is part of the body text.
func (e *FPDFEngine) SetHeaderFooterMargins(_, footer int) {
	e.footerMargin = footer
}

// SetTitle sets the document title metadata.
func (e *FPDFEngine) SetTitle(s string) { e.pdf.SetTitle(s, true) }

// SetAuthor sets the document author metadata.
func (e *FPDFEngine) SetAuthor(s string) { e.pdf.SetAuthor(s, true) }

// SetCreator sets the document creator metadata.
func (e *FPDFEngine) SetCreator(s string) { e.pdf.SetCreator(s, true) }

// SetSubject sets the document subject metadata.
func (e *FPDFEngine) SetSubject(s string) { e.pdf.SetSubject(s, true) }

// SetKeywords sets the document keywords metadata.
func (e *FPDFEngine) SetKeywords(s string) { e.pdf.SetKeywords(s, true) }

// SetDefaultFontSize sets the body font size in points. Non-positive
// sizes are ignored.
func (e *FPDFEngine) SetDefaultFontSize(pt int) {
	if pt <= 0 {
		return
	}
	e.size = float64(pt)
	e.pdf.SetFontSize(e.size)
}

// SetDefaultBodyCSS maps the font-family and font-size properties onto the
// core fonts; other properties are ignored.
func (e *FPDFEngine) SetDefaultBodyCSS(property, value string) {
	switch strings.ToLower(strings.TrimSpace(property)) {
	case "font-family":
		e.family = coreFont(value)
		e.pdf.SetFont(e.family, "", e.size)
	case "font-size":
		pt, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(value), "pt"))
		if err == nil {
			e.SetDefaultFontSize(pt)
		}
	default:
		e.log.Debug("fpdf engine ignores body css", "property", property)
	}
}

// WriteHTML writes markup at the current position, starting the first
// page if needed. Only b, i, u, a and br survive; block ends become breaks.
func (e *FPDFEngine) WriteHTML(markup string) error {
	if e.pdf.PageNo() == 0 {
		e.pdf.AddPage()
	}
	basic := e.pdf.HTMLBasicNew()
	basic.Write(e.lineHeight(), e.tr(basicHTML(markup)))
	return e.pdf.Error()
}

// WriteCSS is a no-op; fpdf has no stylesheet support.
func (e *FPDFEngine) WriteCSS(_ string, priority int) error {
	e.log.Debug("fpdf engine ignores stylesheet", "priority", priority)
	return nil
}

// SetFooter sets the footer drawn at the bottom of every page.
func (e *FPDFEngine) SetFooter(spec FooterSpec) { e.footer = spec }

// Output closes the document and returns its bytes. Repeated calls return
// the same bytes.
func (e *FPDFEngine) Output(ctx context.Context) ([]byte, error) {
	if e.out != nil {
		return e.out, nil
	}
	if e.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.pdf.PageNo() == 0 {
		e.pdf.AddPage()
	}
	var buf bytes.Buffer
	if err := e.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdfdoc: rendering: %w", err)
	}
	e.out = buf.Bytes()
	return e.out, nil
}

// Close is idempotent.
func (e *FPDFEngine) Close() error {
	e.closed = true
	return nil
}

// lineHeight returns the body line height in millimetres.
func (e *FPDFEngine) lineHeight() float64 {
	return ptToMM(e.size) * 1.25
}

func (e *FPDFEngine) drawFooter() {
	if e.footer.IsZero() {
		return
	}
	pdf := e.pdf
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := (pageW - left - right) / 3

	lh := ptToMM(e.footer.Right.FontSize) * 1.25
	pdf.SetY(-float64(e.footerMargin) - lh)
	if e.footer.Line {
		y := pdf.GetY()
		pdf.SetLineWidth(0.2)
		pdf.Line(left, y, pageW-right, y)
	}

	page := strconv.Itoa(pdf.PageNo())
	cells := []struct {
		cell  FooterCell
		align string
	}{
		{e.footer.Left, "L"},
		{e.footer.Center, "C"},
		{e.footer.Right, "R"},
	}
	pdf.SetX(left)
	for _, c := range cells {
		style := c.cell.FontStyle
		if c.cell.bold() {
			style = "B" + style
		}
		size := c.cell.FontSize
		if size <= 0 {
			size = 9
		}
		pdf.SetFont(coreFont(c.cell.FontFamily), style, size)
		r, g, b := hexColor(c.cell.Color)
		pdf.SetTextColor(r, g, b)
		text := strings.ReplaceAll(c.cell.plainText(), PageNumberToken, page)
		pdf.CellFormat(width, lh, e.tr(text), "", 0, c.align, false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(e.family, "", e.size)
}

// coreFont maps a CSS font stack to one of the PDF core fonts.
func coreFont(stack string) string {
	switch genericFamily(stack) {
	case "serif":
		return "Times"
	case "monospace":
		return "Courier"
	}
	return "Helvetica"
}

func ptToMM(pt float64) float64 {
	return pt * 25.4 / 72
}

// hexColor parses "#rrggbb"; anything else is black.
func hexColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// basicTags maps the inline elements kept for the fpdf HTML writer to the
// tag it understands.
var basicTags = map[atom.Atom]string{
	atom.B:      "b",
	atom.Strong: "b",
	atom.I:      "i",
	atom.Em:     "i",
	atom.U:      "u",
	atom.Ins:    "u",
	atom.A:      "a",
}

// hrefEscaper keeps a link target inside the single attribute the fpdf
// tokenizer can read.
var hrefEscaper = strings.NewReplacer(
	" ", "%20", `"`, "%22", "'", "%27", "<", "%3C", ">", "%3E",
)

// basicHTML reduces markup to what the fpdf HTML writer understands: b, i,
// u, a and br. Block-level closing tags become line breaks, text is
// unescaped, and everything else is dropped. A literal "<" in text is
// replaced so it cannot open a tag.
func basicHTML(markup string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	skip := false
	lineBreak := func() {
		b.WriteString("<br>")
	}
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skip {
				continue
			}
			text := collapseSpace(string(z.Text()))
			if strings.HasSuffix(b.String(), "<br>") || b.Len() == 0 {
				text = strings.TrimLeftFunc(text, unicode.IsSpace)
			}
			b.WriteString(strings.ReplaceAll(text, "<", "\u2039"))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			a := atom.Lookup(name)
			switch {
			case rawTextTag(a):
				skip = tt == html.StartTagToken
			case a == atom.Br:
				lineBreak()
			case a == atom.A:
				b.WriteString(anchorTag(z, hasAttr))
			default:
				if tag, ok := basicTags[a]; ok {
					b.WriteString("<" + tag + ">")
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case rawTextTag(a):
				skip = false
			case blockTag(a):
				lineBreak()
			default:
				if tag, ok := basicTags[a]; ok {
					b.WriteString("</" + tag + ">")
				}
			}
		}
	}
}

// anchorTag rebuilds an a start tag with only its href.
func anchorTag(z *html.Tokenizer, hasAttr bool) string {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "href" && len(val) > 0 {
			return `<a href="` + hrefEscaper.Replace(string(val)) + `">`
		}
	}
	return "<a>"
}

// collapseSpace folds whitespace runs to one space, as a browser would.
func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	out := strings.Join(strings.Fields(s), " ")
	if first, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(first) {
		out = " " + out
	}
	if last, _ := utf8.DecodeLastRuneInString(s); unicode.IsSpace(last) && out != " " {
		out += " "
	}
	return out
}
