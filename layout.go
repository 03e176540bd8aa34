package pdfdoc

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// layout buffers everything an HTML-printing engine needs and assembles a
// single HTML document at output time. Browser and wkhtmltopdf engines
// embed it and only implement Output and Close.
type layout struct {
	cfg           EngineConfig
	log           *slog.Logger
	margins       Margins
	autoPageBreak bool

	title    string
	author   string
	creator  string
	subject  string
	keywords string

	bodyCSS []cssDecl
	styles  []stylesheet
	body    strings.Builder
	footer  FooterSpec
}

type cssDecl struct {
	property string
	value    string
}

type stylesheet struct {
	css      string
	priority int
}

func newLayout(cfg EngineConfig) layout {
	l := layout{
		cfg:           cfg,
		log:           cfg.logger(),
		margins:       cfg.Margins,
		autoPageBreak: true,
	}
	if cfg.FontFamily != "" {
		l.SetDefaultBodyCSS("font-family", cfg.FontFamily)
	}
	if cfg.FontSize > 0 {
		l.SetDefaultFontSize(cfg.FontSize)
	}
	return l
}

// SetLeftMargin sets the left page margin in millimetres.
func (l *layout) SetLeftMargin(mm int) { l.margins.Left = mm }

// SetTopMargin sets the top page margin in millimetres.
func (l *layout) SetTopMargin(mm int) { l.margins.Top = mm }

// SetRightMargin sets the right page margin in millimetres.
func (l *layout) SetRightMargin(mm int) { l.margins.Right = mm }

// SetAutoPageBreak sets the bottom margin. With enabled false, elements
// are kept whole instead of breaking across pages.
func (l *layout) SetAutoPageBreak(enabled bool, bottomMargin int) {
	l.autoPageBreak = enabled
	l.margins.Bottom = bottomMargin
}

// SetHeaderFooterMargins sets the header and footer distances from the
// page edge.
func (l *layout) SetHeaderFooterMargins(header, footer int) {
	l.margins.Header = header
	l.margins.Footer = footer
}

// SetTitle sets the title element of the assembled page.
func (l *layout) SetTitle(s string) { l.title = s }

// SetAuthor sets the author meta element.
func (l *layout) SetAuthor(s string) { l.author = s }

// SetCreator sets the generator meta element.
func (l *layout) SetCreator(s string) { l.creator = s }

// SetSubject sets the description meta element.
func (l *layout) SetSubject(s string) { l.subject = s }

// SetKeywords sets the keywords meta element.
func (l *layout) SetKeywords(s string) { l.keywords = s }

// SetDefaultFontSize sets the body font size in points.
func (l *layout) SetDefaultFontSize(pt int) {
	l.SetDefaultBodyCSS("font-size", fmt.Sprintf("%dpt", pt))
}

// SetDefaultBodyCSS sets one declaration of the body rule, replacing an
// earlier value for the same property.
func (l *layout) SetDefaultBodyCSS(property, value string) {
	property = strings.ToLower(strings.TrimSpace(property))
	for i := range l.bodyCSS {
		if l.bodyCSS[i].property == property {
			l.bodyCSS[i].value = value
			return
		}
	}
	l.bodyCSS = append(l.bodyCSS, cssDecl{property: property, value: value})
}

// WriteHTML appends markup to the page body.
func (l *layout) WriteHTML(markup string) error {
	l.body.WriteString(markup)
	l.body.WriteByte('\n')
	return nil
}

// WriteCSS adds a stylesheet. Lower priorities are emitted first so that
// higher ones win the cascade; equal priorities keep insertion order.
func (l *layout) WriteCSS(css string, priority int) error {
	l.styles = append(l.styles, stylesheet{css: css, priority: priority})
	return nil
}

// SetFooter sets the running footer printed on every page.
func (l *layout) SetFooter(spec FooterSpec) { l.footer = spec }

// document assembles the buffered state into one HTML page.
func (l *layout) document() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<meta charset=%q>\n", l.encoding())
	if l.title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(l.title))
	}
	meta := func(name, content string) {
		if content != "" {
			fmt.Fprintf(&b, "<meta name=%q content=\"%s\">\n", name, html.EscapeString(content))
		}
	}
	meta("author", l.author)
	meta("description", l.subject)
	meta("keywords", l.keywords)
	meta("generator", l.creator)

	if len(l.bodyCSS) > 0 || !l.autoPageBreak {
		b.WriteString("<style>\nbody {")
		for _, d := range l.bodyCSS {
			fmt.Fprintf(&b, " %s: %s;", d.property, d.value)
		}
		b.WriteString(" }\n")
		if !l.autoPageBreak {
			b.WriteString("* { break-inside: avoid; }\n")
		}
		b.WriteString("</style>\n")
	}

	styles := make([]stylesheet, len(l.styles))
	copy(styles, l.styles)
	sort.SliceStable(styles, func(i, j int) bool {
		return styles[i].priority < styles[j].priority
	})
	for _, s := range styles {
		fmt.Fprintf(&b, "<style>\n%s\n</style>\n", s.css)
	}

	b.WriteString("</head>\n<body>\n")
	b.WriteString(l.body.String())
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func (l *layout) encoding() string {
	if l.cfg.Encoding == "" {
		return "UTF-8"
	}
	return l.cfg.Encoding
}

// chromeFooterTemplate renders the footer spec as a Chrome print template.
// Chrome fills elements with the pageNumber and totalPages classes.
func (l *layout) chromeFooterTemplate() string {
	if l.footer.IsZero() {
		return "<span></span>"
	}
	cell := func(c FooterCell, align string) string {
		content := strings.NewReplacer(
			PageNumberToken, `<span class="pageNumber"></span>`,
			TotalPagesToken, `<span class="totalPages"></span>`,
		).Replace(c.Content)
		style := fmt.Sprintf("flex: 1; text-align: %s; font-family: %s; font-size: %gpt; color: %s;",
			align, c.FontFamily, c.FontSize, c.Color)
		if strings.Contains(c.FontStyle, "I") {
			style += " font-style: italic;"
		}
		return fmt.Sprintf(`<div style="%s">%s</div>`, style, content)
	}
	border := ""
	if l.footer.Line {
		border = " border-top: 0.5pt solid #000000; padding-top: 1mm;"
	}
	return fmt.Sprintf(`<div style="display: flex; width: 100%%; margin: 0 %dmm 0 %dmm; -webkit-print-color-adjust: exact;%s">%s%s%s</div>`,
		l.margins.Right, l.margins.Left, border,
		cell(l.footer.Left, "left"),
		cell(l.footer.Center, "center"),
		cell(l.footer.Right, "right"),
	)
}
