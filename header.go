package pdfdoc

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Macros recognised in header and footer text.
const (
	// DateMacro expands to the current time, e.g. "3/07/2025 4:05 PM".
	DateMacro = `{{date("n/d/Y g:i A")}}`
	// PageMacro expands to "{PAGENO} of {nb}", which engines resolve to
	// the current page number and the total page count.
	PageMacro = `{{page("# of #")}}`
)

// Page number tokens carried in a [FooterSpec].
const (
	PageNumberToken = "{PAGENO}"
	TotalPagesToken = "{nb}"
)

const headerDateLayout = "1/02/2006 3:04 PM"

// Header is the text of a document header block. A "|" in Left starts a
// new line; Right may contain [DateMacro].
type Header struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// Footer is the text of the running page footer. A "|" in Left or Center
// starts a new line; Right may contain [PageMacro].
type Footer struct {
	Left   string `yaml:"left"`
	Center string `yaml:"center"`
	Right  string `yaml:"right"`
}

// FooterCell is one positioned footer slot.
type FooterCell struct {
	Content    string  // HTML fragment
	FontSize   float64 // points
	FontStyle  string  // "", "I"; bold comes from the markup
	FontFamily string
	Color      string
}

// FooterSpec is the structured running footer handed to an engine.
type FooterSpec struct {
	Left   FooterCell
	Center FooterCell
	Right  FooterCell
	Line   bool // rule above the footer
}

// IsZero reports whether the spec carries no content at all.
func (s FooterSpec) IsZero() bool {
	return s.Left.plainText() == "" && s.Center.plainText() == "" && s.Right.plainText() == ""
}

func lineBreaks(s string) string {
	return strings.ReplaceAll(s, "|", "<br>")
}

// headerHTML renders the header block written at the top of the content.
func headerHTML(h Header, now time.Time) string {
	right := strings.ReplaceAll(h.Right, DateMacro, now.Format(headerDateLayout))
	left := lineBreaks(h.Left)
	return fmt.Sprintf(`<table border='0' cellspacing='0' cellpadding='0' width='100%%'><tr>`+
		`<td style='font-family:arial;font-size:14px;font-weight:bold;'>%s</td>`+
		`<td style='font-size:13px;font-family:arial;text-align:right;font-style:italic;'>%s</td>`+
		`</tr></table><br>`, left, right)
}

// footerSpec builds the running footer from caller text.
func footerSpec(f Footer) FooterSpec {
	cell := func(content, style string) FooterCell {
		return FooterCell{
			Content:    "<strong>" + content + "</strong>",
			FontSize:   9,
			FontStyle:  style,
			FontFamily: "Arial",
			Color:      "#000000",
		}
	}
	right := strings.ReplaceAll(f.Right, PageMacro, PageNumberToken+" of "+TotalPagesToken)
	return FooterSpec{
		Left:   cell(lineBreaks(f.Left), ""),
		Center: cell(lineBreaks(f.Center), "I"),
		Right:  cell(right, ""),
		Line:   true,
	}
}

// bold reports whether the cell markup asks for bold text.
func (c FooterCell) bold() bool {
	z := html.NewTokenizer(strings.NewReader(c.Content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.B || a == atom.Strong {
				return true
			}
		}
	}
}

// plainText flattens the cell markup to one line of text for engines that
// cannot draw HTML in the footer. Line breaks and block ends become spaces;
// comments and script or style bodies are dropped.
func (c FooterCell) plainText() string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(c.Content))
	skip := false
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if !skip {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); {
			case rawTextTag(a):
				skip = tt == html.StartTagToken
			case a == atom.Br:
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); {
			case rawTextTag(a):
				skip = false
			case a == atom.Br, blockTag(a):
				b.WriteByte(' ')
			}
		}
	}
}

// blockTag reports whether closing a is a line break in flowed text.
func blockTag(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Li, atom.Tr, atom.Table, atom.Ul, atom.Ol, atom.Blockquote, atom.Pre,
		atom.Dt, atom.Dd:
		return true
	}
	return false
}

func rawTextTag(a atom.Atom) bool {
	return a == atom.Script || a == atom.Style
}
