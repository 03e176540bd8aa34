package pdfdoc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Encoding is the only character encoding documents are written in.
const Encoding = "UTF-8"

// DefaultFilename is the filename a new [Document] starts with.
const DefaultFilename = "document.pdf"

// DefaultFontSize is the body font size, in points, of a new [Document].
const DefaultFontSize = 12

// Metadata is the document information written to the PDF.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Keywords []string
}

// Document is a fluent configuration facade in front of an [Engine].
//
// Setters validate their argument, store it and return the Document so
// calls can be chained. Invalid input falls back to a documented default,
// or, with [WithStrict], leaves the state unchanged and records an error
// reported by [Document.Err] and [Document.Render].
//
// The engine is constructed once, from the configuration accumulated so
// far, by [Document.InitializePageSetup] or by the first call that writes
// content. Page size, orientation and margin changes made afterwards are
// kept by the Document but not re-applied to the engine; margins can be
// pushed again with [Document.RegisterPageMargins].
//
// A Document is not safe for concurrent use.
type Document struct {
	id        string
	baseLog   *slog.Logger
	log       *slog.Logger
	newEngine EngineFactory
	engine    Engine
	strict    bool
	now       func() time.Time
	sink      io.Writer
	fs        afero.Fs

	pageSize    PageSize
	orientation Orientation
	pageFormat  string
	margins     Margins
	fontFamily  string
	fontStack   string
	fontSize    int
	meta        Metadata
	filename    string
	destination Destination
	header      string
	footer      FooterSpec

	err      error
	rendered bool
	closed   bool
}

// New returns a Document holding the default configuration.
func New(opts ...Option) *Document {
	stack, _ := FontStack(DefaultFontFamily)
	d := &Document{
		id:          uuid.NewString(),
		baseLog:     slog.New(slog.DiscardHandler),
		newEngine:   Chrome(),
		now:         time.Now,
		fs:          afero.NewOsFs(),
		pageSize:    DefaultPageSize,
		orientation: Portrait,
		margins:     DefaultMargins(),
		fontFamily:  DefaultFontFamily,
		fontStack:   stack,
		fontSize:    DefaultFontSize,
		filename:    DefaultFilename,
		destination: DefaultDestination,
	}
	for _, o := range opts {
		o(d)
	}
	d.log = d.baseLog.With("doc", d.id)
	d.registerPageFormat()
	return d
}

// --- Page setup ---

// InitializePageSetup resolves the page size and orientation and then
// constructs the engine. Unsupported values fall back to Letter and
// Portrait. Calling it once the engine exists only updates the Document.
func (d *Document) InitializePageSetup(size, orientation string) *Document {
	if !d.mutable() {
		return d
	}
	d.applyPageSize(size)
	d.applyOrientation(orientation)
	if d.engine != nil {
		d.log.Warn("engine already initialised; page setup not re-applied", "format", d.pageFormat)
		return d
	}
	d.ensureEngine()
	return d
}

// SetPageSize sets one of Letter, Legal, A4 or Tabloid (any case).
func (d *Document) SetPageSize(size string) *Document {
	if d.mutable() {
		d.applyPageSize(size)
	}
	return d
}

// SetPageSizeLetter selects US Letter paper.
func (d *Document) SetPageSizeLetter() *Document { return d.SetPageSize(string(Letter)) }

// SetPageSizeLegal selects US Legal paper.
func (d *Document) SetPageSizeLegal() *Document { return d.SetPageSize(string(Legal)) }

// SetPageSizeA4 selects ISO A4 paper.
func (d *Document) SetPageSizeA4() *Document { return d.SetPageSize(string(A4)) }

// SetPageSizeTabloid selects Tabloid paper.
func (d *Document) SetPageSizeTabloid() *Document { return d.SetPageSize(string(Tabloid)) }

// SetPageOrientation sets "Portrait" or "Landscape"; the first letter is
// enough and case is ignored.
func (d *Document) SetPageOrientation(orientation string) *Document {
	if d.mutable() {
		d.applyOrientation(orientation)
	}
	return d
}

// SetPageAsLandscape selects landscape orientation.
func (d *Document) SetPageAsLandscape() *Document { return d.SetPageOrientation("Landscape") }

// SetPageAsPortrait selects portrait orientation.
func (d *Document) SetPageAsPortrait() *Document { return d.SetPageOrientation("Portrait") }

func (d *Document) applyPageSize(s string) {
	size, ok := ParsePageSize(s)
	if !ok && !d.fallback(ErrInvalidPageSize, "page size", s, string(size)) {
		return
	}
	d.pageSize = size
	d.registerPageFormat()
}

func (d *Document) applyOrientation(s string) {
	o, ok := ParseOrientation(s)
	if !ok && !d.fallback(ErrInvalidOrientation, "orientation", s, o.String()) {
		return
	}
	d.orientation = o
	d.registerPageFormat()
}

// registerPageFormat recomputes the derived page format.
func (d *Document) registerPageFormat() {
	d.pageFormat = PageFormat(d.pageSize, d.orientation)
	if d.engine != nil {
		d.log.Debug("page format changed after engine construction; not applied", "format", d.pageFormat)
	}
}

// --- Margins ---

// SetMarginTop sets the top body margin in millimetres.
func (d *Document) SetMarginTop(mm int) *Document { return d.SetMargin(MarginTop, mm) }

// SetMarginRight sets the right body margin in millimetres.
func (d *Document) SetMarginRight(mm int) *Document { return d.SetMargin(MarginRight, mm) }

// SetMarginBottom sets the bottom body margin in millimetres.
func (d *Document) SetMarginBottom(mm int) *Document { return d.SetMargin(MarginBottom, mm) }

// SetMarginLeft sets the left body margin in millimetres.
func (d *Document) SetMarginLeft(mm int) *Document { return d.SetMargin(MarginLeft, mm) }

// SetMarginHeader sets the header margin in millimetres.
func (d *Document) SetMarginHeader(mm int) *Document { return d.SetMargin(MarginHeader, mm) }

// SetMarginFooter sets the footer margin in millimetres.
func (d *Document) SetMarginFooter(mm int) *Document { return d.SetMargin(MarginFooter, mm) }

// SetMargin sets one margin from dynamically typed input, such as decoded
// configuration or form values. Only integers, or strings holding a base-10
// integer, are accepted; anything else, and negative values, leave the
// margin unchanged.
func (d *Document) SetMargin(side MarginSide, v any) *Document {
	if !d.mutable() {
		return d
	}
	field := d.margins.field(side)
	if field == nil {
		d.reject(ErrInvalidMargin, "margin side", side)
		return d
	}
	mm, ok := integerValue(v)
	if !ok || mm < 0 {
		d.reject(ErrInvalidMargin, side.String()+" margin", v)
		return d
	}
	*field = mm
	return d
}

// SetMargins replaces all six margins. Negative fields are ignored.
func (d *Document) SetMargins(m Margins) *Document {
	for _, side := range []MarginSide{MarginTop, MarginRight, MarginBottom, MarginLeft, MarginHeader, MarginFooter} {
		d.SetMargin(side, m.Get(side))
	}
	return d
}

// RegisterPageMargins pushes the current margins to the engine: left, top
// and right directly, bottom as the automatic page break margin, then the
// header and footer margins.
func (d *Document) RegisterPageMargins() *Document {
	m := d.margins
	d.forward(func(e Engine) error {
		e.SetLeftMargin(m.Left)
		e.SetTopMargin(m.Top)
		e.SetRightMargin(m.Right)
		e.SetAutoPageBreak(true, m.Bottom)
		e.SetHeaderFooterMargins(m.Header, m.Footer)
		return nil
	})
	return d
}

// --- Fonts ---

// SetFontType selects the body font family by name (see [FontFamilies]).
// Unknown names select the default sans-serif stack.
func (d *Document) SetFontType(name string) *Document {
	if !d.mutable() {
		return d
	}
	stack, ok := FontStack(name)
	family := strings.ToLower(strings.TrimSpace(name))
	if !ok {
		if !d.fallback(ErrInvalidFont, "font", name, "default") {
			return d
		}
		family = "default"
	}
	d.fontFamily = family
	d.fontStack = stack
	d.configure(func(e Engine) { e.SetDefaultBodyCSS("font-family", stack) })
	return d
}

// SetFontSize sets the body font size in points. Non-positive sizes are
// ignored.
func (d *Document) SetFontSize(pt int) *Document {
	if !d.mutable() {
		return d
	}
	if pt <= 0 {
		d.reject(ErrInvalidFontSize, "font size", pt)
		return d
	}
	d.fontSize = pt
	d.configure(func(e Engine) { e.SetDefaultFontSize(pt) })
	return d
}

// --- Metadata ---

// SetMetaTitle sets the document title.
func (d *Document) SetMetaTitle(s string) *Document {
	if d.mutable() {
		d.meta.Title = s
		d.configure(func(e Engine) { e.SetTitle(s) })
	}
	return d
}

// SetMetaAuthor sets the document author.
func (d *Document) SetMetaAuthor(s string) *Document {
	if d.mutable() {
		d.meta.Author = s
		d.configure(func(e Engine) { e.SetAuthor(s) })
	}
	return d
}

// SetMetaSubject sets the document subject.
func (d *Document) SetMetaSubject(s string) *Document {
	if d.mutable() {
		d.meta.Subject = s
		d.configure(func(e Engine) { e.SetSubject(s) })
	}
	return d
}

// SetMetaCreator sets the application that created the original content.
func (d *Document) SetMetaCreator(s string) *Document {
	if d.mutable() {
		d.meta.Creator = s
		d.configure(func(e Engine) { e.SetCreator(s) })
	}
	return d
}

// SetMetaKeywords appends words to the keyword list. Calls accumulate in
// order and duplicates are kept.
func (d *Document) SetMetaKeywords(words []string) *Document {
	if d.mutable() {
		d.meta.Keywords = append(d.meta.Keywords, words...)
		kw := d.keywords()
		d.configure(func(e Engine) { e.SetKeywords(kw) })
	}
	return d
}

func (d *Document) keywords() string {
	return strings.Join(d.meta.Keywords, ", ")
}

// --- Output ---

// SetFilename sets the name used by the File destination and reported to
// Inline and Download sinks. Empty names are ignored.
func (d *Document) SetFilename(name string) *Document {
	if !d.mutable() {
		return d
	}
	if strings.TrimSpace(name) == "" {
		d.log.Debug("empty filename ignored")
		return d
	}
	d.filename = name
	return d
}

// SetOutputDestination selects Inline, Download, File or String by name or
// first letter. The legacy "Browser" alias selects Inline, and unsupported
// values fall back to Inline.
func (d *Document) SetOutputDestination(dest string) *Document {
	if !d.mutable() {
		return d
	}
	resolved, ok := ParseDestination(dest)
	if !ok && !d.fallback(ErrInvalidDestination, "destination", dest, string(resolved)) {
		return d
	}
	d.destination = resolved
	return d
}

// --- Content ---

// SetHeader writes a header block at the current position of the content:
// left text in bold, right text in italics, aligned right.
func (d *Document) SetHeader(h Header) *Document {
	if !d.mutable() {
		return d
	}
	d.header = headerHTML(h, d.now())
	return d.AppendPageContent(d.header)
}

// SetFooter sets the running page footer.
func (d *Document) SetFooter(f Footer) *Document {
	if !d.mutable() {
		return d
	}
	spec := footerSpec(f)
	d.footer = spec
	d.forward(func(e Engine) error {
		e.SetFooter(spec)
		return nil
	})
	return d
}

// AppendPageContent writes HTML to the document body.
func (d *Document) AppendPageContent(markup string) *Document {
	if d.mutable() {
		d.forward(func(e Engine) error { return e.WriteHTML(markup) })
	}
	return d
}

// AppendPageCSS adds a stylesheet to the document.
func (d *Document) AppendPageCSS(css string) *Document {
	if d.mutable() {
		d.forward(func(e Engine) error { return e.WriteCSS(css, 1) })
	}
	return d
}

// AppendMarkdown converts Markdown to HTML and writes it to the body.
func (d *Document) AppendMarkdown(src string) *Document {
	if !d.mutable() {
		return d
	}
	markup, err := markdownToHTML(src)
	if err != nil {
		d.fail(err)
		return d
	}
	return d.AppendPageContent(markup)
}

// Render asks the engine for the finished PDF, delivers it to the
// configured destination and returns it. Render is terminal: the engine is
// closed and later setters record [ErrRendered]. Render on a closed
// Document returns [ErrClosed].
func (d *Document) Render(ctx context.Context) (*Result, error) {
	if d.rendered {
		return nil, ErrRendered
	}
	if d.closed {
		return nil, ErrClosed
	}
	if d.err != nil {
		return nil, d.err
	}
	e, err := d.ensureEngine()
	if err != nil {
		return nil, err
	}
	d.rendered = true
	defer d.releaseEngine()

	data, err := e.Output(ctx)
	if err != nil {
		return nil, err
	}
	res := &Result{data: data, filename: d.filename, destination: d.destination}
	if err := deliver(res, d.sink, d.fs); err != nil {
		return nil, err
	}
	d.log.Info("document rendered",
		"format", d.pageFormat,
		"destination", d.destination.Name(),
		"filename", d.filename,
		"bytes", res.Len())
	return res, nil
}

// Close releases the engine without rendering. Content written so far is
// discarded, later setters record [ErrClosed] and Render returns it. Close
// is idempotent and safe to call after Render.
func (d *Document) Close() error {
	if !d.rendered && !d.closed {
		d.log.Debug("document closed before rendering")
	}
	d.closed = true
	if d.engine == nil {
		return nil
	}
	err := d.engine.Close()
	d.engine = nil
	return err
}

func (d *Document) releaseEngine() {
	if d.engine == nil {
		return
	}
	if err := d.engine.Close(); err != nil {
		d.log.Warn("closing engine", "err", err)
	}
	d.engine = nil
}

// --- Getters ---

// ID returns the unique identifier used in the Document's log records.
func (d *Document) ID() string { return d.id }

// Err returns the first error recorded by a setter, if any.
func (d *Document) Err() error { return d.err }

// PageSize returns the resolved page size.
func (d *Document) PageSize() PageSize { return d.pageSize }

// Orientation returns the page orientation.
func (d *Document) Orientation() Orientation { return d.orientation }

// PageFormat returns "{size}" for portrait pages and "{size}-L" for
// landscape ones.
func (d *Document) PageFormat() string { return d.pageFormat }

// Margins returns the current margins in millimetres.
func (d *Document) Margins() Margins { return d.margins }

// FontFamily returns the selected family name.
func (d *Document) FontFamily() string { return d.fontFamily }

// FontStack returns the CSS font stack of the selected family.
func (d *Document) FontStack() string { return d.fontStack }

// FontSize returns the body font size in points.
func (d *Document) FontSize() int { return d.fontSize }

// Encoding returns the character encoding, always UTF-8.
func (d *Document) Encoding() string { return Encoding }

// Metadata returns a copy of the document metadata.
func (d *Document) Metadata() Metadata {
	m := d.meta
	m.Keywords = slices.Clone(d.meta.Keywords)
	return m
}

// Filename returns the output filename.
func (d *Document) Filename() string { return d.filename }

// Destination returns the output destination.
func (d *Document) Destination() Destination { return d.destination }

// HeaderHTML returns the markup written by the last SetHeader call.
func (d *Document) HeaderHTML() string { return d.header }

// FooterSpec returns the running footer set by the last SetFooter call.
func (d *Document) FooterSpec() FooterSpec { return d.footer }

// --- Engine plumbing ---

func (d *Document) engineConfig() EngineConfig {
	return EngineConfig{
		Encoding:    Encoding,
		PageFormat:  d.pageFormat,
		PageSize:    d.pageSize,
		Orientation: d.orientation,
		FontSize:    d.fontSize,
		FontFamily:  d.fontStack,
		Margins:     d.margins,
		Logger:      d.log,
	}
}

// ensureEngine constructs the engine on first use and replays metadata set
// before it existed.
func (d *Document) ensureEngine() (Engine, error) {
	if d.engine != nil {
		return d.engine, nil
	}
	if d.err != nil {
		return nil, d.err
	}
	if d.closed {
		d.fail(ErrClosed)
		return nil, ErrClosed
	}
	e, err := d.newEngine(d.engineConfig())
	if err != nil {
		d.fail(err)
		return nil, err
	}
	if d.meta.Title != "" {
		e.SetTitle(d.meta.Title)
	}
	if d.meta.Author != "" {
		e.SetAuthor(d.meta.Author)
	}
	if d.meta.Subject != "" {
		e.SetSubject(d.meta.Subject)
	}
	if d.meta.Creator != "" {
		e.SetCreator(d.meta.Creator)
	}
	if len(d.meta.Keywords) > 0 {
		e.SetKeywords(d.keywords())
	}
	d.engine = e
	d.log.Debug("engine constructed", "format", d.pageFormat)
	return e, nil
}

// forward runs fn against the engine, constructing it when needed.
func (d *Document) forward(fn func(Engine) error) {
	e, err := d.ensureEngine()
	if err != nil {
		return
	}
	if err := fn(e); err != nil {
		d.fail(err)
	}
}

// configure runs fn only when the engine already exists; otherwise the
// value reaches the engine through its construction.
func (d *Document) configure(fn func(Engine)) {
	if d.engine != nil {
		fn(d.engine)
	}
}

// mutable reports whether setters may still change the Document.
func (d *Document) mutable() bool {
	switch {
	case d.rendered:
		d.fail(ErrRendered)
		return false
	case d.closed:
		d.fail(ErrClosed)
		return false
	}
	return true
}

// fallback handles an unsupported value that has a default. In permissive
// mode it logs and reports true so the caller applies the default.
func (d *Document) fallback(sentinel error, field string, value any, def string) bool {
	if d.strict {
		d.fail(fmt.Errorf("%w: %q", sentinel, fmt.Sprint(value)))
		return false
	}
	d.log.Debug("unsupported value replaced by default", "field", field, "value", value, "default", def)
	return true
}

// reject handles an unsupported value that has no default: the state is
// left unchanged either way.
func (d *Document) reject(sentinel error, field string, value any) {
	if d.strict {
		d.fail(fmt.Errorf("%w: %s %v", sentinel, field, value))
		return
	}
	d.log.Debug("unsupported value ignored", "field", field, "value", value)
}

func (d *Document) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}
