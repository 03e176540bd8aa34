package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/porticus-lab/pdfdoc"
)

var errTerminalOutput = errors.New("refusing to write PDF to a terminal; use -o or redirect stdout")

type renderFlags struct {
	config      string
	pageSize    string
	orientation string
	margins     [6]int
	font        string
	fontSize    int
	title       string
	author      string
	subject     string
	creator     string
	keywords    []string
	header      pdfdoc.Header
	footer      pdfdoc.Footer
	css         []string
	output      string
	dest        string
	engine      string
	chromePath  string
	noSandbox   bool
	autoDL      bool
	headless    string
	base64      bool
	timeout     time.Duration
	strict      bool
	verbose     bool
}

var marginFlags = [6]struct {
	name string
	side pdfdoc.MarginSide
}{
	{"margin-top", pdfdoc.MarginTop},
	{"margin-right", pdfdoc.MarginRight},
	{"margin-bottom", pdfdoc.MarginBottom},
	{"margin-left", pdfdoc.MarginLeft},
	{"margin-header", pdfdoc.MarginHeader},
	{"margin-footer", pdfdoc.MarginFooter},
}

func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	f := &renderFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation")
	for i, m := range marginFlags {
		fs.IntVar(&f.margins[i], m.name, 0, m.side.String()+" margin in mm")
	}
	fs.StringVar(&f.font, "font", "", "body font family")
	fs.IntVar(&f.fontSize, "font-size", 0, "body font size in points")
	fs.StringVar(&f.title, "title", "", "document title")
	fs.StringVar(&f.author, "author", "", "document author")
	fs.StringVar(&f.subject, "subject", "", "document subject")
	fs.StringVar(&f.creator, "creator", "", "document creator")
	fs.StringArrayVar(&f.keywords, "keyword", nil, "document keyword")
	fs.StringVar(&f.header.Left, "header-left", "", "header left text")
	fs.StringVar(&f.header.Right, "header-right", "", "header right text")
	fs.StringVar(&f.footer.Left, "footer-left", "", "footer left text")
	fs.StringVar(&f.footer.Center, "footer-center", "", "footer center text")
	fs.StringVar(&f.footer.Right, "footer-right", "", "footer right text")
	fs.StringArrayVar(&f.css, "css", nil, "stylesheet file")
	fs.StringVarP(&f.output, "output", "o", "", "output file")
	fs.StringVarP(&f.dest, "dest", "d", "", "output destination")
	fs.StringVarP(&f.engine, "engine", "e", "chrome", "rendering engine")
	fs.StringVar(&f.chromePath, "chrome-path", "", "browser executable")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the browser sandbox")
	fs.BoolVar(&f.autoDL, "auto-download", false, "download a browser when none is found")
	fs.StringVar(&f.headless, "headless", "new", "value of the browser --headless switch; empty shows a window")
	fs.BoolVar(&f.base64, "base64", false, "print the PDF base64-encoded (implies --dest S)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 30*time.Second, "render timeout")
	fs.BoolVar(&f.strict, "strict", false, "fail on invalid settings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs, nil
}

// merge combines the configuration file with the flags set on the command
// line; flags win.
func (f *renderFlags) merge(fsys afero.Fs, set *flag.FlagSet) (*pdfdoc.Config, error) {
	cfg := &pdfdoc.Config{}
	if f.config != "" {
		loaded, err := pdfdoc.LoadConfig(fsys, f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	setString := func(dst *string, name, v string) {
		if set.Changed(name) {
			*dst = v
		}
	}
	setString(&cfg.Page.Size, "page-size", f.pageSize)
	setString(&cfg.Page.Orientation, "orientation", f.orientation)
	setString(&cfg.Font.Family, "font", f.font)
	setString(&cfg.Metadata.Title, "title", f.title)
	setString(&cfg.Metadata.Author, "author", f.author)
	setString(&cfg.Metadata.Subject, "subject", f.subject)
	setString(&cfg.Metadata.Creator, "creator", f.creator)
	setString(&cfg.Output.Destination, "dest", f.dest)

	margins := []**int{
		&cfg.Margins.Top, &cfg.Margins.Right, &cfg.Margins.Bottom,
		&cfg.Margins.Left, &cfg.Margins.Header, &cfg.Margins.Footer,
	}
	for i, m := range marginFlags {
		if set.Changed(m.name) {
			v := f.margins[i]
			*margins[i] = &v
		}
	}
	if set.Changed("font-size") {
		cfg.Font.Size = f.fontSize
	}
	cfg.Metadata.Keywords = append(cfg.Metadata.Keywords, f.keywords...)

	if f.output != "" {
		cfg.Output.Filename = f.output
		if !set.Changed("dest") {
			cfg.Output.Destination = string(pdfdoc.File)
		}
	}
	if f.base64 {
		cfg.Output.Destination = string(pdfdoc.String)
	}

	if f.header != (pdfdoc.Header{}) {
		cfg.Header = &f.header
	}
	if f.footer != (pdfdoc.Footer{}) {
		cfg.Footer = &f.footer
	}
	for _, path := range f.css {
		css, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading stylesheet: %w", err)
		}
		cfg.CSS = append(cfg.CSS, string(css))
	}
	return cfg, nil
}

func (f *renderFlags) engineFactory() (pdfdoc.EngineFactory, error) {
	var browser []pdfdoc.BrowserOption
	if f.chromePath != "" {
		browser = append(browser, pdfdoc.WithChromePath(f.chromePath))
	}
	if f.noSandbox {
		browser = append(browser, pdfdoc.WithNoSandbox())
	}
	if f.autoDL {
		browser = append(browser, pdfdoc.WithAutoDownload())
	}
	browser = append(browser, pdfdoc.WithHeadlessMode(f.headless), pdfdoc.WithTimeout(f.timeout))

	switch strings.ToLower(f.engine) {
	case "chrome", "chromedp":
		return pdfdoc.Chrome(browser...), nil
	case "rod":
		return pdfdoc.Rod(browser...), nil
	case "fpdf":
		return pdfdoc.FPDF(), nil
	case "wkhtmltopdf", "wkhtml":
		return pdfdoc.Wkhtmltopdf(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", f.engine)
	}
}

// runRender implements the "render" command.
func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	return render(args, afero.NewOsFs(), stdin, stdout, stderr)
}

func render(args []string, fsys afero.Fs, stdin io.Reader, stdout, stderr io.Writer) error {
	f, set, err := parseRenderFlags(args, stderr)
	if err != nil {
		return err
	}
	inputs := set.Args()
	if len(inputs) == 0 {
		return errors.New("no input file specified")
	}

	cfg, err := f.merge(fsys, set)
	if err != nil {
		return err
	}
	factory, err := f.engineFactory()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []pdfdoc.Option{
		pdfdoc.WithEngine(factory),
		pdfdoc.WithLogger(logger),
		pdfdoc.WithOutput(stdout),
		pdfdoc.WithFS(fsys),
	}
	if f.strict {
		opts = append(opts, pdfdoc.WithStrict())
	}

	doc := pdfdoc.New(opts...)
	defer doc.Close()
	cfg.Apply(doc)

	dest := doc.Destination()
	if dest != pdfdoc.File && !f.base64 && isTerminal(stdout) {
		return errTerminalOutput
	}

	doc.RegisterPageMargins()
	for _, in := range inputs {
		if err := appendInput(doc, fsys, stdin, in); err != nil {
			return err
		}
	}

	ctx := context.Background()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	res, err := doc.Render(ctx)
	if err != nil {
		return err
	}
	switch res.Destination() {
	case pdfdoc.File:
		logger.Info("wrote pdf", "file", res.Filename(), "bytes", res.Len())
	case pdfdoc.String:
		if f.base64 {
			_, err = fmt.Fprintln(stdout, res.Base64())
		} else {
			_, err = res.WriteTo(stdout)
		}
	}
	return err
}

func appendInput(doc *pdfdoc.Document, fsys afero.Fs, stdin io.Reader, path string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = afero.ReadFile(fsys, path)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		doc.AppendMarkdown(string(data))
	default:
		doc.AppendPageContent(string(data))
	}
	return doc.Err()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runFonts implements the "fonts" command.
func runFonts(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range pdfdoc.FontFamilies() {
		stack, _ := pdfdoc.FontStack(name)
		fmt.Fprintf(tw, "%s\t%s\n", name, stack)
	}
	tw.Flush()
}
