// pdfdoc renders HTML and Markdown files to PDF.
//
// Usage:
//
//	pdfdoc render [options] <file>...
//	pdfdoc fonts
//	pdfdoc version
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	// maxprocs.Set only fails on an invalid GOMAXPROCS value, in which case
	// the runtime default stays in place.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	switch os.Args[1] {
	case "render":
		if err := runRender(os.Args[2:], os.Stdin, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "fonts":
		runFonts(os.Stdout)
	case "version", "--version":
		fmt.Println("pdfdoc", Version)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `pdfdoc - render HTML and Markdown to PDF

Usage:
  pdfdoc render [options] <file>...
  pdfdoc fonts
  pdfdoc version

Commands:
  render    Render the input files, in order, into one PDF
  fonts     List the font families accepted by --font
  version   Print the version

Inputs ending in .md or .markdown are converted from Markdown; "-" reads
HTML from stdin.

Render options:
  -c, --config <file>        YAML configuration applied before the flags
  -p, --page-size <size>     Letter, Legal, A4 or Tabloid (default Letter)
      --orientation <o>      portrait or landscape
      --margin-top <mm>      and --margin-right, --margin-bottom,
                             --margin-left, --margin-header, --margin-footer
      --font <family>        body font family (see "pdfdoc fonts")
      --font-size <pt>       body font size
      --title, --author, --subject, --creator <text>
      --keyword <word>       repeatable
      --header-left, --header-right <text>
      --footer-left, --footer-center, --footer-right <text>
      --css <file>           stylesheet, repeatable
  -o, --output <file>        write to file (sets destination F)
  -d, --dest <I|D|F|S>       output destination (default I: stdout)
      --base64               print the PDF base64-encoded on stdout
  -e, --engine <name>        chrome, rod, fpdf or wkhtmltopdf (default chrome)
      --chrome-path <path>   browser executable
      --no-sandbox           disable the browser sandbox
      --auto-download        download a browser when none is found
      --headless <mode>      browser --headless value (default new; "" shows a window)
  -t, --timeout <duration>   render timeout (default 30s)
      --strict               fail on invalid settings instead of falling back
  -v, --verbose              log progress to stderr

Examples:
  pdfdoc render -o report.pdf report.md
  pdfdoc render -p A4 --orientation landscape -e fpdf page.html > page.pdf
  pdfdoc render -c house-style.yaml --title "Q3" -o q3.pdf q3.md
`)
}
