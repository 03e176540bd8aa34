// Package pdfdoc builds PDF documents through a fluent configuration facade
// that delegates rendering to a pluggable engine.
//
// A [Document] collects page setup, margins, fonts, metadata, header and
// footer text and the output destination, then hands everything to an
// [Engine] when content is written:
//
//	doc := pdfdoc.New(pdfdoc.WithOutput(w)).
//	    SetPageSizeA4().
//	    SetPageAsLandscape().
//	    SetMarginTop(20).
//	    SetFontType("georgia").
//	    SetMetaTitle("Quarterly report").
//	    SetFilename("q3.pdf").
//	    SetOutputDestination("Download")
//
//	doc.RegisterPageMargins().
//	    SetHeader(pdfdoc.Header{Left: "ACME|Finance", Right: pdfdoc.DateMacro}).
//	    SetFooter(pdfdoc.Footer{Right: pdfdoc.PageMacro}).
//	    AppendPageCSS("h1 { color: #224 }").
//	    AppendPageContent("<h1>Q3</h1><p>Revenue grew.</p>")
//
//	res, err := doc.Render(ctx)
//
// Setters never fail. Unsupported values fall back to a default (Letter,
// Portrait, the sans-serif font stack, the Inline destination) or, for
// margins and font sizes, leave the current value alone. With [WithStrict]
// the first invalid value is recorded instead and returned by
// [Document.Render].
//
// # Engines
//
// The engine is chosen with [WithEngine]:
//
//   - [Chrome] prints through headless Chrome using the DevTools protocol (default)
//   - [Rod] prints through a browser managed by go-rod
//   - [FPDF] draws basic HTML natively, without a browser
//   - [Wkhtmltopdf] runs the wkhtmltopdf binary
//
// The browser engines accept [BrowserOption] values such as
// [WithNoSandbox] and [WithAutoDownload].
//
// # Destinations
//
// Inline and Download write the PDF to the [WithOutput] writer, adding
// Content-Type and Content-Disposition headers when it is an
// [net/http.ResponseWriter]. File writes it to the filename on the
// [WithFS] filesystem. String only returns it in the [Result].
//
// Settings can also be loaded from YAML with [LoadConfig] and applied with
// [Config.Apply].
package pdfdoc
