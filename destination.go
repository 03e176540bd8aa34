package pdfdoc

import "strings"

// Destination selects what [Document.Render] does with the finished PDF.
type Destination string

// Output destinations.
const (
	// Inline streams the PDF to the output sink for in-place display.
	Inline Destination = "I"
	// Download streams the PDF to the output sink as an attachment.
	Download Destination = "D"
	// File writes the PDF to the document filename.
	File Destination = "F"
	// String only returns the PDF bytes.
	String Destination = "S"
)

// DefaultDestination is used whenever a destination cannot be resolved.
const DefaultDestination = Inline

// ParseDestination normalises s by its upper-cased first letter, so both
// "F" and "file" select [File]. The legacy browser alias "B" maps to
// [Inline]. Empty or unsupported input yields [DefaultDestination] and false.
func ParseDestination(s string) (Destination, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultDestination, false
	}
	switch d := Destination(strings.ToUpper(s[:1])); d {
	case "B":
		return Inline, true
	case Inline, Download, File, String:
		return d, true
	}
	return DefaultDestination, false
}

// Name returns the long name of d.
func (d Destination) Name() string {
	switch d {
	case Inline:
		return "Inline"
	case Download:
		return "Download"
	case File:
		return "File"
	case String:
		return "String"
	}
	return "Unknown"
}
