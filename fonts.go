package pdfdoc

import (
	"slices"
	"strings"
)

// DefaultFontStack is the sans-serif stack used for unknown font names.
const DefaultFontStack = "Arial, 'Helvetica Neue', Helvetica, sans-serif"

// DefaultFontFamily is the family a new [Document] starts with.
const DefaultFontFamily = "times"

var fontStacks = map[string]string{
	"arial":         "Arial, 'Helvetica Neue', Helvetica, sans-serif",
	"times":         "TimesNewRoman, 'Times New Roman', Times, Baskerville, Georgia, serif",
	"tahoma":        "Tahoma, Verdana, Segoe, Geneva, sans-serif",
	"georgia":       "Georgia, Times, 'Times New Roman', serif",
	"trebuchet":     "'Trebuchet MS', 'Lucida Grande', 'Lucida Sans Unicode', 'Lucida Sans', Helvetica, Tahoma, sans-serif",
	"courier":       "'Courier New', Courier, 'Lucida Sans Typewriter', 'Lucida Typewriter', monospace",
	"lucida":        "'Lucida Sans Typewriter', 'Lucida Console', monaco, 'Bitstream Vera Sans Mono', monospace",
	"lucida-bright": "'Lucida Bright', Georgia, serif",
	"palatino":      "'Palatino Linotype', 'Palatino LT STD', 'Book Antiqua', Palatino, Georgia, serif",
	"garamond":      "Garamond, Baskerville, 'Baskerville Old Face', 'Hoefler Text', 'Times New Roman', serif",
	"verdana":       "Verdana, Geneva, sans-serif",
	"console":       "'Lucida Console', 'Lucida Sans Typewriter', Monaco, 'Bitstream Vera Sans Mono', monospace",
	"monaco":        "'Lucida Console', 'Lucida Sans Typewriter', Monaco, 'Bitstream Vera Sans Mono', monospace",
	"helvetica":     "'HelveticaNeue-Light', 'Helvetica Neue Light', 'Helvetica Neue', Helvetica, Arial, 'Lucida Grande', sans-serif",
	"calibri":       "Calibri, Candara, Segoe, 'Segoe UI', Optima, Arial, sans-serif",
	"avant-garde":   "'Avant Garde', Avantgarde, 'Century Gothic', CenturyGothic, AppleGothic, sans-serif",
	"cambria":       "Cambria, Georgia, serif",
	"default":       DefaultFontStack,
}

// FontStack returns the CSS font stack registered for name, matched
// case-insensitively. Unknown names yield [DefaultFontStack] and false.
func FontStack(name string) (string, bool) {
	stack, ok := fontStacks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DefaultFontStack, false
	}
	return stack, true
}

// FontFamilies returns the registered family names, sorted.
func FontFamilies() []string {
	names := make([]string, 0, len(fontStacks))
	for name := range fontStacks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// genericFamily returns the trailing CSS generic family of a stack
// ("serif", "sans-serif" or "monospace").
func genericFamily(stack string) string {
	parts := strings.Split(stack, ",")
	last := strings.Trim(strings.TrimSpace(parts[len(parts)-1]), `'"`)
	switch strings.ToLower(last) {
	case "serif":
		return "serif"
	case "monospace":
		return "monospace"
	}
	return "sans-serif"
}
