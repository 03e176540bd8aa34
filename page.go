package pdfdoc

import "strings"

// PageSize names one of the supported paper sizes.
type PageSize string

// Supported paper sizes.
const (
	Letter  PageSize = "Letter"
	Legal   PageSize = "Legal"
	A4      PageSize = "A4"
	Tabloid PageSize = "Tabloid"
)

// DefaultPageSize is used whenever a page size cannot be resolved.
const DefaultPageSize = Letter

// paperSize holds portrait paper dimensions in millimetres.
type paperSize struct {
	width  float64
	height float64
}

var paperSizes = map[PageSize]paperSize{
	Letter:  {width: 215.9, height: 279.4},
	Legal:   {width: 215.9, height: 355.6},
	A4:      {width: 210.0, height: 297.0},
	Tabloid: {width: 279.4, height: 431.8},
}

// PageSizes returns the supported paper sizes in display order.
func PageSizes() []PageSize {
	return []PageSize{Letter, Legal, A4, Tabloid}
}

// ParsePageSize resolves s case-insensitively to its canonical spelling.
// When s is not supported it returns [DefaultPageSize] and false.
func ParsePageSize(s string) (PageSize, bool) {
	s = strings.TrimSpace(s)
	for _, p := range PageSizes() {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return DefaultPageSize, false
}

// Valid reports whether p is one of the supported sizes.
func (p PageSize) Valid() bool {
	_, ok := paperSizes[p]
	return ok
}

// Dimensions returns the portrait width and height in millimetres.
// Unsupported sizes report the dimensions of [DefaultPageSize].
func (p PageSize) Dimensions() (width, height float64) {
	sz, ok := paperSizes[p]
	if !ok {
		sz = paperSizes[DefaultPageSize]
	}
	return sz.width, sz.height
}

// Orientation represents the page orientation.
type Orientation int

const (
	// Portrait is the default vertical orientation.
	Portrait Orientation = iota
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "Landscape"
	}
	return "Portrait"
}

// code returns the single-letter form used by page format strings.
func (o Orientation) code() string {
	if o == Landscape {
		return "L"
	}
	return "P"
}

// ParseOrientation accepts "portrait", "landscape" or their first letter in
// any case. Anything else yields Portrait and false.
func ParseOrientation(s string) (Orientation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait", "p":
		return Portrait, true
	case "landscape", "l":
		return Landscape, true
	}
	return Portrait, false
}

// PageFormat derives the page format token handed to engines:
// the bare size for portrait pages and "{size}-L" for landscape ones.
func PageFormat(size PageSize, o Orientation) string {
	if o == Landscape {
		return string(size) + "-L"
	}
	return string(size)
}

// mmToInches converts millimetres to inches.
func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// paperDimensions returns the paper width and height in inches,
// accounting for orientation.
func paperDimensions(size PageSize, o Orientation) (width, height float64) {
	w, h := size.Dimensions()
	if o == Landscape {
		return mmToInches(h), mmToInches(w)
	}
	return mmToInches(w), mmToInches(h)
}
