package pdfdoc

import (
	"math"
	"strconv"
	"strings"
)

// MarginSide selects one of the six document margins.
type MarginSide int

// Margin sides.
const (
	MarginTop MarginSide = iota
	MarginRight
	MarginBottom
	MarginLeft
	MarginHeader
	MarginFooter
)

func (s MarginSide) String() string {
	switch s {
	case MarginTop:
		return "top"
	case MarginRight:
		return "right"
	case MarginBottom:
		return "bottom"
	case MarginLeft:
		return "left"
	case MarginHeader:
		return "header"
	case MarginFooter:
		return "footer"
	}
	return "side(" + strconv.Itoa(int(s)) + ")"
}

// Margins holds the body, header and footer margins in millimetres.
type Margins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
	Header int
	Footer int
}

// DefaultMargins returns the margins a new [Document] starts with.
func DefaultMargins() Margins {
	return Margins{
		Top:    11,
		Right:  15,
		Bottom: 14,
		Left:   11,
		Header: 5,
		Footer: 9,
	}
}

// field returns a pointer to the margin for side, or nil for an unknown side.
func (m *Margins) field(side MarginSide) *int {
	switch side {
	case MarginTop:
		return &m.Top
	case MarginRight:
		return &m.Right
	case MarginBottom:
		return &m.Bottom
	case MarginLeft:
		return &m.Left
	case MarginHeader:
		return &m.Header
	case MarginFooter:
		return &m.Footer
	}
	return nil
}

// Get returns the margin for side; unknown sides report 0.
func (m Margins) Get(side MarginSide) int {
	if p := m.field(side); p != nil {
		return *p
	}
	return 0
}

// inches returns the body margins converted to inches.
func (m Margins) inches() (top, right, bottom, left float64) {
	return mmToInches(float64(m.Top)),
		mmToInches(float64(m.Right)),
		mmToInches(float64(m.Bottom)),
		mmToInches(float64(m.Left))
}

// integerValue extracts an int from dynamically typed margin input.
// Only Go integer kinds and strings holding a base-10 integer qualify.
func integerValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case uint:
		if uint64(n) > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
