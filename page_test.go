package pdfdoc

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMmToInches(t *testing.T) {
	tests := []struct {
		mm   float64
		want float64
	}{
		{25.4, 1.0},
		{0, 0},
		{210.0, 8.2677},
		{297.0, 11.6929},
	}
	for _, tt := range tests {
		got := mmToInches(tt.mm)
		if !almostEqual(got, tt.want, 0.001) {
			t.Errorf("mmToInches(%v) = %v, want ~%v", tt.mm, got, tt.want)
		}
	}
}

func TestParsePageSize(t *testing.T) {
	tests := []struct {
		in     string
		want   PageSize
		wantOK bool
	}{
		{"Letter", Letter, true},
		{"letter", Letter, true},
		{"LEGAL", Legal, true},
		{"a4", A4, true},
		{" Tabloid ", Tabloid, true},
		{"A5", Letter, false},
		{"", Letter, false},
		{"Ledger", Letter, false},
	}
	for _, tt := range tests {
		got, ok := ParsePageSize(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePageSize(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPageSize_Valid(t *testing.T) {
	for _, p := range PageSizes() {
		if !p.Valid() {
			t.Errorf("%v.Valid() = false", p)
		}
	}
	if PageSize("letter").Valid() {
		t.Error(`PageSize("letter").Valid() = true, want false for non-canonical spelling`)
	}
}

func TestPageSize_DimensionsUnknown(t *testing.T) {
	w, h := PageSize("B5").Dimensions()
	lw, lh := Letter.Dimensions()
	if w != lw || h != lh {
		t.Errorf("unknown size dimensions = %v x %v, want Letter %v x %v", w, h, lw, lh)
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in     string
		want   Orientation
		wantOK bool
	}{
		{"Portrait", Portrait, true},
		{"portrait", Portrait, true},
		{"P", Portrait, true},
		{"Landscape", Landscape, true},
		{"LANDSCAPE", Landscape, true},
		{"l", Landscape, true},
		{"sideways", Portrait, false},
		{"", Portrait, false},
	}
	for _, tt := range tests {
		got, ok := ParseOrientation(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseOrientation(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPageFormat(t *testing.T) {
	tests := []struct {
		size PageSize
		o    Orientation
		want string
	}{
		{Letter, Portrait, "Letter"},
		{Letter, Landscape, "Letter-L"},
		{A4, Landscape, "A4-L"},
		{Tabloid, Portrait, "Tabloid"},
	}
	for _, tt := range tests {
		if got := PageFormat(tt.size, tt.o); got != tt.want {
			t.Errorf("PageFormat(%v, %v) = %q, want %q", tt.size, tt.o, got, tt.want)
		}
	}
}

func TestPaperDimensions_Portrait(t *testing.T) {
	w, h := paperDimensions(A4, Portrait)
	// A4 = 210 x 297 mm = 8.267 x 11.693 inches
	if !almostEqual(w, 8.267, 0.01) {
		t.Errorf("portrait width = %v, want ~8.267", w)
	}
	if !almostEqual(h, 11.693, 0.01) {
		t.Errorf("portrait height = %v, want ~11.693", h)
	}
}

func TestPaperDimensions_Landscape(t *testing.T) {
	w, h := paperDimensions(A4, Landscape)
	// Landscape swaps width and height.
	if !almostEqual(w, 11.693, 0.01) {
		t.Errorf("landscape width = %v, want ~11.693", w)
	}
	if !almostEqual(h, 8.267, 0.01) {
		t.Errorf("landscape height = %v, want ~8.267", h)
	}
}

func TestMarginInches(t *testing.T) {
	m := Margins{Top: 25, Right: 51, Bottom: 25, Left: 51}
	top, right, bottom, left := m.inches()
	if !almostEqual(top, 0.984, 0.001) {
		t.Errorf("top = %v, want ~0.984", top)
	}
	if !almostEqual(right, 2.008, 0.001) {
		t.Errorf("right = %v, want ~2.008", right)
	}
	if !almostEqual(bottom, 0.984, 0.001) {
		t.Errorf("bottom = %v, want ~0.984", bottom)
	}
	if !almostEqual(left, 2.008, 0.001) {
		t.Errorf("left = %v, want ~2.008", left)
	}
}

func TestDefaultMargins(t *testing.T) {
	want := Margins{Top: 11, Right: 15, Bottom: 14, Left: 11, Header: 5, Footer: 9}
	if got := DefaultMargins(); got != want {
		t.Errorf("DefaultMargins() = %+v, want %+v", got, want)
	}
}

func TestMargins_Get(t *testing.T) {
	m := DefaultMargins()
	if got := m.Get(MarginFooter); got != 9 {
		t.Errorf("Get(MarginFooter) = %d, want 9", got)
	}
	if got := m.Get(MarginSide(42)); got != 0 {
		t.Errorf("Get(unknown) = %d, want 0", got)
	}
}

func TestIntegerValue(t *testing.T) {
	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{10, 10, true},
		{int64(7), 7, true},
		{uint8(3), 3, true},
		{"25", 25, true},
		{" 4 ", 4, true},
		{"-3", -3, true},
		{"12mm", 0, false},
		{"1.5", 0, false},
		{1.5, 0, false},
		{nil, 0, false},
		{true, 0, false},
		{uint64(math.MaxUint64), 0, false},
	}
	for _, tt := range tests {
		got, ok := integerValue(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("integerValue(%#v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFontStack(t *testing.T) {
	stack, ok := FontStack("Georgia")
	if !ok || stack != "Georgia, Times, 'Times New Roman', serif" {
		t.Errorf("FontStack(Georgia) = %q, %v", stack, ok)
	}
	stack, ok = FontStack("comic-sans")
	if ok || stack != DefaultFontStack {
		t.Errorf("FontStack(comic-sans) = %q, %v; want default stack, false", stack, ok)
	}
}

func TestFontFamilies(t *testing.T) {
	names := FontFamilies()
	if len(names) != 18 {
		t.Fatalf("len(FontFamilies()) = %d, want 18", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("FontFamilies() not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}

func TestGenericFamily(t *testing.T) {
	tests := map[string]string{
		"times":   "serif",
		"courier": "monospace",
		"arial":   "sans-serif",
		"default": "sans-serif",
	}
	for name, want := range tests {
		stack, _ := FontStack(name)
		if got := genericFamily(stack); got != want {
			t.Errorf("genericFamily(%s) = %q, want %q", name, got, want)
		}
	}
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		in     string
		want   Destination
		wantOK bool
	}{
		{"I", Inline, true},
		{"inline", Inline, true},
		{"Download", Download, true},
		{"f", File, true},
		{"FILE", File, true},
		{"S", String, true},
		{"string", String, true},
		{"Browser", Inline, true},
		{"X", Inline, false},
		{"", Inline, false},
	}
	for _, tt := range tests {
		got, ok := ParseDestination(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseDestination(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
