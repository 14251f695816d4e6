package xlgrid

import (
	"fmt"
	"strings"
)

// RangeAddress is a rectangle defined by two corner addresses.
// First holds the minimal row and column, Last the maximal ones.
type RangeAddress struct {
	First Address
	Last  Address
}

// NewRangeAddress creates a RangeAddress from any two opposite corners.
func NewRangeAddress(a, b Address) RangeAddress {
	return RangeAddress{
		First: Address{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)},
		Last:  Address{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)},
	}
}

// NewRangeAddressRC creates a RangeAddress from 1-based corner coordinates.
func NewRangeAddressRC(firstRow, firstCol, lastRow, lastCol int) RangeAddress {
	return NewRangeAddress(NewAddress(firstRow, firstCol), NewAddress(lastRow, lastCol))
}

// ParseRangeAddress parses "A1:C5" or a single cell "B2" (a 1x1 range).
func ParseRangeAddress(s string) (RangeAddress, error) {
	s = strings.TrimSpace(s)
	first, last, found := strings.Cut(s, ":")
	if !found {
		last = first
	}
	a, err := ParseAddress(first)
	if err != nil {
		return RangeAddress{}, fmt.Errorf("parse range %q: %w", s, err)
	}
	b, err := ParseAddress(last)
	if err != nil {
		return RangeAddress{}, fmt.Errorf("parse range %q: %w", s, err)
	}
	return NewRangeAddress(a, b), nil
}

// MustParseRangeAddress is like ParseRangeAddress but panics on error.
func MustParseRangeAddress(s string) RangeAddress {
	ra, err := ParseRangeAddress(s)
	if err != nil {
		panic(err)
	}
	return ra
}

// String formats the range as "A1:C5". This is also the merge key.
func (r RangeAddress) String() string {
	return r.First.String() + ":" + r.Last.String()
}

// RowCount returns the number of rows spanned.
func (r RangeAddress) RowCount() int {
	return r.Last.Row - r.First.Row + 1
}

// ColumnCount returns the number of columns spanned.
func (r RangeAddress) ColumnCount() int {
	return r.Last.Col - r.First.Col + 1
}

// Size returns the dimensions of the range.
func (r RangeAddress) Size() Size {
	return Size{Width: r.ColumnCount(), Height: r.RowCount()}
}

// Contains reports whether addr lies inside the rectangle, bounds inclusive.
func (r RangeAddress) Contains(addr Address) bool {
	return addr.Row >= r.First.Row && addr.Row <= r.Last.Row &&
		addr.Col >= r.First.Col && addr.Col <= r.Last.Col
}

// ContainsRange reports whether o lies entirely inside r.
func (r RangeAddress) ContainsRange(o RangeAddress) bool {
	return r.Contains(o.First) && r.Contains(o.Last)
}

// Intersects reports whether the two rectangles share at least one cell.
func (r RangeAddress) Intersects(o RangeAddress) bool {
	return !(o.First.Col > r.Last.Col ||
		o.Last.Col < r.First.Col ||
		o.First.Row > r.Last.Row ||
		o.Last.Row < r.First.Row)
}

// Offset moves both corners by the given deltas.
func (r RangeAddress) Offset(rows, cols int) RangeAddress {
	return RangeAddress{First: r.First.Offset(rows, cols), Last: r.Last.Offset(rows, cols)}
}

// Size represents width (columns) and height (rows).
type Size struct {
	Width  int
	Height int
}

// String formats the Size as "(WxH)".
func (s Size) String() string {
	return fmt.Sprintf("(%dx%d)", s.Width, s.Height)
}
