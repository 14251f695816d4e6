package xlgrid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Address is a 1-based (row, column) coordinate within a sheet.
// Arithmetic never fails; callers clamp before storing.
type Address struct {
	Row int
	Col int
}

// NewAddress creates an Address from 1-based row and column numbers.
func NewAddress(row, col int) Address {
	return Address{Row: row, Col: col}
}

// ParseAddress parses an A1-style reference like "B3" or "$B$3".
func ParseAddress(s string) (Address, error) {
	name := strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	if name == "" {
		return Address{}, fmt.Errorf("%w: empty cell reference", ErrInvalidAddress)
	}
	col, row, err := excelize.CellNameToCoordinates(name)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	return Address{Row: row, Col: col}, nil
}

// MustParseAddress is like ParseAddress but panics on error.
// Intended for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String formats the address as "B3". Out-of-range coordinates are
// formatted as "R<row>C<col>" so String never fails.
func (a Address) String() string {
	if a.Row < 1 || a.Col < 1 {
		return "R" + strconv.Itoa(a.Row) + "C" + strconv.Itoa(a.Col)
	}
	return ColToName(a.Col) + strconv.Itoa(a.Row)
}

// Add returns the coordinate-wise sum of two addresses.
func (a Address) Add(o Address) Address {
	return Address{Row: a.Row + o.Row, Col: a.Col + o.Col}
}

// Minus subtracts n from both coordinates. Minus(1) turns a 1-based
// relative address into a translation vector.
func (a Address) Minus(n int) Address {
	return Address{Row: a.Row - n, Col: a.Col - n}
}

// Translate maps a 1-based address relative to origin into an absolute one:
// a + origin - 1.
func (a Address) Translate(origin Address) Address {
	return a.Add(origin).Minus(1)
}

// Offset moves the address by the given row and column deltas.
func (a Address) Offset(rows, cols int) Address {
	return Address{Row: a.Row + rows, Col: a.Col + cols}
}

// Compare orders addresses row-major: -1, 0 or +1.
func (a Address) Compare(o Address) int {
	switch {
	case a.Row < o.Row:
		return -1
	case a.Row > o.Row:
		return 1
	case a.Col < o.Col:
		return -1
	case a.Col > o.Col:
		return 1
	}
	return 0
}

func (a Address) Less(o Address) bool           { return a.Compare(o) < 0 }
func (a Address) LessOrEqual(o Address) bool    { return a.Compare(o) <= 0 }
func (a Address) Greater(o Address) bool        { return a.Compare(o) > 0 }
func (a Address) GreaterOrEqual(o Address) bool { return a.Compare(o) >= 0 }
func (a Address) Equal(o Address) bool          { return a == o }

// Clamp limits each axis independently to [1, max].
func (a Address) Clamp(maxRows, maxCols int) Address {
	return Address{Row: clamp(a.Row, maxRows), Col: clamp(a.Col, maxCols)}
}

// IsValid reports whether both coordinates lie in [1, max].
func (a Address) IsValid(maxRows, maxCols int) bool {
	return a.Row >= 1 && a.Row <= maxRows && a.Col >= 1 && a.Col <= maxCols
}

func clamp(v, max int) int {
	if v < 1 {
		return 1
	}
	if v > max {
		return max
	}
	return v
}

// ColToName converts a 1-based column number to a column name.
// 1→"A", 26→"Z", 27→"AA", 703→"AAA"
func ColToName(col int) string {
	result := ""
	for col > 0 {
		col-- // adjust for 0-indexed letter
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 1-based column number.
// "A"→1, "Z"→26, "AA"→27
func NameToCol(name string) (int, error) {
	col, err := excelize.ColumnNameToNumber(strings.ToUpper(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return col, nil
}
