package xlgrid

import (
	"iter"
	"strings"
)

// Range is a rectangular view into a worksheet. It owns no cells; every
// read and write goes to the worksheet it is bound to.
type Range struct {
	ws    *Worksheet
	addr  RangeAddress
	style StyleRef
}

// Worksheet returns the sheet this range is bound to.
func (r Range) Worksheet() *Worksheet { return r.ws }

// Address returns the absolute bounds of the range.
func (r Range) Address() RangeAddress { return r.addr }

func (r Range) RowCount() int    { return r.addr.RowCount() }
func (r Range) ColumnCount() int { return r.addr.ColumnCount() }

// String formats the range as "first:last".
func (r Range) String() string { return r.addr.String() }

// Style returns the range's own style setting. Ranges taken from the sheet
// are Inherited; ranges from Row or Column carry that row's or column's setting.
func (r Range) Style() StyleRef { return r.style }

// AsRange rebinds the same bounds through the worksheet, dropping any
// inherited style setting.
func (r Range) AsRange() Range {
	return r.ws.Range(r.addr.First, r.addr.Last)
}

// FirstCell returns the top-left cell, materializing it if needed.
func (r Range) FirstCell() *Cell {
	return r.Cell(1, 1)
}

// LastCell returns the bottom-right cell, materializing it if needed.
func (r Range) LastCell() *Cell {
	return r.Cell(r.RowCount(), r.ColumnCount())
}

// Cell returns the cell at a 1-based position relative to the range.
// A cell that does not exist yet is created with the cascaded style and
// stored, so reading an empty position has a side effect. Use Peek to avoid it.
func (r Range) Cell(row, col int) *Cell {
	return r.CellAt(NewAddress(row, col))
}

// CellAt is Cell for a relative Address.
func (r Range) CellAt(rel Address) *Cell {
	abs := rel.Translate(r.addr.First)
	if c, ok := r.ws.cells.get(abs); ok {
		return c
	}
	c := newCell(abs, r.ws.resolveStyle(abs, r.style))
	r.ws.cells.add(c)
	return c
}

// CellByName returns the cell at a relative A1-style position, so "A1" is
// the range's first cell.
func (r Range) CellByName(name string) (*Cell, error) {
	rel, err := ParseAddress(name)
	if err != nil {
		return nil, err
	}
	return r.CellAt(rel), nil
}

// Peek returns the stored cell at a relative position without creating one.
func (r Range) Peek(row, col int) (*Cell, bool) {
	return r.ws.cells.get(NewAddress(row, col).Translate(r.addr.First))
}

// Range returns a sub-range given in coordinates relative to r.
// It fails with ErrOutOfBounds if the translated bounds leave r.
func (r Range) Range(sub RangeAddress) (Range, error) {
	first := sub.First.Translate(r.addr.First)
	last := sub.Last.Translate(r.addr.First)
	target := RangeAddress{First: first, Last: last}
	if first.Row < r.addr.First.Row ||
		first.Row > r.addr.Last.Row ||
		last.Row > r.addr.Last.Row ||
		first.Col < r.addr.First.Col ||
		first.Col > r.addr.Last.Col ||
		last.Col > r.addr.Last.Col {
		return Range{}, &RangeError{Op: "range", Range: r.addr, Target: target, Err: ErrOutOfBounds}
	}
	return Range{ws: r.ws, addr: target, style: r.style}, nil
}

// RangeRC is Range for 1-based relative corner coordinates.
func (r Range) RangeRC(firstRow, firstCol, lastRow, lastCol int) (Range, error) {
	return r.Range(NewRangeAddressRC(firstRow, firstCol, lastRow, lastCol))
}

// RangeByName is Range for a relative A1-style range like "A1:B2".
func (r Range) RangeByName(s string) (Range, error) {
	sub, err := ParseRangeAddress(s)
	if err != nil {
		return Range{}, err
	}
	return r.Range(sub)
}

// Ranges resolves a comma-separated list like "A1:B2,D4".
func (r Range) Ranges(list string) ([]Range, error) {
	var result []Range
	for _, part := range strings.Split(list, ",") {
		sub, err := r.RangeByName(part)
		if err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, nil
}

// Contains reports whether an absolute address lies inside the range.
func (r Range) Contains(addr Address) bool {
	return r.addr.Contains(addr)
}

// ContainsRange reports whether ra lies entirely inside the range.
func (r Range) ContainsRange(ra RangeAddress) bool {
	return r.addr.ContainsRange(ra)
}

// Intersects reports whether ra shares at least one cell with the range.
func (r Range) Intersects(ra RangeAddress) bool {
	return r.addr.Intersects(ra)
}

// Cells yields every cell of the range row by row, materializing as it goes.
func (r Range) Cells() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for row := 1; row <= r.RowCount(); row++ {
			for col := 1; col <= r.ColumnCount(); col++ {
				if !yield(r.Cell(row, col)) {
					return
				}
			}
		}
	}
}

// CellsUsed returns the stored cells inside the range in address order.
func (r Range) CellsUsed() []*Cell {
	return r.ws.cells.selectWhere(func(c *Cell) bool {
		return r.addr.Contains(c.Address)
	})
}

// FirstCellUsed returns the lowest stored cell in address order, or nil.
// With ignoreStyle, cells whose text is empty do not count as used.
func (r Range) FirstCellUsed(ignoreStyle bool) *Cell {
	used := r.usedCells(ignoreStyle)
	if len(used) == 0 {
		return nil
	}
	return used[0]
}

// LastCellUsed returns the highest stored cell in address order, or nil.
func (r Range) LastCellUsed(ignoreStyle bool) *Cell {
	used := r.usedCells(ignoreStyle)
	if len(used) == 0 {
		return nil
	}
	return used[len(used)-1]
}

func (r Range) usedCells(ignoreStyle bool) []*Cell {
	return r.ws.cells.selectWhere(func(c *Cell) bool {
		if !r.addr.Contains(c.Address) {
			return false
		}
		return !ignoreStyle || c.GetString() != ""
	})
}

// Merge marks the range as a merged region. Merging twice is a no-op.
func (r Range) Merge() {
	r.ws.merges.Add(r.addr)
}

// Unmerge removes the merged region with exactly these bounds, if any.
func (r Range) Unmerge() {
	r.ws.merges.Remove(r.addr)
}

// IsMerged reports whether exactly this range is merged.
func (r Range) IsMerged() bool {
	return r.ws.merges.Contains(r.addr)
}

// Clear removes every stored cell inside the range and every merged region
// that intersects it.
func (r Range) Clear() {
	r.ws.cells.removeWhere(func(c *Cell) bool {
		return r.addr.Contains(c.Address)
	})
	r.ws.merges.RemoveIntersecting(r.addr)
}

// SetStyle applies s to every cell of the range.
func (r Range) SetStyle(s *Style) {
	for c := range r.Cells() {
		c.Style = s
	}
}

// Styles yields the style of every cell, row by row.
func (r Range) Styles() iter.Seq[*Style] {
	return func(yield func(*Style) bool) {
		for c := range r.Cells() {
			if !yield(c.Style) {
				return
			}
		}
	}
}

// SetValue stores v in every cell of the range.
func (r Range) SetValue(v any) {
	for c := range r.Cells() {
		c.SetValue(v)
	}
}

// SetFormulaA1 sets the same A1-style formula text on every cell.
func (r Range) SetFormulaA1(formula string) {
	for c := range r.Cells() {
		c.SetFormulaA1(formula)
	}
}

// SetFormulaR1C1 sets the same R1C1-style formula text on every cell.
func (r Range) SetFormulaR1C1(formula string) {
	for c := range r.Cells() {
		c.SetFormulaR1C1(formula)
	}
}
