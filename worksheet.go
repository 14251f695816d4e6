package xlgrid

import "fmt"

// Worksheet owns the cells, the row and column style tables and the merged
// regions of one sheet. Every Range is a view resolved through it.
//
// A Worksheet is not safe for concurrent use; structural edits must be
// serialized by the caller.
type Worksheet struct {
	name       string
	maxRows    int
	maxColumns int
	style      *Style

	cells     *store
	rowStyles map[int]StyleRef
	colStyles map[int]StyleRef
	merges    *MergeSet
	listeners []ShiftListener
}

// NewWorksheet creates an empty worksheet.
func NewWorksheet(name string, opts ...Option) *Worksheet {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	style := o.defaultStyle
	if style == nil {
		style = &Style{Name: "Normal"}
	}
	return &Worksheet{
		name:       name,
		maxRows:    o.maxRows,
		maxColumns: o.maxColumns,
		style:      style,
		cells:      newStore(),
		rowStyles:  make(map[int]StyleRef),
		colStyles:  make(map[int]StyleRef),
		merges:     newMergeSet(),
		listeners:  o.shiftListeners,
	}
}

func (ws *Worksheet) Name() string    { return ws.name }
func (ws *Worksheet) MaxRows() int    { return ws.maxRows }
func (ws *Worksheet) MaxColumns() int { return ws.maxColumns }

// Style returns the sheet default style.
func (ws *Worksheet) Style() *Style { return ws.style }

// Range returns a view over the rectangle spanned by a and b, clamped to the
// sheet limits.
func (ws *Worksheet) Range(a, b Address) Range {
	return ws.rangeOf(NewRangeAddress(a, b), Inherited())
}

// RangeRC returns a view over 1-based corner coordinates.
func (ws *Worksheet) RangeRC(firstRow, firstCol, lastRow, lastCol int) Range {
	return ws.Range(NewAddress(firstRow, firstCol), NewAddress(lastRow, lastCol))
}

// RangeByName returns a view over an A1-style range like "B2:D5".
func (ws *Worksheet) RangeByName(s string) (Range, error) {
	ra, err := ParseRangeAddress(s)
	if err != nil {
		return Range{}, err
	}
	return ws.Range(ra.First, ra.Last), nil
}

// AsRange returns a view over the whole sheet.
func (ws *Worksheet) AsRange() Range {
	return ws.RangeRC(1, 1, ws.maxRows, ws.maxColumns)
}

// Row returns a full-width view of row n carrying the row's style setting.
func (ws *Worksheet) Row(n int) Range {
	return ws.rangeOf(NewRangeAddressRC(n, 1, n, ws.maxColumns), ws.RowStyle(n))
}

// Column returns a full-height view of column n carrying the column's style setting.
func (ws *Worksheet) Column(n int) Range {
	return ws.rangeOf(NewRangeAddressRC(1, n, ws.maxRows, n), ws.ColumnStyle(n))
}

func (ws *Worksheet) rangeOf(ra RangeAddress, style StyleRef) Range {
	ra = RangeAddress{
		First: ra.First.Clamp(ws.maxRows, ws.maxColumns),
		Last:  ra.Last.Clamp(ws.maxRows, ws.maxColumns),
	}
	return Range{ws: ws, addr: ra, style: style}
}

// Cell returns the cell at an absolute position, materializing it if needed.
func (ws *Worksheet) Cell(row, col int) *Cell {
	return ws.CellAt(NewAddress(row, col))
}

// CellAt is Cell for an Address.
func (ws *Worksheet) CellAt(addr Address) *Cell {
	return ws.AsRange().CellAt(addr)
}

// CellByName returns the cell at an A1-style reference, materializing it if needed.
func (ws *Worksheet) CellByName(name string) (*Cell, error) {
	addr, err := ParseAddress(name)
	if err != nil {
		return nil, err
	}
	if !addr.IsValid(ws.maxRows, ws.maxColumns) {
		return nil, fmt.Errorf("cell %s: %w", addr, ErrOutOfBounds)
	}
	return ws.CellAt(addr), nil
}

// Peek returns the stored cell at an absolute position without creating one.
func (ws *Worksheet) Peek(row, col int) (*Cell, bool) {
	return ws.cells.get(NewAddress(row, col))
}

// CellCount returns the number of stored cells.
func (ws *Worksheet) CellCount() int {
	return ws.cells.len()
}

// LastRowUsed returns the highest row holding a stored cell, 0 when empty.
func (ws *Worksheet) LastRowUsed() int {
	row, _ := ws.cells.bounds()
	return row
}

// LastColumnUsed returns the highest column holding a stored cell, 0 when empty.
func (ws *Worksheet) LastColumnUsed() int {
	_, col := ws.cells.bounds()
	return col
}

// SetRowStyle overrides the style of row n for cells created later.
func (ws *Worksheet) SetRowStyle(n int, s *Style) {
	ws.rowStyles[n] = Overridden(s)
}

// ClearRowStyle makes row n inherit the sheet style again.
func (ws *Worksheet) ClearRowStyle(n int) {
	delete(ws.rowStyles, n)
}

// RowStyle returns the style setting of row n.
func (ws *Worksheet) RowStyle(n int) StyleRef {
	return ws.rowStyles[n]
}

// SetColumnStyle overrides the style of column n for cells created later.
func (ws *Worksheet) SetColumnStyle(n int, s *Style) {
	ws.colStyles[n] = Overridden(s)
}

// ClearColumnStyle makes column n inherit the sheet style again.
func (ws *Worksheet) ClearColumnStyle(n int) {
	delete(ws.colStyles, n)
}

// ColumnStyle returns the style setting of column n.
func (ws *Worksheet) ColumnStyle(n int) StyleRef {
	return ws.colStyles[n]
}

// rowOverride returns the style of row n when it differs from the sheet style.
func (ws *Worksheet) rowOverride(n int) (*Style, bool) {
	s := ws.rowStyles[n].Style()
	return s, s != nil && s != ws.style
}

// columnOverride returns the style of column n when it differs from the sheet style.
func (ws *Worksheet) columnOverride(n int) (*Style, bool) {
	s := ws.colStyles[n].Style()
	return s, s != nil && s != ws.style
}

// resolveStyle applies the cascade for a new cell at addr created through a
// range with style setting ref: range, then row, then column, then sheet.
func (ws *Worksheet) resolveStyle(addr Address, ref StyleRef) *Style {
	if s := ref.Style(); s != nil && s != ws.style {
		return s
	}
	if s, ok := ws.rowOverride(addr.Row); ok {
		return s
	}
	if s, ok := ws.columnOverride(addr.Col); ok {
		return s
	}
	return ws.style
}

// Merges returns the merge set of the sheet.
func (ws *Worksheet) Merges() *MergeSet {
	return ws.merges
}

// MergedRanges lists merged regions sorted by address.
func (ws *Worksheet) MergedRanges() []RangeAddress {
	return ws.merges.Ranges()
}

// IsMerged reports whether exactly ra is merged.
func (ws *Worksheet) IsMerged(ra RangeAddress) bool {
	return ws.merges.Contains(ra)
}

// AddShiftListener registers l for structural edit notifications.
func (ws *Worksheet) AddShiftListener(l ShiftListener) {
	ws.listeners = append(ws.listeners, l)
}

// NotifyRangeShiftedRows tells the sheet that addresses in and below r moved
// by delta rows. Merged regions follow first, then listeners run in order.
func (ws *Worksheet) NotifyRangeShiftedRows(r Range, delta int) {
	ws.merges.shiftRows(r.addr, delta, ws.maxRows)
	for _, l := range ws.listeners {
		l.RangeShiftedRows(r, delta)
	}
}

// NotifyRangeShiftedColumns tells the sheet that addresses in and right of r
// moved by delta columns.
func (ws *Worksheet) NotifyRangeShiftedColumns(r Range, delta int) {
	ws.merges.shiftColumns(r.addr, delta, ws.maxColumns)
	for _, l := range ws.listeners {
		l.RangeShiftedColumns(r, delta)
	}
}
