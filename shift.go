package xlgrid

// ShiftDirection selects how the remaining cells close the gap left by Delete.
type ShiftDirection int

const (
	ShiftLeft ShiftDirection = iota // cells right of the range move left
	ShiftUp                         // cells below the range move up
)

func (d ShiftDirection) String() string {
	if d == ShiftUp {
		return "up"
	}
	return "left"
}

// relocation collects a structural edit before anything in the store moves.
// Removals are applied before insertions, then blanks are re-created.
type relocation struct {
	remove []Address
	insert []*Cell
	blank  []Address
}

func (p *relocation) apply(ws *Worksheet, blankStyle func(Address) *Style) {
	for _, addr := range p.remove {
		ws.cells.remove(addr)
	}
	for _, c := range p.insert {
		ws.cells.add(c)
	}
	for _, addr := range p.blank {
		c := ws.CellAt(addr)
		c.Style = blankStyle(addr)
	}
}

// InsertColumnsBefore inserts n blank columns in front of the range. Cells
// in the range's rows at or right of its first column move n columns right;
// cells pushed past the last sheet column are lost. With onlyUsedCells only
// stored cells move; otherwise every position of the range's rows from the
// range's first column to the last used column (or the range's last column,
// whichever is further) does, and every vacated position is re-created.
func (r Range) InsertColumnsBefore(n int, onlyUsedCells bool) {
	if n < 1 {
		return
	}
	ws := r.ws
	firstRow, lastRow := r.addr.First.Row, r.addr.Last.Row
	firstCol := r.addr.First.Col

	var plan relocation
	move := func(src *Cell) {
		plan.remove = append(plan.remove, src.Address)
		if dst := src.Address.Offset(0, n); dst.Col <= ws.maxColumns {
			plan.insert = append(plan.insert, src.relocated(dst))
		}
		if src.Address.Col < firstCol+n {
			plan.blank = append(plan.blank, src.Address)
		}
	}

	if onlyUsedCells {
		for _, c := range ws.cells.selectWhere(func(c *Cell) bool {
			return c.Address.Col >= firstCol && c.Address.Row >= firstRow && c.Address.Row <= lastRow
		}) {
			move(c)
		}
	} else {
		// Right to left, bottom to top, so no destination lands on a source
		// that has not been visited yet.
		_, usedCol := ws.cells.bounds()
		lastCol := max(usedCol, r.addr.Last.Col)
		for co := lastCol; co >= firstCol; co-- {
			for ro := lastRow; ro >= firstRow; ro-- {
				move(ws.sourceCell(NewAddress(ro, co)))
			}
		}
	}

	plan.apply(ws, func(addr Address) *Style {
		if s, ok := ws.rowOverride(addr.Row); ok {
			return s
		}
		return ws.style
	})
	ws.NotifyRangeShiftedColumns(r, n)
}

// InsertColumnsAfter inserts n blank columns right of the range.
func (r Range) InsertColumnsAfter(n int, onlyUsedCells bool) {
	ws := r.ws
	firstCol := min(r.addr.First.Col+r.ColumnCount(), ws.maxColumns)
	lastCol := min(firstCol+r.ColumnCount()-1, ws.maxColumns)
	lastRow := min(r.addr.First.Row+r.RowCount()-1, ws.maxRows)
	ws.RangeRC(r.addr.First.Row, firstCol, lastRow, lastCol).InsertColumnsBefore(n, onlyUsedCells)
}

// InsertRowsAbove inserts n blank rows above the range. Cells in the range's
// columns at or below its first row move n rows down.
func (r Range) InsertRowsAbove(n int, onlyUsedCells bool) {
	if n < 1 {
		return
	}
	ws := r.ws
	firstCol, lastCol := r.addr.First.Col, r.addr.Last.Col
	firstRow := r.addr.First.Row

	var plan relocation
	move := func(src *Cell) {
		plan.remove = append(plan.remove, src.Address)
		if dst := src.Address.Offset(n, 0); dst.Row <= ws.maxRows {
			plan.insert = append(plan.insert, src.relocated(dst))
		}
		if src.Address.Row < firstRow+n {
			plan.blank = append(plan.blank, src.Address)
		}
	}

	if onlyUsedCells {
		for _, c := range ws.cells.selectWhere(func(c *Cell) bool {
			return c.Address.Row >= firstRow && c.Address.Col >= firstCol && c.Address.Col <= lastCol
		}) {
			move(c)
		}
	} else {
		usedRow, _ := ws.cells.bounds()
		lastRow := max(usedRow, r.addr.Last.Row)
		for ro := lastRow; ro >= firstRow; ro-- {
			for co := lastCol; co >= firstCol; co-- {
				move(ws.sourceCell(NewAddress(ro, co)))
			}
		}
	}

	plan.apply(ws, func(addr Address) *Style {
		if s, ok := ws.columnOverride(addr.Col); ok {
			return s
		}
		return ws.style
	})
	ws.NotifyRangeShiftedRows(r, n)
}

// InsertRowsBelow inserts n blank rows below the range.
func (r Range) InsertRowsBelow(n int, onlyUsedCells bool) {
	ws := r.ws
	firstRow := min(r.addr.First.Row+r.RowCount(), ws.maxRows)
	lastRow := min(firstRow+r.RowCount()-1, ws.maxRows)
	lastCol := min(r.addr.First.Col+r.ColumnCount()-1, ws.maxColumns)
	ws.RangeRC(firstRow, r.addr.First.Col, lastRow, lastCol).InsertRowsAbove(n, onlyUsedCells)
}

// Delete removes the range's cells and closes the gap by shifting the cells
// right of it (ShiftLeft) or below it (ShiftUp).
func (r Range) Delete(dir ShiftDirection) {
	ws := r.ws
	first, last := r.addr.First, r.addr.Last

	var rowShift, colShift int
	var query func(*Cell) bool
	var beyond func(Address) bool
	if dir == ShiftUp {
		rowShift = r.RowCount()
		query = func(c *Cell) bool {
			return c.Address.Col >= first.Col && c.Address.Col <= last.Col && c.Address.Row >= first.Row
		}
		beyond = func(a Address) bool { return a.Row > last.Row }
	} else {
		colShift = r.ColumnCount()
		query = func(c *Cell) bool {
			return c.Address.Row >= first.Row && c.Address.Row <= last.Row && c.Address.Col >= first.Col
		}
		beyond = func(a Address) bool { return a.Col > last.Col }
	}

	var plan relocation
	for _, c := range ws.cells.selectWhere(query) {
		plan.remove = append(plan.remove, c.Address)
		if beyond(c.Address) {
			plan.insert = append(plan.insert, c.relocated(c.Address.Offset(-rowShift, -colShift)))
		}
	}
	plan.apply(ws, nil)

	shifted := r.AsRange()
	if dir == ShiftUp {
		ws.NotifyRangeShiftedRows(shifted, -rowShift)
	} else {
		ws.NotifyRangeShiftedColumns(shifted, -colShift)
	}
}

// sourceCell returns the stored cell at addr, or a transient empty one with
// the cascaded style that is never put in the store.
func (ws *Worksheet) sourceCell(addr Address) *Cell {
	if c, ok := ws.cells.get(addr); ok {
		return c
	}
	return newCell(addr, ws.resolveStyle(addr, Inherited()))
}
