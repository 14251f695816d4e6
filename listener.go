package xlgrid

// ShiftListener is notified after a structural edit moved a block of
// addresses. Implement this to rewrite formula references, named ranges or
// anything else that points into the sheet.
type ShiftListener interface {
	// RangeShiftedRows is called when addresses in and below r moved by delta rows.
	RangeShiftedRows(r Range, delta int)

	// RangeShiftedColumns is called when addresses in and right of r moved by delta columns.
	RangeShiftedColumns(r Range, delta int)
}

// ShiftFuncs adapts plain functions to ShiftListener. Nil fields are skipped.
type ShiftFuncs struct {
	Rows    func(r Range, delta int)
	Columns func(r Range, delta int)
}

func (f ShiftFuncs) RangeShiftedRows(r Range, delta int) {
	if f.Rows != nil {
		f.Rows(r, delta)
	}
}

func (f ShiftFuncs) RangeShiftedColumns(r Range, delta int) {
	if f.Columns != nil {
		f.Columns(r, delta)
	}
}
