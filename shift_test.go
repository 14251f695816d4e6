package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shiftEvent struct {
	axis  string
	rng   string
	delta int
}

// recordShifts registers a listener on ws and returns the events it saw.
func recordShifts(ws *Worksheet) *[]shiftEvent {
	events := &[]shiftEvent{}
	ws.AddShiftListener(ShiftFuncs{
		Rows: func(r Range, delta int) {
			*events = append(*events, shiftEvent{"rows", r.String(), delta})
		},
		Columns: func(r Range, delta int) {
			*events = append(*events, shiftEvent{"columns", r.String(), delta})
		},
	})
	return events
}

func setValues(t *testing.T, ws *Worksheet, values map[string]any) {
	t.Helper()
	for name, v := range values {
		c, err := ws.CellByName(name)
		require.NoError(t, err)
		c.SetValue(v)
	}
}

// valuesOf returns the non-empty values of ws keyed by cell name.
func valuesOf(ws *Worksheet) map[string]any {
	out := make(map[string]any)
	for _, c := range ws.AsRange().CellsUsed() {
		if c.Value != nil {
			out[c.Address.String()] = c.Value
		}
	}
	return out
}

func mustRange(t *testing.T, ws *Worksheet, s string) Range {
	t.Helper()
	r, err := ws.RangeByName(s)
	require.NoError(t, err)
	return r
}

func TestInsertColumnsBefore_EmptyRangeNextToData(t *testing.T) {
	ws := newTestSheet()
	setValues(t, ws, map[string]any{"A1": "X"})

	mustRange(t, ws, "B1:B1").InsertColumnsBefore(1, false)

	c1, ok := ws.Peek(1, 3)
	require.True(t, ok, "B1 relocated to C1")
	assert.Nil(t, c1.Value)

	b1, ok := ws.Peek(1, 2)
	require.True(t, ok, "B1 is blanked")
	assert.Nil(t, b1.Value)
	assert.Same(t, ws.Style(), b1.Style)

	a1, ok := ws.Peek(1, 1)
	require.True(t, ok)
	assert.Equal(t, "X", a1.Value)
}

func TestInsertColumnsBefore_MovesRowSpanOnly(t *testing.T) {
	ws := newTestSheet()
	setValues(t, ws, map[string]any{"A1": "a", "B1": "b", "C1": "c", "D2": "d"})

	mustRange(t, ws, "B1:B1").InsertColumnsBefore(2, false)

	assert.Equal(t, map[string]any{"A1": "a", "D1": "b", "E1": "c", "D2": "d"}, valuesOf(ws))
}

func TestInsertColumnsBefore_VacatedBandStyle(t *testing.T) {
	ws := newTestSheet()
	rowStyle := NewStyle("row")
	colStyle := NewStyle("col")
	ws.SetRowStyle(1, rowStyle)
	ws.SetColumnStyle(2, colStyle)
	setValues(t, ws, map[string]any{"B1": "b", "B2": "b2", "C2": "c2"})

	mustRange(t, ws, "B1:B2").InsertColumnsBefore(2, false)

	for _, name := range []string{"B1", "C1"} {
		c, ok := ws.Peek(1, MustParseAddress(name).Col)
		require.True(t, ok, name)
		assert.Nil(t, c.Value, name)
		assert.Same(t, rowStyle, c.Style, "%s takes the row override", name)
	}
	for _, col := range []int{2, 3} {
		c, ok := ws.Peek(2, col)
		require.True(t, ok)
		assert.Nil(t, c.Value)
		assert.Same(t, ws.Style(), c.Style, "no row override: sheet style, column is not consulted")
	}
	assert.Equal(t, map[string]any{"D1": "b", "D2": "b2", "E2": "c2"}, valuesOf(ws))
}

func TestInsertColumnsBefore_RangeTallerThanUsedArea(t *testing.T) {
	ws := newTestSheet()
	colStyle := NewStyle("colB")
	ws.SetColumnStyle(2, colStyle)
	setValues(t, ws, map[string]any{"A1": "X"})

	ws.RangeRC(1, 2, 10, 2).InsertColumnsBefore(1, false)

	for row := 1; row <= 10; row++ {
		blank, ok := ws.Peek(row, 2)
		require.True(t, ok, "B%d is blanked", row)
		assert.Same(t, ws.Style(), blank.Style, "B%d", row)

		moved, ok := ws.Peek(row, 3)
		require.True(t, ok, "C%d is written", row)
		assert.Same(t, colStyle, moved.Style, "C%d carries the cascaded source style", row)
	}
	_, ok := ws.Peek(11, 2)
	assert.False(t, ok)
}

func TestInsertColumnsBefore_KeepsStyleAndFormula(t *testing.T) {
	ws := newTestSheet()
	bold := NewStyle("bold")
	c := ws.Cell(3, 2)
	c.SetValue(10)
	c.SetFormulaA1("A3*2")
	c.Style = bold

	mustRange(t, ws, "B3:B3").InsertColumnsBefore(1, true)

	moved, ok := ws.Peek(3, 3)
	require.True(t, ok)
	assert.Equal(t, 10, moved.Value)
	assert.Equal(t, CellNumber, moved.Type)
	assert.Equal(t, "A3*2", moved.FormulaA1())
	assert.Same(t, bold, moved.Style)
	assert.Equal(t, NewAddress(3, 3), moved.Address)
}

func TestInsertColumnsBefore_OnlyUsedCellsDoesNotMaterialize(t *testing.T) {
	ws := newTestSheet()
	setValues(t, ws, map[string]any{"B2": "b", "E2": "e", "E3": "below"})

	mustRange(t, ws, "B2:B2").InsertColumnsBefore(1, true)

	assert.Equal(t, map[string]any{"C2": "b", "F2": "e", "E3": "below"}, valuesOf(ws))
	assert.Equal(t, 4, ws.CellCount(), "moved cells plus the blanked B2")
	_, ok := ws.Peek(2, 2)
	assert.True(t, ok)
}

func TestInsertColumnsBefore_OverflowIsTruncated(t *testing.T) {
	ws := newTestSheet() // 26 columns
	setValues(t, ws, map[string]any{"Y1": "y", "Z1": "z"})

	mustRange(t, ws, "A1:A1").InsertColumnsBefore(1, true)

	assert.Equal(t, map[string]any{"Z1": "y"}, valuesOf(ws))
	assert.Equal(t, 1, ws.CellCount())
}

func TestInsertColumnsBefore_ZeroIsNoOp(t *testing.T) {
	ws := newTestSheet()
	events := recordShifts(ws)
	setValues(t, ws, map[string]any{"B1": "b"})

	mustRange(t, ws, "B1:B1").InsertColumnsBefore(0, false)

	assert.Equal(t, map[string]any{"B1": "b"}, valuesOf(ws))
	assert.Empty(t, *events)
}

func TestInsertColumnsBefore_Notifies(t *testing.T) {
	ws := newTestSheet()
	events := recordShifts(ws)

	mustRange(t, ws, "C2:D5").InsertColumnsBefore(3, true)

	assert.Equal(t, []shiftEvent{{"columns", "C2:D5", 3}}, *events)
}

func TestInsertColumnsAfter(t *testing.T) {
	ws := newTestSheet()
	events := recordShifts(ws)
	setValues(t, ws, map[string]any{"B1": "b", "C1": "c", "D1": "d", "F1": "f"})

	mustRange(t, ws, "B1:C1").InsertColumnsAfter(2, false)

	assert.Equal(t, map[string]any{"B1": "b", "C1": "c", "F1": "d", "H1": "f"}, valuesOf(ws))
	assert.Equal(t, []shiftEvent{{"columns", "D1:E1", 2}}, *events)
}

func TestInsertColumnsAfter_ClampsAtSheetEdge(t *testing.T) {
	ws := newTestSheet() // 26 columns
	setValues(t, ws, map[string]any{"Y1": "y", "Z1": "z"})

	mustRange(t, ws, "Y1:Z1").InsertColumnsAfter(1, false)

	assert.Equal(t, map[string]any{"Y1": "y"}, valuesOf(ws), "Z1 pushed past the edge")
	_, ok := ws.Peek(1, 26)
	assert.True(t, ok, "Z1 is blanked")
}

func TestInsertColumns_RoundTrip(t *testing.T) {
	for _, usedOnly := range []bool{false, true} {
		ws := newTestSheet()
		original := map[string]any{"A1": "a", "B1": "b", "C1": "c", "E1": "e", "B2": "x", "C3": "y"}
		setValues(t, ws, original)

		mustRange(t, ws, "B1:B3").InsertColumnsBefore(2, usedOnly)
		mustRange(t, ws, "B1:C3").Delete(ShiftLeft)

		assert.Equal(t, original, valuesOf(ws), "usedOnly=%v", usedOnly)
		if usedOnly {
			assert.Equal(t, len(original), ws.CellCount())
		}
	}
}

func TestInsertRowsAbove(t *testing.T) {
	ws := newTestSheet()
	events := recordShifts(ws)
	setValues(t, ws, map[string]any{"A1": "a", "B2": "b", "B3": "b3", "C2": "c"})

	mustRange(t, ws, "B2:B2").InsertRowsAbove(2, false)

	assert.Equal(t, map[string]any{"A1": "a", "B4": "b", "B5": "b3", "C2": "c"}, valuesOf(ws))
	assert.Equal(t, []shiftEvent{{"rows", "B2:B2", 2}}, *events)
}

func TestInsertRowsAbove_VacatedBandUsesColumnStyle(t *testing.T) {
	ws := newTestSheet()
	rowStyle := NewStyle("row")
	colStyle := NewStyle("col")
	ws.SetRowStyle(1, rowStyle)
	ws.SetColumnStyle(2, colStyle)
	setValues(t, ws, map[string]any{"B1": "b"})

	mustRange(t, ws, "B1:B1").InsertRowsAbove(1, false)

	moved, ok := ws.Peek(2, 2)
	require.True(t, ok)
	assert.Equal(t, "b", moved.Value)
	assert.Same(t, rowStyle, moved.Style, "moved cell keeps its own style")

	blank, ok := ws.Peek(1, 2)
	require.True(t, ok)
	assert.Nil(t, blank.Value)
	assert.Same(t, colStyle, blank.Style)
}

func TestInsertRowsAbove_RangeWiderThanUsedArea(t *testing.T) {
	ws := newTestSheet()
	rowStyle := NewStyle("row2")
	ws.SetRowStyle(2, rowStyle)
	setValues(t, ws, map[string]any{"A1": "X"})

	ws.RangeRC(2, 1, 2, 10).InsertRowsAbove(1, false)

	for col := 1; col <= 10; col++ {
		blank, ok := ws.Peek(2, col)
		require.True(t, ok, "column %d is blanked", col)
		assert.Same(t, ws.Style(), blank.Style, "column %d", col)

		moved, ok := ws.Peek(3, col)
		require.True(t, ok, "column %d is written", col)
		assert.Same(t, rowStyle, moved.Style, "column %d", col)
	}
	assert.Equal(t, map[string]any{"A1": "X"}, valuesOf(ws))
}

func TestInsertRowsAbove_OverflowIsTruncated(t *testing.T) {
	ws := newTestSheet() // 100 rows
	setValues(t, ws, map[string]any{"A99": "99", "A100": "100"})

	mustRange(t, ws, "A50:A50").InsertRowsAbove(1, true)

	assert.Equal(t, map[string]any{"A100": "99"}, valuesOf(ws))
}

func TestInsertRowsBelow(t *testing.T) {
	ws := newTestSheet()
	events := recordShifts(ws)
	setValues(t, ws, map[string]any{"A1": "a", "A2": "a2", "A3": "a3", "B4": "b4", "C3": "c3"})

	mustRange(t, ws, "A1:B2").InsertRowsBelow(1, true)

	assert.Equal(t, map[string]any{"A1": "a", "A2": "a2", "A4": "a3", "B5": "b4", "C3": "c3"}, valuesOf(ws))
	assert.Equal(t, []shiftEvent{{"rows", "A3:B4", 1}}, *events)
}

func TestInsertRows_RoundTrip(t *testing.T) {
	ws := newTestSheet()
	original := map[string]any{"A1": "a", "A2": "b", "B3": "c", "A7": "d", "C2": "outside"}
	setValues(t, ws, original)

	mustRange(t, ws, "A2:B2").InsertRowsAbove(3, true)
	mustRange(t, ws, "A2:B4").Delete(ShiftUp)

	assert.Equal(t, original, valuesOf(ws))
}

func TestDelete_ShiftLeft(t *testing.T) {
	ws := newTestSheet()
	events := recordShifts(ws)
	setValues(t, ws, map[string]any{
		"A2": "keep", "B2": "gone", "C3": "gone", "D2": "d2", "F3": "f3", "D4": "below",
	})

	mustRange(t, ws, "B2:C3").Delete(ShiftLeft)

	assert.Equal(t, map[string]any{"A2": "keep", "B2": "d2", "D3": "f3", "D4": "below"}, valuesOf(ws))
	assert.Equal(t, []shiftEvent{{"columns", "B2:C3", -2}}, *events)
}

func TestDelete_ShiftUp(t *testing.T) {
	ws := newTestSheet()
	events := recordShifts(ws)
	setValues(t, ws, map[string]any{
		"B1": "top", "B2": "gone", "C3": "gone", "B4": "b4", "C6": "c6", "D4": "d4",
	})

	mustRange(t, ws, "B2:C3").Delete(ShiftUp)

	assert.Equal(t, map[string]any{"B1": "top", "B2": "b4", "C4": "c6", "D4": "d4"}, valuesOf(ws))
	assert.Equal(t, []shiftEvent{{"rows", "B2:C3", -2}}, *events)
}

func TestDelete_KeepsCellRecordsConsistent(t *testing.T) {
	ws := newTestSheet()
	setValues(t, ws, map[string]any{"E5": "e5"})

	mustRange(t, ws, "A5:B5").Delete(ShiftLeft)

	c, ok := ws.Peek(5, 3)
	require.True(t, ok)
	assert.Equal(t, NewAddress(5, 3), c.Address)
	assert.Empty(t, Validate(ws))
}

func TestShift_MergesFollowInsertedColumns(t *testing.T) {
	ws := newTestSheet()
	ws.RangeRC(1, 3, 2, 4).Merge() // C1:D2, inside the band
	ws.RangeRC(5, 3, 5, 4).Merge() // C5:D5, other rows
	ws.RangeRC(1, 1, 2, 1).Merge() // A1:A2, left of the insertion point

	mustRange(t, ws, "B1:B2").InsertColumnsBefore(1, true)

	assert.Equal(t, []string{"A1:A2", "C5:D5", "D1:E2"}, ws.Merges().Keys())
}

func TestShift_MergeSpanningInsertionPointWidens(t *testing.T) {
	ws := newTestSheet()
	setValues(t, ws, map[string]any{"A3": "a", "B3": "b"})
	ws.RangeRC(3, 1, 3, 2).Merge() // A3:B3

	mustRange(t, ws, "B3:B3").InsertColumnsBefore(2, true)

	assert.Equal(t, []string{"A3:D3"}, ws.Merges().Keys())
	assert.Equal(t, map[string]any{"A3": "a", "D3": "b"}, valuesOf(ws))
}

func TestShift_MergesFollowInsertedRows(t *testing.T) {
	ws := newTestSheet()
	ws.RangeRC(3, 1, 4, 2).Merge() // A3:B4

	mustRange(t, ws, "A2:C2").InsertRowsAbove(2, true)

	assert.Equal(t, []string{"A5:B6"}, ws.Merges().Keys())
}

func TestShift_MergePushedPastEdgeIsDropped(t *testing.T) {
	ws := newTestSheet() // 26 columns
	ws.RangeRC(1, 25, 1, 26).Merge()

	mustRange(t, ws, "A1:A1").InsertColumnsBefore(1, true)

	assert.Equal(t, 0, ws.Merges().Len())
}

func TestShift_DeleteDropsAndMovesMerges(t *testing.T) {
	ws := newTestSheet()
	ws.RangeRC(1, 2, 1, 3).Merge() // B1:C1, touches the deleted column
	ws.RangeRC(2, 4, 2, 5).Merge() // D2:E2, right of it
	ws.RangeRC(9, 4, 9, 5).Merge() // D9:E9, other rows

	mustRange(t, ws, "C1:C2").Delete(ShiftLeft)

	assert.Equal(t, []string{"C2:D2", "D9:E9"}, ws.Merges().Keys())
}

func TestShift_DeleteUpMovesMerges(t *testing.T) {
	ws := newTestSheet()
	ws.RangeRC(6, 1, 7, 1).Merge() // A6:A7

	mustRange(t, ws, "A2:B4").Delete(ShiftUp)

	assert.Equal(t, []string{"A3:A4"}, ws.Merges().Keys())
}

func TestShift_ListenersRunAfterMerges(t *testing.T) {
	ws := newTestSheet()
	ws.RangeRC(1, 3, 1, 4).Merge()
	var seen []string
	ws.AddShiftListener(ShiftFuncs{Columns: func(r Range, delta int) {
		seen = r.Worksheet().Merges().Keys()
	}})

	mustRange(t, ws, "A1:A1").InsertColumnsBefore(1, true)

	assert.Equal(t, []string{"D1:E1"}, seen)
}

func TestShiftDirection_String(t *testing.T) {
	assert.Equal(t, "left", ShiftLeft.String())
	assert.Equal(t, "up", ShiftUp.String())
}
