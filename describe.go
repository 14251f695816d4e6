package xlgrid

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable listing of the stored cells and merged
// regions inside r. It never materializes cells.
// Useful for debugging structural edits.
func Describe(r Range) string {
	var b strings.Builder
	name := r.ws.Name()
	if name != "" {
		name += "!"
	}
	fmt.Fprintf(&b, "%s%s range %s\n", name, r, r.addr.Size())

	cells := r.CellsUsed()
	if len(cells) > 0 {
		b.WriteString("  Cells:\n")
		for _, c := range cells {
			fmt.Fprintf(&b, "    %s%s\n", c, describeCellAttrs(c, r.ws))
		}
	}

	var merges []string
	for _, ra := range r.ws.merges.Ranges() {
		if r.addr.Intersects(ra) {
			merges = append(merges, ra.String())
		}
	}
	if len(merges) > 0 {
		b.WriteString("  Merges:\n")
		for _, m := range merges {
			fmt.Fprintf(&b, "    %s\n", m)
		}
	}
	return b.String()
}

// DescribeSheet is Describe over the used area of ws.
func DescribeSheet(ws *Worksheet) string {
	lastRow, lastCol := ws.cells.bounds()
	for _, ra := range ws.merges.Ranges() {
		lastRow = max(lastRow, ra.Last.Row)
		lastCol = max(lastCol, ra.Last.Col)
	}
	if lastRow == 0 || lastCol == 0 {
		return fmt.Sprintf("%s: empty\n", ws.Name())
	}
	return Describe(ws.RangeRC(1, 1, lastRow, lastCol))
}

// describeCellAttrs returns the non-default attributes of c for display.
func describeCellAttrs(c *Cell, ws *Worksheet) string {
	var parts []string
	if c.Type != CellBlank && c.Type != CellString {
		parts = append(parts, fmt.Sprintf("type=%s", c.Type))
	}
	if c.FormulaR1C1() != "" {
		parts = append(parts, "r1c1")
	}
	if c.Style != nil && c.Style != ws.style {
		parts = append(parts, fmt.Sprintf("style=%q", c.Style.String()))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, " ") + "]"
}
