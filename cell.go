package xlgrid

import (
	"fmt"
	"strconv"
	"time"
)

// CellType represents the type of data in a cell.
type CellType int

const (
	CellBlank CellType = iota
	CellString
	CellNumber
	CellBoolean
	CellDate
	CellError
)

// String returns a human-readable name for the CellType.
func (ct CellType) String() string {
	switch ct {
	case CellBlank:
		return "Blank"
	case CellString:
		return "String"
	case CellNumber:
		return "Number"
	case CellBoolean:
		return "Boolean"
	case CellDate:
		return "Date"
	case CellError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Cell is the record stored for one address of a worksheet.
// A formula is held in exactly one of its two notations.
type Cell struct {
	Address Address
	Value   any
	Type    CellType
	Style   *Style

	formulaA1   string
	formulaR1C1 string
}

// newCell creates an empty cell at addr with the given style.
func newCell(addr Address, style *Style) *Cell {
	return &Cell{Address: addr, Type: CellBlank, Style: style}
}

// relocated copies c's content to a fresh record at addr.
func (c *Cell) relocated(addr Address) *Cell {
	return &Cell{
		Address:     addr,
		Value:       c.Value,
		Type:        c.Type,
		Style:       c.Style,
		formulaA1:   c.formulaA1,
		formulaR1C1: c.formulaR1C1,
	}
}

// SetValue stores v and infers the cell type from it.
func (c *Cell) SetValue(v any) {
	c.Value = v
	c.Type = inferCellType(v)
}

// FormulaA1 returns the formula in A1 notation, without a leading "=".
func (c *Cell) FormulaA1() string { return c.formulaA1 }

// FormulaR1C1 returns the formula in R1C1 notation, without a leading "=".
func (c *Cell) FormulaR1C1() string { return c.formulaR1C1 }

// SetFormulaA1 sets an A1-style formula and clears any R1C1 formula.
func (c *Cell) SetFormulaA1(formula string) {
	c.formulaA1 = formula
	c.formulaR1C1 = ""
}

// SetFormulaR1C1 sets an R1C1-style formula and clears any A1 formula.
func (c *Cell) SetFormulaR1C1(formula string) {
	c.formulaR1C1 = formula
	c.formulaA1 = ""
}

// HasFormula returns true if either formula notation is set.
func (c *Cell) HasFormula() bool {
	return c.formulaA1 != "" || c.formulaR1C1 != ""
}

// IsEmpty reports whether the cell has neither a value nor a formula.
func (c *Cell) IsEmpty() bool {
	return c.GetString() == "" && !c.HasFormula()
}

// GetString returns the cell value rendered as text.
func (c *Cell) GetString() string {
	switch v := c.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

func (c *Cell) String() string {
	if c.formulaA1 != "" {
		return c.Address.String() + ": =" + c.formulaA1
	}
	if c.formulaR1C1 != "" {
		return c.Address.String() + ": =" + c.formulaR1C1
	}
	return c.Address.String() + ": " + c.GetString()
}

// inferCellType determines the CellType from a Go value.
func inferCellType(v any) CellType {
	if v == nil {
		return CellBlank
	}
	switch v.(type) {
	case bool:
		return CellBoolean
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return CellNumber
	case time.Time:
		return CellDate
	case error:
		return CellError
	default:
		return CellString
	}
}
