package xlgrid

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// programs caches compiled conditions by expression text.
var programs sync.Map // string → *vm.Program

// Where returns the stored cells inside the range for which condition
// evaluates to true, in address order. Cells are not materialized.
//
// The condition is an expr-lang expression over:
//
//	row, col  int     absolute 1-based position
//	address   string  "B3"
//	value     any     stored value
//	text      string  value rendered as text
//	kind      string  "Blank", "String", "Number", ...
//	formula   string  A1 or R1C1 formula text, "" if none
//	style     string  style name
func (r Range) Where(condition string) ([]*Cell, error) {
	program, err := compileCondition(condition)
	if err != nil {
		return nil, err
	}
	var result []*Cell
	for _, c := range r.CellsUsed() {
		out, err := expr.Run(program, cellEnv(c))
		if err != nil {
			return nil, fmt.Errorf("evaluate condition %q at %s: %w", condition, c.Address, err)
		}
		if out == nil {
			continue // nil treated as false
		}
		ok, isBool := out.(bool)
		if !isBool {
			return nil, fmt.Errorf("condition %q evaluated to %T at %s, expected bool", condition, out, c.Address)
		}
		if ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func compileCondition(condition string) (*vm.Program, error) {
	if condition == "" {
		return nil, fmt.Errorf("empty condition")
	}
	if cached, ok := programs.Load(condition); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(condition, expr.Env(cellEnv(newCell(Address{}, nil))))
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", condition, err)
	}
	programs.Store(condition, program)
	return program, nil
}

func cellEnv(c *Cell) map[string]any {
	formula := c.FormulaA1()
	if formula == "" {
		formula = c.FormulaR1C1()
	}
	style := ""
	if c.Style != nil {
		style = c.Style.String()
	}
	return map[string]any{
		"row":     c.Address.Row,
		"col":     c.Address.Col,
		"address": c.Address.String(),
		"value":   c.Value,
		"text":    c.GetString(),
		"kind":    c.Type.String(),
		"formula": formula,
		"style":   style,
	}
}
