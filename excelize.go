package xlgrid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// styleTable interns excelize style indices so equal indices share one *Style.
type styleTable struct {
	byID map[int]*Style
}

func newStyleTable(def *Style) *styleTable {
	return &styleTable{byID: map[int]*Style{def.ExcelID: def}}
}

func (t *styleTable) get(id int) *Style {
	if s, ok := t.byID[id]; ok {
		return s
	}
	s := &Style{ExcelID: id}
	t.byID[id] = s
	return s
}

// OpenSheet opens an xlsx file and loads one sheet. An empty sheet name
// selects the first sheet of the workbook.
func OpenSheet(path, sheet string, opts ...Option) (*Worksheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer f.Close()
	if sheet == "" {
		sheet = FirstSheet(f)
	}
	return LoadSheet(f, sheet, opts...)
}

// FirstSheet returns the name of the first sheet of f.
func FirstSheet(f *excelize.File) string {
	if list := f.GetSheetList(); len(list) > 0 {
		return list[0]
	}
	return ""
}

// LoadSheet reads the cells, column styles and merged regions of one sheet
// of f into a new Worksheet.
func LoadSheet(f *excelize.File, sheet string, opts ...Option) (*Worksheet, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("load sheet %q: sheet not found", sheet)
	}
	ws := NewWorksheet(sheet, opts...)
	styles := newStyleTable(ws.style)

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}
	for rowIdx, row := range rows {
		for colIdx, raw := range row {
			addr := NewAddress(rowIdx+1, colIdx+1)
			name := addr.String()

			formula, err := f.GetCellFormula(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("read formula %s!%s: %w", sheet, name, err)
			}
			styleID, err := f.GetCellStyle(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("read style %s!%s: %w", sheet, name, err)
			}
			if raw == "" && formula == "" && styleID == 0 {
				continue
			}
			cellType, err := f.GetCellType(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("read type %s!%s: %w", sheet, name, err)
			}

			c := newCell(addr, styles.get(styleID))
			c.Value, c.Type = decodeValue(raw, cellType)
			if formula != "" {
				c.SetFormulaA1(formula)
			}
			ws.cells.add(c)
		}
	}

	// Column styles may sit right of every stored cell, so every column of
	// the sheet is asked.
	for col := 1; col <= ws.maxColumns; col++ {
		id, err := f.GetColStyle(sheet, ColToName(col))
		if err != nil {
			return nil, fmt.Errorf("read column style %s!%s: %w", sheet, ColToName(col), err)
		}
		if id != 0 {
			ws.SetColumnStyle(col, styles.get(id))
		}
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("read merged cells from sheet %q: %w", sheet, err)
	}
	for _, mc := range merges {
		ra, err := ParseRangeAddress(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("read merged cells from sheet %q: %w", sheet, err)
		}
		ws.merges.Add(ra)
	}
	return ws, nil
}

// decodeValue converts a raw cell string into a typed value.
func decodeValue(raw string, ct excelize.CellType) (any, CellType) {
	if raw == "" {
		return nil, CellBlank
	}
	switch ct {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), CellBoolean
	case excelize.CellTypeError:
		return raw, CellError
	case excelize.CellTypeDate:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n, CellDate
		}
		return raw, CellString
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n, CellNumber
		}
	}
	return raw, CellString
}

// SaveSheet writes ws into the named sheet of f, creating the sheet when it
// does not exist. Existing values, formulas, cell styles and merges of the
// target sheet are cleared first. R1C1 formulas have no excelize
// counterpart and are written as their cached value only.
func SaveSheet(ws *Worksheet, f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("save sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	} else if err := clearSheet(f, sheet); err != nil {
		return err
	}

	for _, c := range ws.AsRange().CellsUsed() {
		name := c.Address.String()
		if c.Value != nil {
			if err := f.SetCellValue(sheet, name, c.Value); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, name, err)
			}
		}
		if formula := c.FormulaA1(); formula != "" {
			if err := f.SetCellFormula(sheet, name, formula); err != nil {
				return fmt.Errorf("write formula %s!%s: %w", sheet, name, err)
			}
		}
		if c.Style != nil && c.Style.ExcelID != 0 {
			if err := f.SetCellStyle(sheet, name, name, c.Style.ExcelID); err != nil {
				return fmt.Errorf("write style %s!%s: %w", sheet, name, err)
			}
		}
	}

	for col, ref := range ws.colStyles {
		if s := ref.Style(); s != nil && s.ExcelID != 0 {
			if err := f.SetColStyle(sheet, ColToName(col), s.ExcelID); err != nil {
				return fmt.Errorf("write column style %s!%s: %w", sheet, ColToName(col), err)
			}
		}
	}
	for row, ref := range ws.rowStyles {
		if s := ref.Style(); s != nil && s.ExcelID != 0 {
			if err := f.SetRowStyle(sheet, row, row, s.ExcelID); err != nil {
				return fmt.Errorf("write row style %s!%d: %w", sheet, row, err)
			}
		}
	}

	for _, ra := range ws.merges.Ranges() {
		if err := f.MergeCell(sheet, ra.First.String(), ra.Last.String()); err != nil {
			return fmt.Errorf("merge cells %s!%s: %w", sheet, ra, err)
		}
	}
	return nil
}

// clearSheet empties the values, formulas, cell styles and merges of sheet.
func clearSheet(f *excelize.File, sheet string) error {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return fmt.Errorf("read merged cells from sheet %q: %w", sheet, err)
	}
	for _, mc := range merges {
		if err := f.UnmergeCell(sheet, mc.GetStartAxis(), mc.GetEndAxis()); err != nil {
			return fmt.Errorf("unmerge %s!%s:%s: %w", sheet, mc.GetStartAxis(), mc.GetEndAxis(), err)
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}
	for rowIdx, row := range rows {
		for colIdx := range row {
			name := NewAddress(rowIdx+1, colIdx+1).String()
			if err := f.SetCellFormula(sheet, name, ""); err != nil {
				return fmt.Errorf("clear formula %s!%s: %w", sheet, name, err)
			}
			if err := f.SetCellValue(sheet, name, nil); err != nil {
				return fmt.Errorf("clear %s!%s: %w", sheet, name, err)
			}
			if err := f.SetCellStyle(sheet, name, name, 0); err != nil {
				return fmt.Errorf("clear style %s!%s: %w", sheet, name, err)
			}
		}
	}
	return nil
}
