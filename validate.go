package xlgrid

import (
	"fmt"
	"slices"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // The sheet is inconsistent
	SeverityWarning                 // The sheet is valid but likely not what was meant
)

// ValidationIssue represents a single problem found in a worksheet.
type ValidationIssue struct {
	Severity Severity
	Address  Address
	Message  string
}

// String formats the issue as "[ERROR] B2: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.Address, v.Message)
}

// Validate checks ws for internal consistency: cell keys, sheet limits and
// merged regions. Issues are returned in address order.
func Validate(ws *Worksheet) []ValidationIssue {
	var issues []ValidationIssue
	issues = append(issues, validateCells(ws)...)
	issues = append(issues, validateMerges(ws)...)
	slices.SortStableFunc(issues, func(a, b ValidationIssue) int {
		return a.Address.Compare(b.Address)
	})
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []ValidationIssue) bool {
	return slices.ContainsFunc(issues, func(v ValidationIssue) bool {
		return v.Severity == SeverityError
	})
}

// validateCells checks that every record sits under its own address and
// inside the sheet limits.
func validateCells(ws *Worksheet) []ValidationIssue {
	var issues []ValidationIssue
	for key, c := range ws.cells.cells {
		if c.Address != key {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				Address:  key,
				Message:  fmt.Sprintf("cell stored under %s reports address %s", key, c.Address),
			})
		}
		if !key.IsValid(ws.maxRows, ws.maxColumns) {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				Address:  key,
				Message:  fmt.Sprintf("cell outside sheet limits (%d rows, %d columns)", ws.maxRows, ws.maxColumns),
			})
		}
		if c.Style == nil {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Address:  key,
				Message:  "cell has no style",
			})
		}
	}
	return issues
}

// validateMerges checks merged regions against the limits and each other.
func validateMerges(ws *Worksheet) []ValidationIssue {
	var issues []ValidationIssue
	merges := ws.merges.Ranges()
	for i, ra := range merges {
		if !ra.First.IsValid(ws.maxRows, ws.maxColumns) || !ra.Last.IsValid(ws.maxRows, ws.maxColumns) {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				Address:  ra.First,
				Message:  fmt.Sprintf("merge %s outside sheet limits", ra),
			})
		}
		if ra.RowCount() == 1 && ra.ColumnCount() == 1 {
			issues = append(issues, ValidationIssue{
				Severity: SeverityWarning,
				Address:  ra.First,
				Message:  fmt.Sprintf("merge %s covers a single cell", ra),
			})
		}
		for _, other := range merges[i+1:] {
			if ra.Intersects(other) {
				issues = append(issues, ValidationIssue{
					Severity: SeverityError,
					Address:  ra.First,
					Message:  fmt.Sprintf("merge %s overlaps merge %s", ra, other),
				})
			}
		}
	}
	return issues
}
