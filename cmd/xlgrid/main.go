// Package main provides the xlgrid CLI: structural edits on xlsx sheets.
package main

import (
	"fmt"
	"os"

	"github.com/javajack/xlgrid"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

type globalFlags struct {
	sheet  string
	output string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "xlgrid",
		Short: "Insert, delete, merge and inspect cells of an xlsx sheet",
		Long: `xlgrid applies structural edits to one sheet of an xlsx workbook.
Cells keep their values, formulas and styles when rows or columns move.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.sheet, "sheet", "", "Sheet name (default: first sheet)")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", "", "Output file path (default: overwrite input)")

	root.AddCommand(
		newInsertColsCmd(g),
		newInsertRowsCmd(g),
		newDeleteCmd(g),
		newRangeEditCmd(g, "merge", "Merge a range", xlgrid.Range.Merge),
		newRangeEditCmd(g, "unmerge", "Remove the merge of exactly a range", xlgrid.Range.Unmerge),
		newRangeEditCmd(g, "clear", "Remove cells and merges inside a range", xlgrid.Range.Clear),
		newDescribeCmd(g),
		newValidateCmd(g),
		newFindCmd(g),
	)
	return root
}

func newInsertColsCmd(g *globalFlags) *cobra.Command {
	var rangeRef string
	var count int
	var after, usedOnly bool
	cmd := &cobra.Command{
		Use:   "insert-cols [input.xlsx]",
		Short: "Insert blank columns before or after a range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSheet(g, args[0], true, func(ws *xlgrid.Worksheet) error {
				r, err := ws.RangeByName(rangeRef)
				if err != nil {
					return err
				}
				if after {
					r.InsertColumnsAfter(count, usedOnly)
				} else {
					r.InsertColumnsBefore(count, usedOnly)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rangeRef, "range", "", "Range the columns are inserted next to, e.g. B1:B10")
	cmd.Flags().IntVar(&count, "count", 1, "Number of columns to insert")
	cmd.Flags().BoolVar(&after, "after", false, "Insert after the range instead of before")
	cmd.Flags().BoolVar(&usedOnly, "used-only", false, "Move only cells that exist")
	cmd.MarkFlagRequired("range")
	return cmd
}

func newInsertRowsCmd(g *globalFlags) *cobra.Command {
	var rangeRef string
	var count int
	var below, usedOnly bool
	cmd := &cobra.Command{
		Use:   "insert-rows [input.xlsx]",
		Short: "Insert blank rows above or below a range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSheet(g, args[0], true, func(ws *xlgrid.Worksheet) error {
				r, err := ws.RangeByName(rangeRef)
				if err != nil {
					return err
				}
				if below {
					r.InsertRowsBelow(count, usedOnly)
				} else {
					r.InsertRowsAbove(count, usedOnly)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rangeRef, "range", "", "Range the rows are inserted next to, e.g. A3:F3")
	cmd.Flags().IntVar(&count, "count", 1, "Number of rows to insert")
	cmd.Flags().BoolVar(&below, "below", false, "Insert below the range instead of above")
	cmd.Flags().BoolVar(&usedOnly, "used-only", false, "Move only cells that exist")
	cmd.MarkFlagRequired("range")
	return cmd
}

func newDeleteCmd(g *globalFlags) *cobra.Command {
	var rangeRef, shift string
	cmd := &cobra.Command{
		Use:   "delete [input.xlsx]",
		Short: "Delete a range and shift the remaining cells left or up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir xlgrid.ShiftDirection
			switch shift {
			case "left":
				dir = xlgrid.ShiftLeft
			case "up":
				dir = xlgrid.ShiftUp
			default:
				return fmt.Errorf("invalid shift: %s (must be left or up)", shift)
			}
			return editSheet(g, args[0], true, func(ws *xlgrid.Worksheet) error {
				r, err := ws.RangeByName(rangeRef)
				if err != nil {
					return err
				}
				r.Delete(dir)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rangeRef, "range", "", "Range to delete, e.g. B2:C4")
	cmd.Flags().StringVar(&shift, "shift", "left", "Shift direction: left or up")
	cmd.MarkFlagRequired("range")
	return cmd
}

func newRangeEditCmd(g *globalFlags, use, short string, edit func(xlgrid.Range)) *cobra.Command {
	var rangeRef string
	cmd := &cobra.Command{
		Use:   use + " [input.xlsx]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSheet(g, args[0], true, func(ws *xlgrid.Worksheet) error {
				r, err := ws.RangeByName(rangeRef)
				if err != nil {
					return err
				}
				edit(r)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rangeRef, "range", "", "Range, e.g. B2:C4")
	cmd.MarkFlagRequired("range")
	return cmd
}

func newDescribeCmd(g *globalFlags) *cobra.Command {
	var rangeRef string
	cmd := &cobra.Command{
		Use:   "describe [input.xlsx]",
		Short: "Print the cells and merges of a sheet or range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSheet(g, args[0], false, func(ws *xlgrid.Worksheet) error {
				if rangeRef == "" {
					fmt.Fprint(cmd.OutOrStdout(), xlgrid.DescribeSheet(ws))
					return nil
				}
				r, err := ws.RangeByName(rangeRef)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), xlgrid.Describe(r))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rangeRef, "range", "", "Range to describe (default: used area)")
	return cmd
}

func newValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input.xlsx]",
		Short: "Check merged regions and cells of a sheet for consistency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSheet(g, args[0], false, func(ws *xlgrid.Worksheet) error {
				issues := xlgrid.Validate(ws)
				for _, issue := range issues {
					fmt.Fprintln(cmd.OutOrStdout(), issue)
				}
				if xlgrid.HasErrors(issues) {
					return fmt.Errorf("sheet %q has %d issue(s)", ws.Name(), len(issues))
				}
				return nil
			})
		},
	}
}

func newFindCmd(g *globalFlags) *cobra.Command {
	var rangeRef, where string
	cmd := &cobra.Command{
		Use:   "find [input.xlsx]",
		Short: "List cells matching an expression, e.g. --where 'text contains \"total\"'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSheet(g, args[0], false, func(ws *xlgrid.Worksheet) error {
				r := ws.AsRange()
				if rangeRef != "" {
					var err error
					if r, err = ws.RangeByName(rangeRef); err != nil {
						return err
					}
				}
				cells, err := r.Where(where)
				if err != nil {
					return err
				}
				for _, c := range cells {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rangeRef, "range", "", "Range to search (default: whole sheet)")
	cmd.Flags().StringVar(&where, "where", "", "Condition over row, col, address, value, text, kind, formula, style")
	cmd.MarkFlagRequired("where")
	return cmd
}

// editSheet loads the selected sheet of path, runs fn and, when write is
// set, saves the result to the output path.
func editSheet(g *globalFlags, path string, write bool, fn func(*xlgrid.Worksheet) error) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer f.Close()

	sheet := g.sheet
	if sheet == "" {
		sheet = xlgrid.FirstSheet(f)
	}
	ws, err := xlgrid.LoadSheet(f, sheet)
	if err != nil {
		return err
	}
	if err := fn(ws); err != nil {
		return err
	}
	if !write {
		return nil
	}

	if err := xlgrid.SaveSheet(ws, f, sheet); err != nil {
		return err
	}
	out := g.output
	if out == "" {
		out = path
	}
	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
