package xlgrid

import "github.com/xuri/excelize/v2"

// Options holds configuration for a Worksheet.
type Options struct {
	maxRows        int
	maxColumns     int
	defaultStyle   *Style
	shiftListeners []ShiftListener
}

func defaultOptions() *Options {
	return &Options{
		maxRows:    excelize.TotalRows,
		maxColumns: excelize.MaxColumns,
	}
}

// Option configures a Worksheet.
type Option func(*Options)

// WithMaxRows sets the highest row number of the sheet (default: 1048576).
func WithMaxRows(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.maxRows = n
		}
	}
}

// WithMaxColumns sets the highest column number of the sheet (default: 16384).
func WithMaxColumns(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.maxColumns = n
		}
	}
}

// WithDefaultStyle sets the sheet-level style every cell falls back to.
func WithDefaultStyle(s *Style) Option {
	return func(o *Options) { o.defaultStyle = s }
}

// WithShiftListener adds a listener notified after every structural edit.
func WithShiftListener(l ShiftListener) Option {
	return func(o *Options) { o.shiftListeners = append(o.shiftListeners, l) }
}
