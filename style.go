package xlgrid

import "strconv"

// Style is an opaque style handle. Two styles are the same only if they are
// the same pointer; equal fields do not make them interchangeable.
type Style struct {
	Name    string
	ExcelID int // excelize style index; 0 is the workbook default
}

// NewStyle creates a named style handle.
func NewStyle(name string) *Style {
	return &Style{Name: name}
}

func (s *Style) String() string {
	if s == nil {
		return "<nil>"
	}
	if s.Name != "" {
		return s.Name
	}
	return "style#" + strconv.Itoa(s.ExcelID)
}

// StyleRef is the style setting of a row, column or range: either Inherited
// from the level above or Overridden with a concrete style.
type StyleRef struct {
	style *Style
}

// Inherited is the StyleRef of anything that has no style of its own.
func Inherited() StyleRef {
	return StyleRef{}
}

// Overridden returns a StyleRef carrying s. A nil s is Inherited.
func Overridden(s *Style) StyleRef {
	return StyleRef{style: s}
}

// IsOverridden reports whether a concrete style is set.
func (r StyleRef) IsOverridden() bool {
	return r.style != nil
}

// Style returns the overriding style, or nil when inherited.
func (r StyleRef) Style() *Style {
	return r.style
}

// Or resolves the reference, falling back to def when inherited.
func (r StyleRef) Or(def *Style) *Style {
	if r.style != nil {
		return r.style
	}
	return def
}

func (r StyleRef) String() string {
	if r.style == nil {
		return "inherited"
	}
	return r.style.String()
}
