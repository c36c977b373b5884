// Package filter implements the per-column value filters behind the
// integrity results table: each displayed column owns the set of distinct
// values observed in it, a row is visible iff its value in every column is
// still selected.
package filter

import "github.com/diegomarinho/jabref/internal/integrity"

// Column identifies one of the three displayed columns.
type Column int

const (
	ColumnKey Column = iota
	ColumnField
	ColumnMessage
)

// Columns lists the displayed columns in table order.
var Columns = []Column{ColumnKey, ColumnField, ColumnMessage}

// Title returns the column header.
func (c Column) Title() string {
	switch c {
	case ColumnKey:
		return "Key"
	case ColumnField:
		return "Field"
	default:
		return "Message"
	}
}

// Value extracts the row's string value for this column. A record without
// a citation key yields "".
func (c Column) Value(m integrity.Message) string {
	switch c {
	case ColumnKey:
		return m.Key()
	case ColumnField:
		return m.FieldName()
	default:
		return m.Text
	}
}

// Option is one selectable domain value of a column filter.
type Option struct {
	Value    string
	Selected bool
}

// columnFilter tracks the distinct values of one column and which of them
// currently pass. domain keeps first-observed order for stable menus.
type columnFilter struct {
	domain   []string
	selected map[string]bool
}

func newColumnFilter(values []string) *columnFilter {
	f := &columnFilter{selected: map[string]bool{}}
	for _, v := range values {
		if _, seen := f.selected[v]; !seen {
			f.domain = append(f.domain, v)
			f.selected[v] = true
		}
	}
	return f
}

func (f *columnFilter) reset() {
	for v := range f.selected {
		f.selected[v] = true
	}
}

// active reports whether any domain value is currently deselected.
func (f *columnFilter) active() bool {
	for _, ok := range f.selected {
		if !ok {
			return true
		}
	}
	return false
}

// Engine owns one filter per displayed column. All mutation happens on the
// UI event loop; the engine itself is not synchronized.
type Engine struct {
	filters map[Column]*columnFilter
}

// NewEngine scans the rows once and builds each column's domain, with every
// value selected (no filtering). The row set is fixed for the lifetime of a
// dialog, so the domains never need recomputing.
func NewEngine(rows []integrity.Message) *Engine {
	e := &Engine{filters: map[Column]*columnFilter{}}
	for _, c := range Columns {
		values := make([]string, 0, len(rows))
		for _, r := range rows {
			values = append(values, c.Value(r))
		}
		e.filters[c] = newColumnFilter(values)
	}
	return e
}

// Options returns the column's domain in first-observed order, tagged with
// current selection state. An empty domain yields an empty menu.
func (e *Engine) Options(c Column) []Option {
	f := e.filters[c]
	out := make([]Option, 0, len(f.domain))
	for _, v := range f.domain {
		out = append(out, Option{Value: v, Selected: f.selected[v]})
	}
	return out
}

// Toggle flips whether value passes the column's filter. Unknown values
// are ignored.
func (e *Engine) Toggle(c Column, value string) {
	f := e.filters[c]
	if _, ok := f.selected[value]; ok {
		f.selected[value] = !f.selected[value]
	}
}

// Visible evaluates the conjunction over all columns: the row passes only
// if its value in every column is still selected.
func (e *Engine) Visible(m integrity.Message) bool {
	for _, c := range Columns {
		if !e.filters[c].selected[c.Value(m)] {
			return false
		}
	}
	return true
}

// Active reports whether the column currently excludes any value, for the
// filter-active indicator next to its menu.
func (e *Engine) Active(c Column) bool {
	return e.filters[c].active()
}

// Reset restores every column to its unfiltered default, regardless of
// toggle history.
func (e *Engine) Reset() {
	for _, f := range e.filters {
		f.reset()
	}
}
