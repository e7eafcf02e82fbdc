package data

import (
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/leengari/metaframe/internal/domain/errors"
)

// Frame is an in-memory column-oriented table: ordered column names, one
// value slice per column, and optional row labels
type Frame struct {
	columns []string
	index   []string
	values  map[string][]interface{}
}

// NewFrame builds a frame from columns in the given order. Every column
// must be present in values and all columns must have the same length.
func NewFrame(columns []string, values map[string][]interface{}) (*Frame, error) {
	if len(values) != len(columns) {
		return nil, fmt.Errorf("frame has %d column names but %d value columns", len(columns), len(values))
	}

	f := &Frame{
		columns: make([]string, len(columns)),
		values:  make(map[string][]interface{}, len(columns)),
	}
	copy(f.columns, columns)

	rows := -1
	for _, name := range columns {
		if _, dup := f.values[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		vals, ok := values[name]
		if !ok {
			return nil, errors.NewUnknownColumn(name)
		}
		if rows >= 0 && len(vals) != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(vals), rows)
		}
		rows = len(vals)
		f.values[name] = append([]interface{}(nil), vals...)
	}

	return f, nil
}

// WithIndex attaches row labels; labels must be unique and match the row count
func (f *Frame) WithIndex(labels []string) error {
	if len(labels) != f.Len() {
		return fmt.Errorf("index has %d labels, frame has %d rows", len(labels), f.Len())
	}
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return fmt.Errorf("duplicate index label %q", l)
		}
		seen[l] = true
	}
	f.index = append([]string(nil), labels...)
	return nil
}

// Columns returns the column names in order
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Index returns the row labels, or nil when the frame is positional
func (f *Frame) Index() []string {
	if f.index == nil {
		return nil
	}
	return append([]string(nil), f.index...)
}

// Len returns the number of rows
func (f *Frame) Len() int {
	if len(f.columns) == 0 {
		return len(f.index)
	}
	return len(f.values[f.columns[0]])
}

// HasColumn reports whether name is a column of the frame
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Column returns a copy of the values of one column
func (f *Frame) Column(name string) ([]interface{}, bool) {
	vals, ok := f.values[name]
	if !ok {
		return nil, false
	}
	return append([]interface{}(nil), vals...), true
}

// SetColumn replaces the values of an existing column
func (f *Frame) SetColumn(name string, vals []interface{}) error {
	if !f.HasColumn(name) {
		return errors.NewUnknownColumn(name)
	}
	if len(vals) != f.Len() {
		return fmt.Errorf("column %q: got %d values, frame has %d rows", name, len(vals), f.Len())
	}
	f.values[name] = append([]interface{}(nil), vals...)
	return nil
}

// Row returns the i-th row
func (f *Frame) Row(i int) Row {
	row := NewRow(make(map[string]interface{}, len(f.columns)))
	if f.index != nil {
		row.Label = f.index[i]
	}
	for _, c := range f.columns {
		row.Data[c] = f.values[c][i]
	}
	return row
}

// Rows returns every row in order
func (f *Frame) Rows() []Row {
	rows := make([]Row, f.Len())
	for i := range rows {
		rows[i] = f.Row(i)
	}
	return rows
}

func (f *Frame) position(label string) (int, bool) {
	for i, l := range f.index {
		if l == label {
			return i, true
		}
	}
	return -1, false
}

// Loc returns the cell addressed by row label and column
func (f *Frame) Loc(label, column string) (interface{}, error) {
	pos, ok := f.position(label)
	if !ok {
		return nil, &errors.KeyError{Column: label, Reason: "unknown row label"}
	}
	vals, ok := f.values[column]
	if !ok {
		return nil, errors.NewUnknownPath(label, column)
	}
	return vals[pos], nil
}

// SetLoc overwrites the cell addressed by row label and column
func (f *Frame) SetLoc(label, column string, value interface{}) error {
	pos, ok := f.position(label)
	if !ok {
		return &errors.KeyError{Column: label, Reason: "unknown row label"}
	}
	vals, ok := f.values[column]
	if !ok {
		return errors.NewUnknownPath(label, column)
	}
	vals[pos] = value
	return nil
}

// Copy returns a deep copy of the frame structure (cells are copied by value)
func (f *Frame) Copy() *Frame {
	out := &Frame{
		columns: append([]string(nil), f.columns...),
		values:  make(map[string][]interface{}, len(f.values)),
	}
	if f.index != nil {
		out.index = append([]string(nil), f.index...)
	}
	for k, v := range f.values {
		out.values[k] = append([]interface{}(nil), v...)
	}
	return out
}

// Equal reports whether both frames have the same columns, labels and
// cells, including the dynamic type of every cell
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	if !reflect.DeepEqual(f.columns, o.columns) {
		return false
	}
	if !reflect.DeepEqual(f.index, o.index) {
		return false
	}
	return reflect.DeepEqual(f.values, o.values)
}

// String renders the frame as an aligned text table
func (f *Frame) String() string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	header := append([]string{""}, f.columns...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i := 0; i < f.Len(); i++ {
		cells := make([]string, 0, len(f.columns)+1)
		if f.index != nil {
			cells = append(cells, f.index[i])
		} else {
			cells = append(cells, fmt.Sprint(i))
		}
		for _, c := range f.columns {
			cells = append(cells, formatCell(f.values[c][i]))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	tw.Flush()
	return sb.String()
}

func formatCell(v interface{}) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}
