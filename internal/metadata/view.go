package metadata

import (
	"sort"

	"github.com/leengari/metaframe/internal/domain/data"
	"github.com/leengari/metaframe/internal/domain/schema"
)

// View is the metadata table exposed to callers: one row per data column
// (labelled by column name), one column per attribute path. Pending edits
// are visible in the view; Revert restores the cell they touched.
type View struct {
	owner *Metadata
	frame *data.Frame
}

func newView(owner *Metadata, st *Store) (*View, error) {
	columns := st.Columns()

	pathSet := make(map[string]bool)
	records := make(map[string]map[string]interface{}, len(columns))
	for _, c := range columns {
		rec, err := st.Record(c)
		if err != nil {
			return nil, err
		}
		flat := rec.Flatten()
		records[c] = flat
		for p := range flat {
			pathSet[p] = true
		}
	}

	paths := make([]string, 0, len(pathSet))
	for p := range pathSet {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	values := make(map[string][]interface{}, len(paths))
	for _, p := range paths {
		cells := make([]interface{}, len(columns))
		for i, c := range columns {
			cells[i] = records[c][p]
		}
		values[p] = cells
	}

	frame, err := data.NewFrame(paths, values)
	if err != nil {
		return nil, err
	}
	if err := frame.WithIndex(columns); err != nil {
		return nil, err
	}

	return &View{owner: owner, frame: frame}, nil
}

// Loc returns the value shown for (column, path), including a pending edit
func (v *View) Loc(column, path string) (interface{}, error) {
	if _, err := v.owner.store.Get(column, path); err != nil {
		return nil, err
	}
	cell, err := v.frame.Loc(column, path)
	if err != nil {
		return nil, err
	}
	return schema.CloneValue(cell), nil
}

// SetLoc records a pending edit and shows it in the view
func (v *View) SetLoc(column, path string, value interface{}) error {
	return v.owner.Set(column, path, value)
}

// Upgrade commits the pending edit
func (v *View) Upgrade() error {
	return v.owner.Upgrade()
}

// Revert discards the pending edit and restores the view
func (v *View) Revert() error {
	return v.owner.Revert()
}

// Frame returns a copy of the current view table
func (v *View) Frame() *data.Frame {
	return v.frame.Copy()
}

// Equal reports whether the view currently matches f exactly
func (v *View) Equal(f *data.Frame) bool {
	return v.frame.Equal(f)
}

// String renders the view as a text table
func (v *View) String() string {
	return v.frame.String()
}

func (v *View) write(column, path string, value interface{}) error {
	return v.frame.SetLoc(column, path, value)
}
