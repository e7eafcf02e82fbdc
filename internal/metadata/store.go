package metadata

import (
	"fmt"

	"github.com/leengari/metaframe/internal/domain/errors"
	"github.com/leengari/metaframe/internal/domain/schema"
)

// Store holds the canonical per-column metadata and the single pending
// edit layered over it
type Store struct {
	source    string
	order     []string
	canonical map[string]schema.Attributes
	log       *ChangeLog
}

// NewStore copies the schema's attribute records into a fresh store
func NewStore(s *schema.Schema) *Store {
	st := &Store{
		source:    s.Source,
		order:     s.Names(),
		canonical: make(map[string]schema.Attributes, len(s.Columns)),
		log:       NewChangeLog(),
	}
	for _, c := range s.Columns {
		st.canonical[c.Name] = c.Attributes.Clone()
	}
	return st
}

// Columns returns the column names the store was built with
func (st *Store) Columns() []string {
	return append([]string(nil), st.order...)
}

// Record returns a copy of a column's canonical attribute record
func (st *Store) Record(column string) (schema.Attributes, error) {
	attrs, ok := st.canonical[column]
	if !ok {
		return nil, errors.NewUnknownColumn(column)
	}
	return attrs.Clone(), nil
}

// Committed returns the canonical value, ignoring any pending edit
func (st *Store) Committed(column, path string) (interface{}, error) {
	attrs, ok := st.canonical[column]
	if !ok {
		return nil, errors.NewUnknownColumn(column)
	}
	if _, err := schema.SplitPath(path); err != nil {
		return nil, &errors.KeyError{Column: column, Path: path, Reason: err.Error()}
	}
	v, ok := attrs.Leaf(path)
	if !ok {
		return nil, errors.NewUnknownPath(column, path)
	}
	return schema.CloneValue(v), nil
}

// Get returns the effective value: the pending value when the pending
// edit targets this cell, the canonical value otherwise
func (st *Store) Get(column, path string) (interface{}, error) {
	v, err := st.Committed(column, path)
	if err != nil {
		return nil, err
	}
	if edit, ok := st.log.Pending(); ok && edit.Column == column && edit.Path == path {
		return schema.CloneValue(edit.New), nil
	}
	return v, nil
}

// Set records a pending edit. Canonical metadata is untouched until Commit.
func (st *Store) Set(column, path string, value interface{}) (Edit, error) {
	old, err := st.Committed(column, path)
	if err != nil {
		return Edit{}, err
	}

	if path == schema.PathName {
		return Edit{}, &errors.KeyError{Column: column, Path: path, Reason: "column identity is read-only"}
	}

	value, err = normalizeValue(column, path, value)
	if err != nil {
		return Edit{}, err
	}

	return st.log.Begin(column, path, old, schema.CloneValue(value))
}

// Commit makes the pending edit canonical
func (st *Store) Commit() (Edit, error) {
	edit, ok := st.log.Pending()
	if !ok {
		return Edit{}, errors.NewNothingPending("upgrade")
	}

	if err := st.canonical[edit.Column].Assign(edit.Path, schema.CloneValue(edit.New)); err != nil {
		return Edit{}, fmt.Errorf("failed to commit edit %s: %w", edit.ID, err)
	}

	return st.log.Resolve("upgrade", EditCommitted)
}

// Rollback discards the pending edit and returns it
func (st *Store) Rollback() (Edit, error) {
	return st.log.Resolve("revert", EditReverted)
}

// Pending returns the outstanding edit, if any
func (st *Store) Pending() (Edit, bool) {
	return st.log.Pending()
}

// History returns every edit made against the store, oldest first
func (st *Store) History() []Edit {
	return st.log.Entries()
}

// Schema returns the canonical metadata as a schema, in column order
func (st *Store) Schema() *schema.Schema {
	s := &schema.Schema{
		Source:  st.source,
		Columns: make([]schema.Column, 0, len(st.order)),
	}
	for _, name := range st.order {
		s.Columns = append(s.Columns, schema.Column{
			Name:       name,
			Attributes: st.canonical[name].Clone(),
		})
	}
	return s
}

func normalizeValue(column, path string, value interface{}) (interface{}, error) {
	if path != schema.PathLogicalType {
		return value, nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case schema.LogicalType:
		s = string(v)
	default:
		return nil, &errors.ValueError{Column: column, Path: path, Value: value, Reason: fmt.Sprintf("expected a logical type name, got %T", value)}
	}

	if _, ok := schema.ParseLogicalType(s); !ok {
		return nil, &errors.ValueError{Column: column, Path: path, Value: value, Reason: "unknown logical type"}
	}
	return s, nil
}
