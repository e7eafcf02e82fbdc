package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leengari/metaframe/internal/domain/data"
	"github.com/leengari/metaframe/internal/domain/errors"
	"github.com/leengari/metaframe/internal/domain/schema"
	"github.com/leengari/metaframe/internal/storage/loader"
)

// UpdateOptions controls how Update attaches a schema to a data table
type UpdateOptions struct {
	Inplace bool // keep the caller's frame instead of working on a copy
	Verbose bool // log the attach summary at Info rather than Debug
}

// Metadata ties a data table to the metadata derived from its schema
type Metadata struct {
	logger    *slog.Logger
	observers []Observer

	store *Store
	view  *View
	data  *data.Frame
	opts  UpdateOptions
}

// Option configures a Metadata
type Option func(*Metadata)

// WithLogger sets the logger; the default is slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(m *Metadata) {
		m.logger = logger
	}
}

// WithObserver subscribes an observer at construction
func WithObserver(o Observer) Option {
	return func(m *Metadata) {
		m.observers = append(m.observers, o)
	}
}

// New creates an empty Metadata; call Update before anything else
func New(opts ...Option) *Metadata {
	m := &Metadata{
		logger:    slog.Default(),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddObserver subscribes an observer to lifecycle events
func (m *Metadata) AddObserver(o Observer) {
	m.observers = append(m.observers, o)
}

// RemoveObserver unsubscribes an observer
func (m *Metadata) RemoveObserver(o Observer) {
	for i, obs := range m.observers {
		if obs == o {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

func (m *Metadata) notify(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	for _, o := range m.observers {
		o.OnEvent(event)
	}
}

// Update loads the schema at schemaPath and attaches it to frame
func (m *Metadata) Update(frame *data.Frame, schemaPath string, opts UpdateOptions) error {
	var logger *slog.Logger
	if opts.Verbose {
		logger = m.logger
	}
	s, err := loader.LoadSchemaFile(schemaPath, logger)
	if err != nil {
		return err
	}
	return m.UpdateSchema(frame, s, opts)
}

// UpdateSchema attaches an already loaded schema to frame. The schema's
// column names must equal the frame's column names.
func (m *Metadata) UpdateSchema(frame *data.Frame, s *schema.Schema, opts UpdateOptions) error {
	if frame == nil {
		return fmt.Errorf("cannot attach metadata to a nil frame")
	}
	if s == nil {
		return fmt.Errorf("cannot attach a nil schema")
	}

	if err := checkColumns(frame, s); err != nil {
		return err
	}

	working := frame
	if !opts.Inplace {
		working = frame.Copy()
	}

	st := NewStore(s)
	view, err := newView(m, st)
	if err != nil {
		return fmt.Errorf("failed to build metadata view: %w", err)
	}

	if m.store != nil {
		if edit, ok := m.store.Pending(); ok {
			m.logger.Warn("discarding pending edit on update",
				"edit_id", edit.ID,
				"column", edit.Column,
				"path", edit.Path,
			)
		}
	}

	m.store = st
	m.view = view
	m.data = working
	m.opts = opts

	level := slog.LevelDebug
	if opts.Verbose {
		level = slog.LevelInfo
	}
	m.logger.Log(context.Background(), level, "metadata attached",
		"source", s.Source,
		"columns", len(s.Columns),
		"rows", working.Len(),
		"inplace", opts.Inplace,
	)

	m.notify(Event{Type: EventUpdate, Data: len(s.Columns)})
	return nil
}

func checkColumns(frame *data.Frame, s *schema.Schema) error {
	for _, c := range frame.Columns() {
		if _, ok := s.Column(c); !ok {
			return &errors.KeyError{Column: c, Reason: "data column missing from schema"}
		}
	}
	seen := make(map[string]bool, len(s.Columns))
	for _, c := range s.Names() {
		if seen[c] {
			return &errors.KeyError{Column: c, Reason: "duplicate schema column"}
		}
		seen[c] = true
		if !frame.HasColumn(c) {
			return &errors.KeyError{Column: c, Reason: "schema column missing from data"}
		}
	}
	return nil
}

func (m *Metadata) ready(op string) error {
	if m.store == nil {
		return &errors.StateError{Op: op, Reason: "no schema attached; call Update first"}
	}
	return nil
}

// View returns the metadata view
func (m *Metadata) View() *View {
	return m.view
}

// Data returns the data table the metadata is attached to
func (m *Metadata) Data() *data.Frame {
	return m.data
}

// Store returns the underlying metadata store
func (m *Metadata) Store() *Store {
	return m.store
}

// Columns returns the metadata keys, which equal the data column names
func (m *Metadata) Columns() []string {
	if m.store == nil {
		return nil
	}
	return m.store.Columns()
}

// Get returns the effective value of a column attribute
func (m *Metadata) Get(column, path string) (interface{}, error) {
	if err := m.ready("get"); err != nil {
		return nil, err
	}
	return m.store.Get(column, path)
}

// Set records a pending edit and reflects it in the view
func (m *Metadata) Set(column, path string, value interface{}) error {
	if err := m.ready("set"); err != nil {
		return err
	}

	edit, err := m.store.Set(column, path, value)
	if err != nil {
		return err
	}
	if err := m.view.write(column, path, schema.CloneValue(edit.New)); err != nil {
		return fmt.Errorf("failed to update view: %w", err)
	}

	m.logger.Debug("metadata edit pending",
		"edit_id", edit.ID,
		"column", column,
		"path", path,
		"old", edit.Old,
		"new", edit.New,
	)
	m.notify(Event{Type: EventSet, EditID: edit.ID, Column: column, Path: path, Data: edit.New})
	return nil
}

// Upgrade commits the pending edit. A logical type change also converts
// the data column; if that conversion fails nothing is committed and the
// edit stays pending.
func (m *Metadata) Upgrade() error {
	if err := m.ready("upgrade"); err != nil {
		return err
	}

	pending, ok := m.store.Pending()
	if !ok {
		return errors.NewNothingPending("upgrade")
	}

	var converted []interface{}
	if pending.Path == schema.PathLogicalType {
		target := schema.LogicalType(pending.New.(string))
		vals, _ := m.data.Column(pending.Column)
		cast, err := castColumn(pending.Column, vals, target)
		if err != nil {
			return fmt.Errorf("upgrade of %s aborted: %w", pending.Column, err)
		}
		converted = cast
	}

	edit, err := m.store.Commit()
	if err != nil {
		return err
	}
	if converted != nil {
		if err := m.data.SetColumn(edit.Column, converted); err != nil {
			return fmt.Errorf("failed to write converted column: %w", err)
		}
	}

	level := slog.LevelDebug
	if m.opts.Verbose {
		level = slog.LevelInfo
	}
	m.logger.Log(context.Background(), level, "metadata edit committed",
		"edit_id", edit.ID,
		"column", edit.Column,
		"path", edit.Path,
		"value", edit.New,
	)
	m.notify(Event{Type: EventUpgrade, EditID: edit.ID, Column: edit.Column, Path: edit.Path, Data: edit.New})
	return nil
}

// Revert discards the pending edit, restoring metadata and view
func (m *Metadata) Revert() error {
	if err := m.ready("revert"); err != nil {
		return err
	}

	edit, err := m.store.Rollback()
	if err != nil {
		return err
	}
	if err := m.view.write(edit.Column, edit.Path, schema.CloneValue(edit.Old)); err != nil {
		return fmt.Errorf("failed to restore view: %w", err)
	}

	m.logger.Debug("metadata edit reverted",
		"edit_id", edit.ID,
		"column", edit.Column,
		"path", edit.Path,
		"restored", edit.Old,
	)
	m.notify(Event{Type: EventRevert, EditID: edit.ID, Column: edit.Column, Path: edit.Path, Data: edit.Old})
	return nil
}

// Schema returns the canonical metadata as a schema
func (m *Metadata) Schema() (*schema.Schema, error) {
	if err := m.ready("schema"); err != nil {
		return nil, err
	}
	return m.store.Schema(), nil
}

// History returns every edit made since the last Update
func (m *Metadata) History() []Edit {
	if m.store == nil {
		return nil
	}
	return m.store.History()
}
