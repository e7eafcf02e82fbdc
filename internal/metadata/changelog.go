package metadata

import (
	"time"

	"github.com/google/uuid"

	"github.com/leengari/metaframe/internal/domain/errors"
)

// EditStatus is the outcome of a recorded edit
type EditStatus string

const (
	EditPending   EditStatus = "PENDING"
	EditCommitted EditStatus = "COMMITTED"
	EditReverted  EditStatus = "REVERTED"
)

// Edit is a single metadata mutation: one attribute of one column
type Edit struct {
	ID         string      // Unique edit identifier (UUID)
	Seq        uint64      // Position in the change log, starting at 1
	Column     string      // Column whose metadata changed
	Path       string      // Dotted attribute path, e.g. "type.logical_type"
	Old        interface{} // Canonical value before the edit
	New        interface{} // Value being applied
	Status     EditStatus
	CreatedAt  time.Time
	ResolvedAt time.Time // zero while pending
}

// ChangeLog records edits in the order they were made. At most one entry
// is pending, and it is always the last one.
type ChangeLog struct {
	entries []Edit
	nextSeq uint64
}

// NewChangeLog creates an empty change log
func NewChangeLog() *ChangeLog {
	return &ChangeLog{
		entries: make([]Edit, 0),
		nextSeq: 1,
	}
}

// Begin records a new pending edit
func (l *ChangeLog) Begin(column, path string, oldValue, newValue interface{}) (Edit, error) {
	if pending, ok := l.Pending(); ok {
		return Edit{}, &errors.StateError{
			Op:     "set",
			Reason: "edit " + pending.Column + "[" + pending.Path + "] is still pending; upgrade or revert it first",
		}
	}

	edit := Edit{
		ID:        uuid.New().String(),
		Seq:       l.nextSeq,
		Column:    column,
		Path:      path,
		Old:       oldValue,
		New:       newValue,
		Status:    EditPending,
		CreatedAt: time.Now(),
	}
	l.nextSeq++
	l.entries = append(l.entries, edit)
	return edit, nil
}

// Pending returns the outstanding edit, if any
func (l *ChangeLog) Pending() (Edit, bool) {
	if len(l.entries) == 0 {
		return Edit{}, false
	}
	last := l.entries[len(l.entries)-1]
	if last.Status != EditPending {
		return Edit{}, false
	}
	return last, true
}

// Resolve closes the pending edit with the given status
func (l *ChangeLog) Resolve(op string, status EditStatus) (Edit, error) {
	if _, ok := l.Pending(); !ok {
		return Edit{}, errors.NewNothingPending(op)
	}

	last := &l.entries[len(l.entries)-1]
	last.Status = status
	last.ResolvedAt = time.Now()
	return *last, nil
}

// Entries returns a copy of every recorded edit, oldest first
func (l *ChangeLog) Entries() []Edit {
	out := make([]Edit, len(l.entries))
	copy(out, l.entries)
	return out
}
