package metadata

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestAddObserver(t *testing.T) {
	m := New()
	observer := &recordingObserver{}

	m.AddObserver(observer)

	if len(m.observers) != 1 {
		t.Errorf("Expected 1 observer, got %d", len(m.observers))
	}
}

func TestRemoveObserver(t *testing.T) {
	m := New()
	observer := &recordingObserver{}

	m.AddObserver(observer)
	m.RemoveObserver(observer)

	if len(m.observers) != 0 {
		t.Errorf("Expected 0 observers, got %d", len(m.observers))
	}
}

func TestNotifyWithNoObservers(t *testing.T) {
	m := New()

	// Should not panic
	m.notify(Event{Type: EventSet, EditID: "test-edit"})
}

func TestNotifySetsTimestamp(t *testing.T) {
	m := New()
	observer := &recordingObserver{}
	m.AddObserver(observer)

	m.notify(Event{Type: EventRevert})

	if observer.events[0].Timestamp.IsZero() {
		t.Error("Expected timestamp to be set, got zero value")
	}
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	lo := NewLoggingObserver(logger)
	lo.OnEvent(Event{Type: EventUpgrade, EditID: "e-1", Column: "a", Path: "type.logical_type", Data: "float"})

	out := buf.String()
	assert.Assert(t, strings.Contains(out, "metadata_lifecycle"))
	assert.Assert(t, strings.Contains(out, "event=upgrade"))
	assert.Assert(t, strings.Contains(out, "column=a"))
	assert.Assert(t, strings.Contains(out, "data=float"))

	assert.Assert(t, NewLoggingObserver(nil).logger != nil)
}
