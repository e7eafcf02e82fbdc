package metadata

import "time"

// EventType represents the lifecycle step that produced an event
type EventType string

const (
	EventUpdate  EventType = "update"
	EventSet     EventType = "set"
	EventUpgrade EventType = "upgrade"
	EventRevert  EventType = "revert"
)

// Event represents a metadata lifecycle event
type Event struct {
	Type      EventType   // Type of event
	EditID    string      // Edit the event belongs to (empty for update)
	Column    string      // Column involved (empty for update)
	Path      string      // Attribute path involved (empty for update)
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Step-specific data (column count, new value, restored value)
}

// Observer interface for event subscribers
type Observer interface {
	OnEvent(event Event)
}
