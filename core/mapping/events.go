package mapping

import (
	"context"
	"time"
)

// EventType defines the event types emitted by the mapping service.
type EventType string

const (
	MappingCompileStart   EventType = "mapping:compile:start"
	MappingCompileSuccess EventType = "mapping:compile:success"
	MappingCompileFailed  EventType = "mapping:compile:failed"
	MappingDeleteSuccess  EventType = "mapping:delete:success"
	MappingDeleteFailed   EventType = "mapping:delete:failed"
)

// Event is emitted on the service bus around mapping operations.
type Event struct {
	Type         EventType     `json:"type"`
	Timestamp    int64         `json:"timestamp"` // Unix milliseconds.
	Index        string        `json:"index"`
	Version      string        `json:"version,omitempty"`
	Deprecations []Deprecation `json:"deprecations,omitempty"`
	Error        *string       `json:"error,omitempty"`
	Duration     *int64        `json:"duration,omitempty"` // Milliseconds.
}

// EventCallback handles one service event.
type EventCallback func(ctx context.Context, event Event) error

// SubscriptionInfo describes a registered event subscription.
type SubscriptionInfo struct {
	Id          *string   `json:"id,omitempty"`
	Event       EventType `json:"event"`
	Label       *string   `json:"label,omitempty"`
	Description *string   `json:"description,omitempty"`
	Unsubscribe func()    `json:"-"`
}

// SubscribeOptions configures an event subscription.
type SubscribeOptions struct {
	Event       EventType `json:"event"`
	Label       *string   `json:"label,omitempty"`
	Description *string   `json:"description,omitempty"`
	Callback    EventCallback
}

func newEvent(eventType EventType, index, version string, started time.Time) Event {
	duration := time.Since(started).Milliseconds()
	return Event{
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		Index:     index,
		Version:   version,
		Duration:  &duration,
	}
}
