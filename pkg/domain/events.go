package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventAction  EventType = "action"
	EventPresent EventType = "present"
	EventDismiss EventType = "dismiss"
	EventDrop    EventType = "drop"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// ActionEvent reports a committed transition.
type ActionEvent struct {
	EventBase
	Action   string `json:"action"`
	Contacts int    `json:"contacts"`
	Effects  int    `json:"effects,omitempty"`
}

// DestinationEvent reports an overlay being presented or dismissed.
type DestinationEvent struct {
	EventBase
	From DestinationKind `json:"from"`
	To   DestinationKind `json:"to"`
}

// LifecycleHooks defines callbacks for store observability.
// Every field is optional.
type LifecycleHooks struct {
	OnAction  func(context.Context, *ActionEvent)
	OnPresent func(context.Context, *DestinationEvent)
	OnDismiss func(context.Context, *DestinationEvent)
	// OnDrop fires when an action left the state unchanged (e.g. a stale routed action).
	OnDrop func(context.Context, *ActionEvent)
}
