package foldership

import (
	"time"

	"github.com/bft-labs/foldership/internal/app"
)

// State is the lifecycle state of an instance.
type State = app.State

const (
	StateStopped  = app.StateStopped
	StateStarting = app.StateStarting
	StateRunning  = app.StateRunning
	StateStopping = app.StateStopping
	StateCrashed  = app.StateCrashed
)

// LoopState is the state of the watch loop.
type LoopState = app.LoopState

const (
	LoopIdle       = app.LoopIdle
	LoopProcessing = app.LoopProcessing
	LoopSleeping   = app.LoopSleeping
	LoopStopped    = app.LoopStopped
)

// Stats is a snapshot of loop counters.
type Stats = app.Snapshot

// StateChangeEvent reports a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// LoopStateEvent reports a watch loop transition.
type LoopStateEvent struct {
	Previous LoopState
	Current  LoopState
}

// DeliveryEvent reports the outcome of one delivery attempt.
type DeliveryEvent struct {
	ID       string
	Path     string
	SubUnit  string
	Duration time.Duration
	Err      error
}

// CleanupEvent reports the outcome of removing a sub-unit.
type CleanupEvent struct {
	SubUnit string
	Path    string
	Removed bool
	Err     error
}

// EventHandler receives events. Calls are synchronous; handlers must
// return quickly and must not call Start, Stop or Done.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnLoopState(event LoopStateEvent)
	OnDelivery(event DeliveryEvent)
	OnCleanup(event CleanupEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to
// override only the events of interest.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnLoopState(LoopStateEvent)     {}
func (BaseEventHandler) OnDelivery(DeliveryEvent)       {}
func (BaseEventHandler) OnCleanup(CleanupEvent)         {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{Previous: previous, Current: current, Reason: reason})
}

func (e *eventEmitterWrapper) OnLoopState(previous, current app.LoopState) {
	if e.handler == nil {
		return
	}
	e.handler.OnLoopState(LoopStateEvent{Previous: previous, Current: current})
}

func (e *eventEmitterWrapper) OnDelivery(r app.DeliveryResult) {
	if e.handler == nil {
		return
	}
	e.handler.OnDelivery(DeliveryEvent{
		ID:       r.Delivery.ID,
		Path:     r.Delivery.Path,
		SubUnit:  string(r.Delivery.SubUnit),
		Duration: r.Duration,
		Err:      r.Err,
	})
}

func (e *eventEmitterWrapper) OnCleanup(r app.CleanupResult) {
	if e.handler == nil {
		return
	}
	e.handler.OnCleanup(CleanupEvent{
		SubUnit: string(r.SubUnit),
		Path:    r.Path,
		Removed: r.Removed,
		Err:     r.Err,
	})
}
