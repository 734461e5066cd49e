package scroll

// Event types published by a Workflow
const (
	EventCycleStarted = "scroll.cycle_started"
	EventRendered     = "scroll.rendered"
	EventFetchFailed  = "scroll.fetch_failed"
	EventIdle         = "scroll.idle"
	EventHalted       = "scroll.halted"
)

type CycleStartedEvent struct {
	WorkflowID string
	Cycle      int
	Direction  Direction
}

func (CycleStartedEvent) Type() string { return EventCycleStarted }

// RenderedEvent follows every render, after clipping
type RenderedEvent struct {
	WorkflowID string
	Cycle      int
	Direction  Direction
	Inserted   int
	Clipped    int
	Snapshot   Snapshot
}

func (RenderedEvent) Type() string { return EventRendered }

// FetchFailedEvent reports a rejected request. The cycle was aborted and the buffer is unchanged
type FetchFailedEvent struct {
	WorkflowID string
	Cycle      int
	Err        error
}

func (FetchFailedEvent) Type() string { return EventFetchFailed }

type IdleEvent struct {
	WorkflowID string
	Snapshot   Snapshot
}

func (IdleEvent) Type() string { return EventIdle }

// HaltedEvent is published once when the workflow stops because of a fatal error
type HaltedEvent struct {
	WorkflowID string
	Err        error
}

func (HaltedEvent) Type() string { return EventHalted }
