package message

import "github.com/robinovitch61/uiscroll/internal/eventbus"

type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }

// EngineEventMsg carries an event published by the scroll workflow into the bubbletea program
type EngineEventMsg struct {
	Event eventbus.Event
}

// EngineStoppedMsg is sent once the scroll workflow's Run returns
type EngineStoppedMsg struct {
	Err error
}

type TickMsg struct{}

// CleanupCompleteMsg is sent once the workflow stopped after the user quit
type CleanupCompleteMsg struct{}

// ScrolledMsg is sent when the user moved the viewport
type ScrolledMsg struct {
	Offset int
}
