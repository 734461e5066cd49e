package command

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robinovitch61/uiscroll/internal/eventbus"
	"github.com/robinovitch61/uiscroll/internal/message"
)

// WaitForEngineEventCmd delivers the next engine event forwarded from the event bus. Callers issue it again after
// every EngineEventMsg
func WaitForEngineEventCmd(events <-chan eventbus.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return message.EngineEventMsg{Event: e}
	}
}

// RunWorkflowCmd runs a workflow until it stops and reports why
func RunWorkflowCmd(ctx context.Context, run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return message.EngineStoppedMsg{Err: run(ctx)}
	}
}

// CleanupCmd disposes the workflow and waits up to timeout for it to stop
func CleanupCmd(dispose func(), stopped <-chan struct{}, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		dispose()
		select {
		case <-stopped:
		case <-time.After(timeout):
		}
		return message.CleanupCompleteMsg{}
	}
}
