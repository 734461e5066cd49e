package internal

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/robinovitch61/uiscroll/internal/command"
	"github.com/robinovitch61/uiscroll/internal/constants"
	"github.com/robinovitch61/uiscroll/internal/dev"
	"github.com/robinovitch61/uiscroll/internal/eventbus"
	"github.com/robinovitch61/uiscroll/internal/filter"
	"github.com/robinovitch61/uiscroll/internal/message"
	"github.com/robinovitch61/uiscroll/internal/scroll"
	"github.com/robinovitch61/uiscroll/internal/source"
	"github.com/robinovitch61/uiscroll/internal/style"
	"github.com/robinovitch61/uiscroll/internal/viewport"
)

var engineEventTypes = []string{
	scroll.EventCycleStarted,
	scroll.EventRendered,
	scroll.EventFetchFailed,
	scroll.EventIdle,
	scroll.EventHalted,
}

func initializedModel(m Model) (Model, tea.Cmd, error) {
	dev.Debug("initializing")
	defer dev.Debug("done initializing")
	dev.Debug("------------")
	style.DebugColors()

	ds, closeSource, err := openDatasource(m.config)
	if err != nil {
		return m, nil, err
	}
	m.closeSource = closeSource

	m.log, m.flushLog = dev.Logger()
	m.bus = eventbus.New(m.log.WithName("eventbus"))
	m.events = make(chan eventbus.Event, constants.EventBufferSize)
	for _, t := range engineEventTypes {
		m.unsubscribe = append(m.unsubscribe, m.bus.Subscribe(t, forwardTo(m.events)))
	}

	m.filter = filter.New(m.keyMap)
	m.viewport = viewport.New[string](m.width, m.contentHeight(), viewport.DefaultKeyMap(), renderItem)
	m.viewport.FooterStyle = style.ViewportFooterStyle
	m.viewport.SetHorizontal(m.config.Settings.Horizontal)

	m.workflow, err = scroll.New[string](
		ds,
		m.viewport,
		m.config.Settings,
		scroll.WithLogger(m.log),
		scroll.WithPublisher(m.bus),
	)
	if err != nil {
		_ = closeSource()
		return m, nil, err
	}
	m.snapshot = m.workflow.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	stopped := make(chan struct{})
	m.stopped = stopped
	wf := m.workflow
	run := func(ctx context.Context) error {
		defer close(stopped)
		return wf.Run(ctx)
	}

	m.initialized = true
	return m, tea.Batch(createInitialCommands(ctx, m, run)...), nil
}

func createInitialCommands(ctx context.Context, m Model, run func(context.Context) error) []tea.Cmd {
	return []tea.Cmd{
		command.RunWorkflowCmd(ctx, run),
		command.WaitForEngineEventCmd(m.events),
		tea.Tick(constants.StatusRefreshInterval, func(time.Time) tea.Msg { return message.TickMsg{} }),
	}
}

func openDatasource(c Config) (scroll.Datasource[string], func() error, error) {
	noop := func() error { return nil }
	switch c.Source {
	case SourceStream:
		return scroll.FromStream[string](&source.Stream{
			Namespace: uuid.NewSHA1(uuid.NameSpaceURL, []byte("uiscroll")),
			Max:       c.Last,
			Latency:   c.Latency,
		}), noop, nil
	case SourceFile:
		lines, err := source.OpenLines(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return scroll.FromFuture[string](lines), lines.Close, nil
	default:
		return scroll.FromCallback[string](&source.Numbers{
			Min:         c.Settings.MinIndex,
			Max:         c.Last,
			Latency:     c.Latency,
			FailureRate: c.FailureRate,
		}), noop, nil
	}
}

// forwardTo hands bus events to the bubbletea program, dropping them when it falls behind
func forwardTo(events chan<- eventbus.Event) eventbus.Handler {
	return func(e eventbus.Event) {
		select {
		case events <- e:
		default:
			dev.Debug("dropping engine event " + e.Type())
		}
	}
}

func renderItem(item scroll.Item[string]) string {
	return item.Data
}
