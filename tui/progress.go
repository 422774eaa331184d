// Package tui holds the terminal views: the batch progress display, the
// run summary and the interactive cut form.
package tui

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/video-clipper-cli/clip"
	"github.com/user/video-clipper-cli/tui/components"
)

const defaultWidth = 60

// BatchFunc runs a batch, reporting each finished outcome to onProgress.
type BatchFunc func(ctx context.Context, onProgress func(clip.Progress)) ([]clip.Outcome, error)

// progressMsg carries one finished outcome from the batch goroutine.
type progressMsg clip.Progress

// batchDoneMsg is sent once the batch returns.
type batchDoneMsg struct {
	outcomes []clip.Outcome
	err      error
}

// waitForMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// ProgressModel is the Bubbletea model shown while a batch runs.
type ProgressModel struct {
	state      components.ProgressState
	width      int
	ch         <-chan tea.Msg
	cancel     context.CancelFunc
	cancelling bool
	done       bool
	outcomes   []clip.Outcome
	err        error
}

// NewProgressModel returns a model reading batch messages from ch. cancel is
// called when the user interrupts.
func NewProgressModel(title string, ch <-chan tea.Msg, cancel context.CancelFunc) *ProgressModel {
	return &ProgressModel{
		state:  components.ProgressState{Title: title},
		width:  defaultWidth,
		ch:     ch,
		cancel: cancel,
	}
}

func (m *ProgressModel) Init() tea.Cmd {
	return waitForMsg(m.ch)
}

func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 100)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.cancelling {
				return m, tea.Quit
			}
			// in-flight cuts are killed through the context; wait for the batch to return
			m.cancelling = true
			m.state.Title = "Cancelling"
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case progressMsg:
		m.state.Total = msg.Total
		m.state.Done = msg.Done
		if msg.Outcome.OK() {
			m.state.Last = filepath.Base(msg.Outcome.OutputPath)
		} else {
			m.state.Failed++
			m.state.Last = clip.FailureMessage(msg.Outcome)
		}
		return m, waitForMsg(m.ch)

	case batchDoneMsg:
		m.done = true
		m.state.Finished = msg.err == nil && !m.cancelling
		m.outcomes, m.err = msg.outcomes, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *ProgressModel) View() string {
	return components.Progress(m.state, m.width) + "\n"
}

// RunBatch runs fn in the background while showing its progress. It returns
// fn's results; if the user quit before fn returned, it waits for fn first.
func RunBatch(ctx context.Context, title string, fn BatchFunc, opts ...tea.ProgramOption) ([]clip.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		outcomes []clip.Outcome
		batchErr error
	)
	ch := make(chan tea.Msg)
	go func() {
		defer close(ch)
		outcomes, batchErr = fn(ctx, func(p clip.Progress) { ch <- progressMsg(p) })
		ch <- batchDoneMsg{outcomes: outcomes, err: batchErr}
	}()

	model := NewProgressModel(title, ch, cancel)
	_, err := tea.NewProgram(model, opts...).Run()
	if !model.done {
		cancel()
		// a pending read from the program may still take one message
		for range ch {
		}
	}
	if err != nil {
		return outcomes, err
	}
	return outcomes, batchErr
}
