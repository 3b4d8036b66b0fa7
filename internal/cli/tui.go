package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/biofabric/biofabric/pkg/progress"
)

// =============================================================================
// progressModel - interactive progress view for long-running operations
// =============================================================================

// progressMsg carries a step update from the bound Monitor into the
// bubbletea event loop. progress.Monitor calls OnProgress from whatever
// goroutine is running the layout/alignment; the message is how that
// crosses into the single-goroutine tea.Program.
type progressMsg struct {
	done, total int
}

// doneMsg signals the watched operation finished, successfully or not.
type doneMsg struct {
	err error
}

// progressModel renders a bar and step count for one long-running
// operation (node layout, edge layout, alignment merge, cycle
// detection), driven by progress updates pushed through a channel
// bridge rather than polled.
type progressModel struct {
	label    string
	done     int
	total    int
	updates  <-chan progressMsg
	result   <-chan doneMsg
	err      error
	finished bool
	width    int
}

// channelReporter is a progress.Reporter that forwards every update to
// a progressModel over a channel, so the tea.Program's own goroutine
// stays the only one touching model state.
type channelReporter struct {
	updates chan<- progressMsg
}

// OnProgress implements progress.Reporter.
func (r channelReporter) OnProgress(done, total int) {
	select {
	case r.updates <- progressMsg{done: done, total: total}:
	default:
	}
}

// newProgressModel wires mon to a fresh progressModel: the returned
// model receives every OnProgress call mon makes for the rest of its
// life. Send a doneMsg on the returned channel when the long-running
// operation returns, so the program can exit.
func newProgressModel(label string, mon *progress.Monitor) (progressModel, chan<- doneMsg) {
	updates := make(chan progressMsg, 64)
	result := make(chan doneMsg, 1)
	mon.SetReporter(channelReporter{updates: updates})
	return progressModel{
		label:   label,
		total:   0,
		updates: updates,
		result:  result,
		width:   40,
	}, result
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), waitForDone(m.result))
}

func waitForUpdate(updates <-chan progressMsg) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return u
	}
}

func waitForDone(result <-chan doneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-result
	}
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case progressMsg:
		m.done, m.total = msg.done, msg.total
		return m, waitForUpdate(m.updates)
	case doneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
		if pct > 1 {
			pct = 1
		}
	}
	filled := int(pct * float64(m.width))
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", m.width-filled)

	label := StyleDim.Render(m.label)
	count := ""
	if m.total > 0 {
		count = fmt.Sprintf(" %d/%d", m.done, m.total)
	}
	return fmt.Sprintf("%s [%s]%s\n", label, lipgloss.NewStyle().Foreground(colorCyan).Render(bar), StyleDim.Render(count))
}

// runWithProgress runs op, driving a progressModel off mon's reports
// until op returns. Used by commands whose underlying operation can
// run long enough that a bare spinner's lack of percent-complete
// feedback would be confusing — large-network layout and alignment.
func runWithProgress(label string, mon *progress.Monitor, op func() error) error {
	model, done := newProgressModel(label, mon)
	program := tea.NewProgram(model)

	opErr := make(chan error, 1)
	go func() {
		err := op()
		done <- doneMsg{err: err}
		opErr <- err
	}()

	if _, err := program.Run(); err != nil {
		<-opErr
		return err
	}
	return <-opErr
}
