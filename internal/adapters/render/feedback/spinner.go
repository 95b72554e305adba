package feedback

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const busyLabel = "Saving…"

type busyDoneMsg struct{}

type busyModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newBusyModel(label string, s styles) busyModel {
	return busyModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(s.busy),
		),
		label: label,
	}
}

func (m busyModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m busyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case busyDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m busyModel) View() string {
	if m.done {
		return ""
	}

	return m.spinner.View() + " " + m.label
}

// busyIndicator animates the spinner until stop is called.
type busyIndicator struct {
	program *tea.Program
	done    chan struct{}
}

func startBusyIndicator(output io.Writer, s styles) *busyIndicator {
	b := &busyIndicator{
		program: tea.NewProgram(
			newBusyModel(busyLabel, s),
			tea.WithInput(nil),
			tea.WithOutput(output),
		),
		done: make(chan struct{}),
	}

	go func() {
		defer close(b.done)
		_, _ = b.program.Run()
	}()

	return b
}

func (b *busyIndicator) stop() {
	b.program.Send(busyDoneMsg{})
	<-b.done
}
