package feedback

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/credit-entry-cli/internal/ports"
)

type Options struct {
	// Animate shows a spinner while busy instead of a single status line.
	Animate bool
	// Quiet suppresses toasts and errors, for machine-readable output.
	Quiet bool
}

// Terminal writes feedback to a terminal: toasts to out, errors, notices and
// busy state to errOut.
type Terminal struct {
	out    io.Writer
	errOut io.Writer
	opts   Options
	styles styles

	mu        sync.Mutex
	busy      *busyIndicator
	lastError string
}

var _ ports.Feedback = (*Terminal)(nil)

func NewTerminal(out io.Writer, errOut io.Writer, opts Options) *Terminal {
	return &Terminal{
		out:    out,
		errOut: errOut,
		opts:   opts,
		styles: newStyles(),
	}
}

func (t *Terminal) SetBusy(busy bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !busy {
		if t.busy != nil {
			t.busy.stop()
			t.busy = nil
		}
		return
	}

	if t.opts.Quiet || t.busy != nil {
		return
	}
	if t.opts.Animate {
		t.busy = startBusyIndicator(t.errOut, t.styles)
		return
	}
	_, _ = fmt.Fprintln(t.errOut, t.styles.busy.Render(busyLabel))
}

// ShowError prints message; an empty message clears the error region, which
// on a terminal only forgets it.
func (t *Terminal) ShowError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastError = message
	if message == "" || t.opts.Quiet {
		return
	}
	_, _ = fmt.Fprintln(t.errOut, renderError(message, t.styles))
}

func (t *Terminal) ShowToast(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.opts.Quiet {
		return
	}
	_, _ = fmt.Fprintln(t.out, renderToast(message, t.styles))
}

// ShowNotice prints a persistent notice such as a missing endpoint.
func (t *Terminal) ShowNotice(message string) {
	if message == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintln(t.errOut, renderNotice(message, t.styles))
}

// LastError returns the message currently held in the error region.
func (t *Terminal) LastError() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.lastError
}
