package apkren

import (
	"io"
	"sync"

	"github.com/arthur-debert/apkren/pkg/progress"
	"github.com/pterm/pterm"
)

// spinnerReporter shows the latest progress update on a pterm spinner.
// Parallel packages share it, so updates are serialized.
type spinnerReporter struct {
	mu      sync.Mutex
	once    sync.Once
	spinner *pterm.SpinnerPrinter
	title   string
}

// newProgressReporter returns a spinner on w when w is a terminal, and
// progress.Nop otherwise. The returned stop func may be called repeatedly.
func newProgressReporter(w io.Writer) (progress.Reporter, func()) {
	if !isTerminal(w) {
		return progress.Nop, func() {}
	}
	spinner, err := pterm.DefaultSpinner.WithWriter(w).WithRemoveWhenDone(true).Start("Starting")
	if err != nil {
		return progress.Nop, func() {}
	}
	r := &spinnerReporter{spinner: spinner}
	return r, r.stop
}

func (r *spinnerReporter) Report(u progress.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch u.Kind {
	case progress.KindTitle:
		r.title = u.Data
		r.spinner.UpdateText(u.Data)
	default:
		if r.title != "" {
			r.spinner.UpdateText(r.title + ": " + u.Data)
			return
		}
		r.spinner.UpdateText(u.Data)
	}
}

func (r *spinnerReporter) stop() {
	r.once.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		_ = r.spinner.Stop()
	})
}
