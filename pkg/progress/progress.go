// Package progress defines the optional progress sink long-running
// operations report to.
package progress

import "sync"

// Kind distinguishes a section title from a content line
type Kind int

const (
	KindContent Kind = iota
	KindTitle
)

// Update is one progress notification
type Update struct {
	Kind Kind
	Data string
}

// Reporter receives progress updates. Implementations must be safe for
// concurrent use; parallel package runs share one reporter.
type Reporter interface {
	Report(Update)
}

// Title reports a section title. A nil reporter is ignored.
func Title(r Reporter, title string) {
	if r != nil {
		r.Report(Update{Kind: KindTitle, Data: title})
	}
}

// Message reports a content line. A nil reporter is ignored.
func Message(r Reporter, msg string) {
	if r != nil {
		r.Report(Update{Kind: KindContent, Data: msg})
	}
}

// Func adapts a function to a Reporter
type Func func(Update)

func (f Func) Report(u Update) { f(u) }

// Nop discards every update
var Nop Reporter = Func(func(Update) {})

// Recorder keeps every update in order
type Recorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *Recorder) Report(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

// Updates returns a copy of everything recorded so far
func (r *Recorder) Updates() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Update(nil), r.updates...)
}

// Messages returns the content lines recorded so far
func (r *Recorder) Messages() []string {
	var out []string
	for _, u := range r.Updates() {
		if u.Kind == KindContent {
			out = append(out, u.Data)
		}
	}
	return out
}
