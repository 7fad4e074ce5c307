// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/apkren/pkg/style"
	"github.com/arthur-debert/apkren/pkg/ui/display"
	"github.com/arthur-debert/apkren/pkg/ui/text"
)

// Renderer styles view markup with lipgloss
type Renderer struct {
	output io.Writer
	plain  *text.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, plain: text.New(w)}
}

// RenderResult renders a view with styling; anything else falls back to
// the text renderer
func (r *Renderer) RenderResult(result interface{}) error {
	view, ok := result.(display.View)
	if !ok {
		return r.plain.RenderResult(result)
	}
	for _, line := range view.Lines() {
		if _, err := fmt.Fprintln(r.output, style.Render(line)); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, style.ErrorIndicator+" "+style.ErrorStyle.Render(err.Error()))
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Render(msg))
	return err
}
