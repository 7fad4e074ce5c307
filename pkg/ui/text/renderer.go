// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/apkren/pkg/style"
	"github.com/arthur-debert/apkren/pkg/ui/display"
	"gopkg.in/yaml.v3"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult prints a view's lines with markup removed. Other values
// are printed as YAML.
func (r *Renderer) RenderResult(result interface{}) error {
	view, ok := result.(display.View)
	if !ok {
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}
	for _, line := range view.Lines() {
		if _, err := fmt.Fprintln(r.output, style.Strip(line)); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Strip(msg))
	return err
}
