// Package ui provides a unified interface for rendering output in different formats.
// It supports terminal (rich), text (plain) and structured (JSON, YAML, TOML) output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/apkren/pkg/ui/structured"
	"github.com/arthur-debert/apkren/pkg/ui/terminal"
	"github.com/arthur-debert/apkren/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a display view or any serializable value
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		// If not a file, default to plain text
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return structured.New(output, structured.JSON), nil
	case FormatYAML:
		return structured.New(output, structured.YAML), nil
	case FormatTOML:
		return structured.New(output, structured.TOML), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
