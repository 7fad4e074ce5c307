// Package structured provides machine-readable JSON, YAML and TOML output
package structured

import (
	"encoding/json"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encoding selects the serialization
type Encoding int

const (
	JSON Encoding = iota
	YAML
	TOML
)

// Renderer encodes every result with one encoding
type Renderer struct {
	output   io.Writer
	encoding Encoding
}

// New creates a new structured renderer
func New(output io.Writer, encoding Encoding) *Renderer {
	return &Renderer{output: output, encoding: encoding}
}

// RenderResult encodes result
func (r *Renderer) RenderResult(result interface{}) error {
	switch r.encoding {
	case YAML:
		enc := yaml.NewEncoder(r.output)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		enc := toml.NewEncoder(r.output)
		enc.SetIndentTables(true)
		return enc.Encode(result)
	default:
		enc := json.NewEncoder(r.output)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
}

// RenderError encodes an error as {error: message}
func (r *Renderer) RenderError(err error) error {
	return r.RenderResult(map[string]string{"error": err.Error()})
}

// RenderMessage encodes a message as {message: text}
func (r *Renderer) RenderMessage(msg string) error {
	return r.RenderResult(map[string]string{"message": msg})
}
