package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "# Title", PlainRenderer{}.Render("# Title"))
}

func TestGlamourRendererNoTTY(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}
	out := r.Render("# Commands\n\nUse `mkdir`.")
	assert.Contains(t, out, "Commands")
	assert.Contains(t, out, "mkdir")
}

func TestFor(t *testing.T) {
	assert.IsType(t, PlainRenderer{}, For(false))
	assert.IsType(t, &GlamourRenderer{}, For(true))
}
