// ABOUTME: Tests for the goldmark preview renderer.
// ABOUTME: Checks GFM task lists and autolinks.

package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewRendererGFM(t *testing.T) {
	p := NewPreviewRenderer()

	out, err := p.Render("- [x] done\n- [ ] open\n\nsee https://example.com")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `type="checkbox"`)
	assert.Contains(t, html, `<a href="https://example.com">`)
}

func TestPreviewRendererEmpty(t *testing.T) {
	out, err := NewPreviewRenderer().Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
