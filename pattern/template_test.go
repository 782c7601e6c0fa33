package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngcore/netgraph/pattern"
)

func TestRenderNodeTemplate(t *testing.T) {
	assert.Equal(t, "leaf-1", pattern.RenderNodeTemplate("leaf-{n}", 1))
	assert.Equal(t, "leaf-007", pattern.RenderNodeTemplate("leaf-{n:03}", 7))
	assert.Equal(t, "leaf-3", pattern.RenderNodeTemplate("leaf-{index}", 3))
	assert.Equal(t, "fixed", pattern.RenderNodeTemplate("fixed", 5))
}

func TestHasNodeTemplatePlaceholder(t *testing.T) {
	assert.True(t, pattern.HasNodeTemplatePlaceholder("leaf-{n}"))
	assert.False(t, pattern.HasNodeTemplatePlaceholder("fixed"))
}
