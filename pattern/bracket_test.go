package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/pattern"
)

func TestExpandBrackets_Range(t *testing.T) {
	out, err := pattern.ExpandBrackets("dc[1-3]")
	require.NoError(t, err)
	assert.Equal(t, []string{"dc1", "dc2", "dc3"}, out)
}

func TestExpandBrackets_List(t *testing.T) {
	out, err := pattern.ExpandBrackets("rack[a,b]")
	require.NoError(t, err)
	assert.Equal(t, []string{"racka", "rackb"}, out)
}

func TestExpandBrackets_MultipleBracketsCartesianLeftToRight(t *testing.T) {
	out, err := pattern.ExpandBrackets("dc[1-2]/rack[a,b]")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"dc1/racka", "dc1/rackb",
		"dc2/racka", "dc2/rackb",
	}, out)
}

func TestExpandBrackets_NoTokensIsLiteral(t *testing.T) {
	out, err := pattern.ExpandBrackets("pod1/leaf/leaf-3")
	require.NoError(t, err)
	assert.Equal(t, []string{"pod1/leaf/leaf-3"}, out)
}

func TestExpandBrackets_Idempotent(t *testing.T) {
	out, err := pattern.ExpandBrackets("dc1/rackb")
	require.NoError(t, err)
	assert.Equal(t, []string{"dc1/rackb"}, out)
	assert.True(t, pattern.IsIdempotent("dc1/rackb"))
	assert.False(t, pattern.IsIdempotent("dc[1-3]"))
}

func TestExpandBrackets_CapExceeded(t *testing.T) {
	_, err := pattern.ExpandBrackets("n[1-100000]")
	require.Error(t, err)
}
