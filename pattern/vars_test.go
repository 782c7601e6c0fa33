package pattern_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngcore/netgraph/pattern"
)

func TestExpandVars_Cartesian(t *testing.T) {
	vars := map[string][]string{
		"x": {"1", "2"},
		"y": {"a", "b"},
	}
	out, err := pattern.ExpandVars("n${x}-${y}", vars, pattern.Cartesian)
	require.NoError(t, err)
	sort.Strings(out)
	assert.Equal(t, []string{"n1-a", "n1-b", "n2-a", "n2-b"}, out)
}

func TestExpandVars_Zip(t *testing.T) {
	vars := map[string][]string{
		"x": {"1", "2"},
		"y": {"a", "b"},
	}
	out, err := pattern.ExpandVars("n$x-$y", vars, pattern.Zip)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1-a", "n2-b"}, out)
}

func TestExpandVars_ZipUnequalLengthFails(t *testing.T) {
	vars := map[string][]string{
		"x": {"1", "2", "3"},
		"y": {"a", "b"},
	}
	_, err := pattern.ExpandVars("n$x-$y", vars, pattern.Zip)
	require.Error(t, err)
}

func TestExpandVars_UnresolvedVariableFails(t *testing.T) {
	_, err := pattern.ExpandVars("n${missing}", map[string][]string{}, pattern.Cartesian)
	require.Error(t, err)
}

func TestExpandVars_NoReferencesIsLiteral(t *testing.T) {
	out, err := pattern.ExpandVars("literal", nil, pattern.Cartesian)
	require.NoError(t, err)
	assert.Equal(t, []string{"literal"}, out)
}
