package tomxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<tom><root><a><c><d><key>4</key><mapped>400</mapped></d></c></a></root></tom>`

func TestLoadAndGetChild(t *testing.T) {
	tree, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	n, err := tree.GetChild("tom/root/a/c/d")
	require.NoError(t, err)

	key, ok := n.Child("key")
	require.True(t, ok)
	assert.Equal(t, "4", key.Text)
}

func TestGetChildBadPath(t *testing.T) {
	tree, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	_, err = tree.GetChild("tom/root/a/z")
	assert.ErrorIs(t, err, ErrBadPath)
}

func TestPutCreatesIntermediateNodes(t *testing.T) {
	tree := Empty()
	tree.Put("tom/root/a/b/key", "7")

	v, ok := tree.GetOptional("tom/root/a/b/key")
	require.True(t, ok)
	assert.Equal(t, "7", v)
}

func TestEraseChild(t *testing.T) {
	tree, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	d, err := tree.GetChild("tom/root/a/c/d")
	require.NoError(t, err)

	assert.True(t, d.EraseChild("mapped"))
	assert.False(t, d.EraseChild("mapped"))
	_, ok := d.Child("mapped")
	assert.False(t, ok)
}

func TestDumpRoundTrip(t *testing.T) {
	tree, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, tree.Dump(&buf))

	reloaded, err := Load(strings.NewReader(buf.String()))
	require.NoError(t, err)

	v, ok := reloaded.GetOptional("tom/root/a/c/d/key")
	require.True(t, ok)
	assert.Equal(t, "4", v)
}
