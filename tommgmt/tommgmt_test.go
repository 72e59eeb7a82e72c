package tommgmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndRemoveTom(t *testing.T) {
	dir := t.TempDir()

	created, err := CreateEmptyTom(dir, "a.xml")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = CreateEmptyTom(dir, "a.xml")
	require.NoError(t, err)
	assert.False(t, created, "creating an existing tom must be a no-op")

	_, err = os.Stat(filepath.Join(dir, "a.xml"))
	require.NoError(t, err)

	removed, err := RemoveTom(dir, "a.xml")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = RemoveTom(dir, "a.xml")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestNewIDIsUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}
