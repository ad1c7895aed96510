package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	c := NewResultCache[string]()
	h := HashContent([]byte("cube(10);"))
	c.Set(h, "parsed-cube")

	require.NoError(t, SaveSnapshot(dir, c))

	restored := NewResultCache[string]()
	require.NoError(t, LoadSnapshot(dir, restored))

	val, found := restored.Get(h)
	require.True(t, found)
	assert.Equal(t, "parsed-cube", val)
}

func TestLoadSnapshotMissingFileIsError(t *testing.T) {
	dir := t.TempDir()

	c := NewResultCache[string]()
	assert.Error(t, LoadSnapshot(dir, c))
}
