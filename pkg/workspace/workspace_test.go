package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesExclusiveDirectory(t *testing.T) {
	baseDir := t.TempDir()

	ws, err := New(baseDir, "team-api")
	require.NoError(t, err)

	info, err := os.Stat(ws.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(baseDir, "team-api"), ws.Root())
	assert.Equal(t, filepath.Join(ws.Root(), "mirror.git"), ws.MirrorDir())
}

func TestNewRemovesLeftoverContents(t *testing.T) {
	baseDir := t.TempDir()
	leftover := filepath.Join(baseDir, "team-api", "stale-file")
	require.NoError(t, os.MkdirAll(filepath.Dir(leftover), 0755))
	require.NoError(t, os.WriteFile(leftover, []byte("old run"), 0644))

	ws, err := New(baseDir, "team-api")
	require.NoError(t, err)

	_, err = os.Stat(leftover)
	assert.True(t, os.IsNotExist(err))
	ws.Release()
}

func TestReleaseRemovesWorkspace(t *testing.T) {
	baseDir := t.TempDir()
	ws, err := New(baseDir, "team-api")
	require.NoError(t, err)

	ws.Release()

	_, err = os.Stat(ws.Root())
	assert.True(t, os.IsNotExist(err))
}
