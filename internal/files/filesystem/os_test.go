package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_ReadFileAndStat(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "payload.json")
	require.NoError(t, os.WriteFile(p, []byte(`[{"a":1}]`), 0644))

	fsys := NewOSFileSystem()

	content, err := fsys.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, `[{"a":1}]`, string(content))

	info, err := fsys.Stat(p)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	info, err = fsys.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOSFileSystem_Missing(t *testing.T) {
	fsys := NewOSFileSystem()

	_, err := fsys.Stat(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, os.IsNotExist(err))
}
