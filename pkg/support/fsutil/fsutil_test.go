package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	exists, err := Exists(file)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = Exists(filepath.Join(base, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIsDir(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	isDir, err := IsDir(base)
	require.NoError(t, err)
	assert.True(t, isDir)

	isDir, err = IsDir(file)
	require.NoError(t, err)
	assert.False(t, isDir)

	isDir, err = IsDir(filepath.Join(base, "missing"))
	require.NoError(t, err)
	assert.False(t, isDir)
}

func TestExpandTilde(t *testing.T) {
	got, err := ExpandTilde("~/datasets")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "/datasets"))
	assert.NotContains(t, got, "~")

	got, err = ExpandTilde("plain/path")
	require.NoError(t, err)
	assert.Equal(t, "plain/path", got)

	got, err = ExpandTilde("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestDirSize(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "sub"), 0777))
	require.NoError(t, os.WriteFile(filepath.Join(base, "a"), make([]byte, 10), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "sub", "b"), make([]byte, 5), 0644))

	size, err := DirSize(base)
	require.NoError(t, err)
	assert.Equal(t, int64(15), size)

	size, err = DirSize(filepath.Join(base, "missing"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
}
