package filestorage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStorageCreatesBasePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")

	_, err := NewLocalStorage(base, "http://localhost:8080/uploads")
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDeleteFile(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "http://localhost:8080/uploads")
	require.NoError(t, err)

	t.Run("removes existing file", func(t *testing.T) {
		path := filepath.Join(base, "doc.pdf")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))

		require.NoError(t, ls.DeleteFile("uploads/doc.pdf"))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, ls.DeleteFile("uploads/never-existed.pdf"))
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		assert.NoError(t, ls.DeleteFile(""))
	})

	t.Run("directory path is rejected", func(t *testing.T) {
		assert.Error(t, ls.DeleteFile("uploads"))
	})
}

func TestGetFullPath(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "http://localhost:8080/uploads")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "doc.pdf"), ls.GetFullPath("http://localhost:8080/uploads/doc.pdf"))
	assert.Equal(t, filepath.Join(base, "doc.pdf"), ls.GetFullPath("uploads/doc.pdf"))
	assert.Equal(t, "", ls.GetFullPath(""))
}
