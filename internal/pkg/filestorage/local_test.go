package filestorage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMissingDocument(t *testing.T) {
	ls := NewLocalStorage(t.TempDir())

	_, err := ls.ReadDocument("absent.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestWriteCreatesDirectoryAndOverwrites(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "dir")
	ls := NewLocalStorage(base)

	require.NoError(t, ls.WriteDocument("doc.json", []byte("first, longer content")))
	require.NoError(t, ls.WriteDocument("doc.json", []byte("second")))

	data, err := ls.ReadDocument("doc.json")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(filepath.Join(base, "doc.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm()&0o644)
}

func TestGetFullPathStripsDirectories(t *testing.T) {
	ls := NewLocalStorage("/data")
	assert.Equal(t, filepath.Join("/data", "courses.json"), ls.GetFullPath("../etc/courses.json"))

	assert.Equal(t, "courses.json", NewLocalStorage("").GetFullPath("courses.json"))
}
