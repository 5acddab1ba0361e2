package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# test\n"), 0o600))
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.hcl"))
	writeFile(t, filepath.Join(dir, "a.hcl"))
	writeFile(t, filepath.Join(dir, "nested", "c.hcl"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	files, err := FindFilesByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.hcl"),
	}, files)
}

func TestFindFilesByExtension_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.hcl")
	writeFile(t, path)

	files, err := FindFilesByExtension(path, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(".", "") })
}

func TestFindAll_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.hcl")
	writeFile(t, file)

	files, err := FindAll([]string{dir, file}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestFindAll_MissingPath(t *testing.T) {
	_, err := FindAll([]string{filepath.Join(t.TempDir(), "missing")}, ".hcl")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
