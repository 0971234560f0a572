package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packmapper/pkg/paths"
)

// TestPack is a resource pack directory built for a test
type TestPack struct {
	Dir string
}

// SetupTestPack creates an empty pack directory
func SetupTestPack(t *testing.T) *TestPack {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "pack")
	require.NoError(t, os.MkdirAll(dir, 0755))
	return &TestPack{Dir: dir}
}

// Path resolves a pack-relative slash path
func (tp *TestPack) Path(rel string) string {
	return filepath.Join(tp.Dir, filepath.FromSlash(rel))
}

// AddFile writes a file into the pack, creating parent directories
func (tp *TestPack) AddFile(t *testing.T, rel, content string) string {
	t.Helper()

	full := tp.Path(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	return full
}

// AddTexture writes a fake image whose bytes name the file, so moved and
// renamed textures can be traced back to their origin
func (tp *TestPack) AddTexture(t *testing.T, rel string) string {
	t.Helper()
	return tp.AddFile(t, rel, "\x89PNG fake:"+rel)
}

// AddDir creates an empty directory in the pack
func (tp *TestPack) AddDir(t *testing.T, rel string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(tp.Path(rel), 0755))
}

// ReadFile returns the content of a pack file
func (tp *TestPack) ReadFile(t *testing.T, rel string) string {
	t.Helper()

	data, err := os.ReadFile(tp.Path(rel))
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether a pack path exists
func (tp *TestPack) Exists(rel string) bool {
	_, err := os.Stat(tp.Path(rel))
	return err == nil
}

// Files returns every file in the pack as sorted slash paths
func (tp *TestPack) Files(t *testing.T) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(tp.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := paths.Rel(tp.Dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

// Zip packages the pack as an archive at path, in the given entry order
// or sorted when order is empty
func (tp *TestPack) Zip(t *testing.T, path string, order ...string) string {
	t.Helper()

	if len(order) == 0 {
		order = tp.Files(t)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, rel := range order {
		data, err := os.ReadFile(tp.Path(rel))
		require.NoError(t, err)
		w, err := zw.Create(rel)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}
