// pkg/filesystem/filesystem_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test the afero-backed FS, tree helpers and workspaces

package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packmapper/pkg/filesystem"
)

func makeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestAferoFS_ReadFileRejectsDirectories(t *testing.T) {
	fsys := filesystem.NewOS()
	_, err := fsys.ReadFile(t.TempDir())
	assert.Error(t, err)
}

func TestReadOnlyOS_RejectsWrites(t *testing.T) {
	dir := t.TempDir()
	fsys := filesystem.NewReadOnlyOS()

	err := fsys.WriteFile(filepath.Join(dir, "x.txt"), []byte("x"), 0644)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "x.txt"))
}

func TestListFiles_SortedAndRelative(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"pack.mcmeta":                            "{}",
		"assets/minecraft/textures/blocks/b.png": "b",
		"assets/minecraft/textures/blocks/a.png": "a",
		"assets/minecraft/sounds.json":           "{}",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	files, err := filesystem.ListFiles(filesystem.NewOS(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"assets/minecraft/sounds.json",
		"assets/minecraft/textures/blocks/a.png",
		"assets/minecraft/textures/blocks/b.png",
		"pack.mcmeta",
	}, files)
}

func TestListFilesWithExt_IgnoresCase(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"a.png":     "",
		"b.PNG":     "",
		"c.png.txt": "",
		"d/e.png":   "",
	})

	files, err := filesystem.ListFilesWithExt(filesystem.NewOS(), root, ".png")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.PNG", "d/e.png"}, files)

	n, err := filesystem.CountFiles(filesystem.NewOS(), root, ".png")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGlob_MissingRoot(t *testing.T) {
	files, err := filesystem.Glob(filesystem.NewOS(), filepath.Join(t.TempDir(), "missing"), "**/*.json")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGlob_Pattern(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"block/stone.json":       "{}",
		"block/nested/deep.json": "{}",
		"item/stick.json":        "{}",
		"block/stone.json.bak":   "",
		"block/textures/x.png":   "",
		"top.json":               "{}",
	})

	files, err := filesystem.Glob(filesystem.NewOS(), root, "**/*.json")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"block/nested/deep.json",
		"block/stone.json",
		"item/stick.json",
		"top.json",
	}, files)
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	makeTree(t, src, map[string]string{
		"pack.mcmeta":   "meta",
		"assets/a.json": "12345",
	})

	n, err := filesystem.CopyTree(filesystem.NewReadOnlyOS(), src, filesystem.NewOS(), dst)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)

	data, err := os.ReadFile(filepath.Join(dst, "assets", "a.json"))
	require.NoError(t, err)
	assert.Equal(t, "12345", string(data))
	assert.FileExists(t, filepath.Join(dst, "pack.mcmeta"))
}

func TestCopyTree_IntoMemoryFS(t *testing.T) {
	src := t.TempDir()
	makeTree(t, src, map[string]string{
		"pack.mcmeta":                     "meta",
		"assets/minecraft/sounds.json":    "{}",
		"assets/minecraft/models/a.json":  "{}",
		"assets/minecraft/textures/x.png": "png",
	})
	mem := filesystem.NewAferoFS(afero.NewMemMapFs())

	_, err := filesystem.CopyTree(filesystem.NewOS(), src, mem, "/work")
	require.NoError(t, err)

	files, err := filesystem.ListFilesWithExt(mem, "/work", ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/minecraft/models/a.json", "assets/minecraft/sounds.json"}, files)

	data, err := mem.ReadFile("/work/pack.mcmeta")
	require.NoError(t, err)
	assert.Equal(t, "meta", string(data))
}

func TestWorkspace(t *testing.T) {
	parent := t.TempDir()
	ws, err := filesystem.NewWorkspace(filesystem.NewOS(), parent, "run1")
	require.NoError(t, err)

	assert.DirExists(t, ws.Root())
	assert.Equal(t, parent, filepath.Dir(ws.Root()))
	assert.Contains(t, filepath.Base(ws.Root()), "packmapper-run1-")
	assert.Equal(t, filepath.Join(ws.Root(), "assets", "minecraft"), ws.Path("assets/minecraft"))

	require.NoError(t, ws.Remove())
	assert.NoDirExists(t, ws.Root())
}

func TestExistsHelpers(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{"f.txt": "x"})
	fsys := filesystem.NewOS()

	assert.True(t, filesystem.Exists(fsys, root))
	assert.True(t, filesystem.IsDir(fsys, root))
	assert.False(t, filesystem.IsFile(fsys, root))
	assert.True(t, filesystem.IsFile(fsys, filepath.Join(root, "f.txt")))
	assert.False(t, filesystem.Exists(fsys, filepath.Join(root, "nope")))
}
