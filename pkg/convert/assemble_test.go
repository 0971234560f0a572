// pkg/convert/assemble_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test archive and directory output

package convert_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packmapper/pkg/convert"
	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/paths"
	"github.com/arthur-debert/packmapper/pkg/testutil"
)

func TestKindOf(t *testing.T) {
	layout := paths.DefaultLayout()
	assert.Equal(t, convert.OutputArchive, convert.KindOf(layout, "out/pack.zip"))
	assert.Equal(t, convert.OutputArchive, convert.KindOf(layout, "out/PACK.ZIP"))
	assert.Equal(t, convert.OutputDirectory, convert.KindOf(layout, "out/pack"))
	assert.Equal(t, convert.OutputDirectory, convert.KindOf(layout, "out/pack.zip.d"))
}

func TestAssemble_Archive(t *testing.T) {
	pack := testutil.SetupTestPack(t)
	pack.AddFile(t, "pack.mcmeta", "{}")
	pack.AddFile(t, "assets/minecraft/b.json", "{}")
	pack.AddFile(t, "assets/minecraft/a.json", "{}")
	output := filepath.Join(t.TempDir(), "nested", "dir", "out.zip")

	n, err := convert.Assemble(filesystem.NewOS(), pack.Dir, output, paths.DefaultLayout())
	require.NoError(t, err)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), n)
	assert.NoFileExists(t, output+".tmp")

	content := testutil.ReadZip(t, output)
	assert.Equal(t, []string{"assets/minecraft/a.json", "assets/minecraft/b.json", "pack.mcmeta"}, content.Names)
}

func TestAssemble_ArchiveIsDeterministic(t *testing.T) {
	pack := testutil.SetupTestPack(t)
	pack.AddFile(t, "pack.mcmeta", "{}")
	pack.AddTexture(t, "assets/minecraft/textures/block/dirt.png")
	dir := t.TempDir()
	first := filepath.Join(dir, "first.zip")
	second := filepath.Join(dir, "second.zip")

	_, err := convert.Assemble(filesystem.NewOS(), pack.Dir, first, paths.DefaultLayout())
	require.NoError(t, err)
	_, err = convert.Assemble(filesystem.NewOS(), pack.Dir, second, paths.DefaultLayout())
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAssemble_DirectoryReplacesExisting(t *testing.T) {
	pack := testutil.SetupTestPack(t)
	pack.AddFile(t, "pack.mcmeta", "meta")
	output := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(output, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(output, "stale.txt"), []byte("old"), 0644))

	n, err := convert.Assemble(filesystem.NewOS(), pack.Dir, output, paths.DefaultLayout())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	assert.NoFileExists(t, filepath.Join(output, "stale.txt"))
	data, err := os.ReadFile(filepath.Join(output, "pack.mcmeta"))
	require.NoError(t, err)
	assert.Equal(t, "meta", string(data))
}

func TestAssemble_OutputError(t *testing.T) {
	pack := testutil.SetupTestPack(t)
	pack.AddFile(t, "pack.mcmeta", "{}")
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// A regular file where a parent directory should be
	_, err := convert.Assemble(filesystem.NewOS(), pack.Dir, filepath.Join(blocker, "out.zip"), paths.DefaultLayout())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutput), "got %v", err)
}
