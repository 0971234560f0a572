package testutil

import (
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// ZipContent is an archive read back for assertions
type ZipContent struct {
	Names   []string
	Entries map[string]string
}

// ReadZip reads every entry of the archive at path
func ReadZip(t *testing.T, path string) ZipContent {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()

	content := ZipContent{Entries: make(map[string]string)}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)

		content.Names = append(content.Names, f.Name)
		content.Entries[f.Name] = string(data)
	}
	return content
}
