package convert

import (
	"path/filepath"

	"github.com/arthur-debert/packmapper/pkg/archive"
	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/paths"
)

// OutputKind tells archive output from directory output
type OutputKind string

const (
	OutputArchive   OutputKind = "archive"
	OutputDirectory OutputKind = "directory"
)

// KindOf returns the kind of output written to path
func KindOf(layout paths.Layout, path string) OutputKind {
	if layout.IsArchivePath(path) {
		return OutputArchive
	}
	return OutputDirectory
}

// Assemble writes the tree at root to output and returns the number of
// bytes written. An archive is first written next to output and renamed
// over it once complete; a directory output replaces whatever was there.
func Assemble(fsys filesystem.FS, root, output string, layout paths.Layout) (int64, error) {
	logger := logging.GetLogger("convert.assemble")

	if KindOf(layout, output) == OutputDirectory {
		if err := fsys.RemoveAll(output); err != nil {
			return 0, errors.Wrapf(err, errors.ErrOutput, "cannot replace %s", output)
		}
		n, err := filesystem.CopyTree(fsys, root, fsys, output)
		if err != nil {
			return n, errors.Wrapf(err, errors.ErrOutput, "cannot write directory %s", output)
		}
		logger.Debug().Str("output", output).Int64("bytes", n).Msg("Wrote output directory")
		return n, nil
	}

	if err := fsys.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrOutput, "cannot create directory for %s", output)
	}

	tmp := output + ".tmp"
	if err := writeArchive(fsys, root, tmp); err != nil {
		_ = fsys.Remove(tmp)
		return 0, errors.Wrapf(err, errors.ErrOutput, "cannot write archive %s", output)
	}
	if err := fsys.Rename(tmp, output); err != nil {
		_ = fsys.Remove(tmp)
		return 0, errors.Wrapf(err, errors.ErrOutput, "cannot move archive into place at %s", output)
	}

	info, err := fsys.Stat(output)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrOutput, "cannot stat %s", output)
	}
	logger.Debug().Str("output", output).Int64("bytes", info.Size()).Msg("Wrote output archive")
	return info.Size(), nil
}

func writeArchive(fsys filesystem.FS, root, path string) error {
	out, err := fsys.Create(path)
	if err != nil {
		return err
	}
	if _, err := archive.Create(fsys, root, out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
