package convert

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/packmapper/pkg/archive"
	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/paths"
)

// nestedDirName is where a wrapping directory is parked while its content
// is lifted to the workspace root
const nestedDirName = ".packmapper-nested"

// Acquire fills the workspace with the pack at input, read through src.
// Input may be a directory or a zip archive, whatever its extension.
func Acquire(src filesystem.FS, input string, ws *filesystem.Workspace, layout paths.Layout) error {
	logger := logging.GetLogger("convert.acquire")

	info, err := src.Stat(input)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInput, "cannot read input %s", input).
			WithDetail("input", input)
	}

	switch {
	case info.IsDir():
		n, err := filesystem.CopyTree(src, input, ws.FS(), ws.Root())
		if err != nil {
			return errors.Wrapf(err, errors.ErrInput, "cannot copy input directory %s", input).
				WithDetail("input", input)
		}
		logger.Debug().Str("input", input).Int64("bytes", n).Msg("Copied input directory")
	case archive.IsArchive(src, input):
		if _, err := archive.Extract(src, input, ws.FS(), ws.Root()); err != nil {
			return errors.Wrapf(err, errors.ErrInput, "cannot extract input archive %s", input).
				WithDetail("input", input)
		}
	default:
		return errors.Newf(errors.ErrInput, "%s is neither a directory nor a zip archive", input).
			WithDetail("input", input)
	}

	return liftNestedRoot(ws, layout, logger)
}

// liftNestedRoot handles packs zipped together with their folder: when
// the workspace holds a single directory that contains the metadata file,
// its content becomes the workspace root.
func liftNestedRoot(ws *filesystem.Workspace, layout paths.Layout, logger zerolog.Logger) error {
	fsys := ws.FS()
	if filesystem.Exists(fsys, ws.Path(layout.MetadataFile)) {
		return nil
	}

	entries, err := fsys.ReadDir(ws.Root())
	if err != nil {
		return errors.Wrap(err, errors.ErrWorkspace, "cannot read work directory")
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return nil
	}
	inner := entries[0].Name()
	if !filesystem.IsFile(fsys, ws.Path(inner, layout.MetadataFile)) {
		return nil
	}

	parked := ws.Path(nestedDirName)
	if err := fsys.Rename(ws.Path(inner), parked); err != nil {
		return errors.Wrap(err, errors.ErrWorkspace, "cannot lift nested pack root")
	}
	children, err := fsys.ReadDir(parked)
	if err != nil {
		return errors.Wrap(err, errors.ErrWorkspace, "cannot lift nested pack root")
	}
	for _, child := range children {
		if err := fsys.Rename(paths.Join(parked, child.Name()), ws.Path(child.Name())); err != nil {
			return errors.Wrap(err, errors.ErrWorkspace, "cannot lift nested pack root")
		}
	}
	if err := fsys.Remove(parked); err != nil {
		return errors.Wrap(err, errors.ErrWorkspace, "cannot lift nested pack root")
	}

	logger.Debug().Str("dir", inner).Msg("Lifted nested pack root")
	return nil
}
