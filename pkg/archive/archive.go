// Package archive reads and writes zip-packaged resource packs.
//
// Written archives are reproducible: entries are sorted by path, every
// entry carries the same fixed timestamp and permissions, and the same
// tree always yields byte-identical output.
package archive

import (
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/paths"
)

// EntryTime is the modification time stamped on every written entry
var EntryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Stats summarizes an extraction
type Stats struct {
	Files int
	Bytes int64
}

// IsArchive reports whether the file at name opens as a zip archive
func IsArchive(fsys filesystem.FS, name string) bool {
	f, err := fsys.Open(name)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	_, err = zip.NewReader(f, info.Size())
	return err == nil
}

// Extract unpacks the archive at src on srcFS into the directory dst on
// dstFS. Entries whose names would escape dst are rejected.
func Extract(srcFS filesystem.FS, src string, dstFS filesystem.FS, dst string) (Stats, error) {
	logger := logging.GetLogger("archive")
	var stats Stats

	f, err := srcFS.Open(src)
	if err != nil {
		return stats, errors.Wrapf(err, errors.ErrArchiveOpen, "cannot open archive %s", src)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return stats, errors.Wrapf(err, errors.ErrArchiveOpen, "cannot stat archive %s", src)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return stats, errors.Wrapf(err, errors.ErrArchiveOpen, "%s is not a readable zip archive", src)
	}

	for _, entry := range zr.File {
		name, err := EntryPath(entry.Name)
		if err != nil {
			return stats, errors.Wrap(err, errors.ErrArchiveEntry, "unsafe archive entry").
				WithDetail("entry", entry.Name)
		}
		if name == "" {
			continue
		}
		target := paths.Join(dst, name)

		if entry.FileInfo().IsDir() {
			if err := dstFS.MkdirAll(target, 0755); err != nil {
				return stats, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", target)
			}
			continue
		}

		n, err := extractEntry(entry, dstFS, target)
		if err != nil {
			return stats, err
		}
		stats.Files++
		stats.Bytes += n
	}

	logger.Debug().
		Str("archive", src).
		Int("files", stats.Files).
		Int64("bytes", stats.Bytes).
		Msg("Extracted archive")
	return stats, nil
}

func extractEntry(entry *zip.File, dstFS filesystem.FS, target string) (int64, error) {
	rc, err := entry.Open()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrArchiveEntry, "cannot read archive entry").
			WithDetail("entry", entry.Name)
	}
	defer func() { _ = rc.Close() }()

	if err := dstFS.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", target)
	}
	out, err := dstFS.Create(target)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", target)
	}
	n, err := io.Copy(out, rc)
	if err != nil {
		_ = out.Close()
		return n, errors.Wrap(err, errors.ErrArchiveEntry, "cannot extract archive entry").
			WithDetail("entry", entry.Name)
	}
	if err := out.Close(); err != nil {
		return n, errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", target)
	}
	return n, nil
}

// EntryPath normalizes an archive entry name to a clean relative slash
// path. It returns "" for the root entry and an error for names that are
// absolute or climb out of the archive root.
func EntryPath(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	if strings.HasPrefix(name, "/") || (len(name) > 1 && name[1] == ':') {
		return "", errors.Newf(errors.ErrArchiveEntry, "absolute entry name %q", name)
	}
	clean := path.Clean(name)
	if clean == "." {
		return "", nil
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errors.Newf(errors.ErrArchiveEntry, "entry %q escapes the archive root", name)
	}
	return clean, nil
}

// Create writes every file under root on srcFS into a zip archive on w.
// It returns the number of entries written.
func Create(srcFS filesystem.FS, root string, w io.Writer) (int, error) {
	files, err := filesystem.ListFiles(srcFS, root)
	if err != nil {
		return 0, err
	}

	zw := zip.NewWriter(w)
	for _, rel := range files {
		if err := addEntry(zw, srcFS, root, rel); err != nil {
			_ = zw.Close()
			return 0, err
		}
	}
	if err := zw.Close(); err != nil {
		return 0, errors.Wrap(err, errors.ErrArchiveCreate, "cannot finish archive")
	}
	return len(files), nil
}

func addEntry(zw *zip.Writer, srcFS filesystem.FS, root, rel string) error {
	header := &zip.FileHeader{
		Name:     rel,
		Method:   zip.Deflate,
		Modified: EntryTime,
	}
	header.SetMode(0644)

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return errors.Wrap(err, errors.ErrArchiveCreate, "cannot add archive entry").
			WithDetail("entry", rel)
	}

	src, err := srcFS.Open(paths.Join(root, rel))
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", rel)
	}
	defer func() { _ = src.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrap(err, errors.ErrArchiveCreate, "cannot write archive entry").
			WithDetail("entry", rel)
	}
	return nil
}
