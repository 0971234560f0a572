package filesystem

import (
	"io"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/paths"
)

// Exists reports whether name exists
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// IsDir reports whether name exists and is a directory
func IsDir(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

// IsFile reports whether name exists and is not a directory
func IsFile(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && !info.IsDir()
}

// Glob returns the files under root matching a doublestar pattern, as
// sorted slash-separated paths relative to root. A missing root yields
// no matches.
func Glob(fsys FS, root, pattern string) ([]string, error) {
	if !IsDir(fsys, root) {
		return nil, nil
	}
	matches, err := doublestar.Glob(fsys.DirFS(root), pattern,
		doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", root).
			WithDetail("pattern", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// ListFiles returns every file under root, sorted, relative to root
func ListFiles(fsys FS, root string) ([]string, error) {
	return Glob(fsys, root, "**")
}

// ListFilesWithExt returns the files under root whose extension matches
// ext without regard to case
func ListFilesWithExt(fsys FS, root, ext string) ([]string, error) {
	all, err := ListFiles(fsys, root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, rel := range all {
		if paths.HasExt(path.Base(rel), ext) {
			out = append(out, rel)
		}
	}
	return out, nil
}

// CountFiles counts the files under root with the given extension
func CountFiles(fsys FS, root, ext string) (int, error) {
	files, err := ListFilesWithExt(fsys, root, ext)
	return len(files), err
}

// CopyFile streams src on srcFS to dst on dstFS, creating parent
// directories, and returns the number of bytes written
func CopyFile(srcFS FS, src string, dstFS FS, dst string) (int64, error) {
	in, err := srcFS.Open(src)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer func() { _ = in.Close() }()

	if err := dstFS.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", dst)
	}
	out, err := dstFS.Create(dst)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dst)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, errors.Wrapf(err, errors.ErrFileWrite, "cannot copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return n, errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", dst)
	}
	return n, nil
}

// CopyTree copies every file under srcRoot to the same relative location
// under dstRoot. It returns the total number of bytes written.
func CopyTree(srcFS FS, srcRoot string, dstFS FS, dstRoot string) (int64, error) {
	files, err := ListFiles(srcFS, srcRoot)
	if err != nil {
		return 0, err
	}
	if err := dstFS.MkdirAll(dstRoot, 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dstRoot)
	}

	var total int64
	for _, rel := range files {
		n, err := CopyFile(srcFS, paths.Join(srcRoot, rel), dstFS, paths.Join(dstRoot, rel))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
