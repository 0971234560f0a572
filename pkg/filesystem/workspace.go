package filesystem

import (
	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/paths"
)

// Workspace is a private scratch directory holding one pack work tree
type Workspace struct {
	fs   FS
	root string
}

// NewWorkspace creates a fresh directory under parent (the system temp
// directory when parent is empty) named after the run
func NewWorkspace(fsys FS, parent, runID string) (*Workspace, error) {
	root, err := fsys.TempDir(parent, "packmapper-"+runID+"-")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWorkspace, "cannot create work directory").
			WithDetail("parent", parent)
	}
	return &Workspace{fs: fsys, root: root}, nil
}

// Root returns the absolute path of the work tree
func (w *Workspace) Root() string {
	return w.root
}

// FS returns the filesystem the workspace lives on
func (w *Workspace) FS() FS {
	return w.fs
}

// Path resolves pack-relative slash paths inside the work tree
func (w *Workspace) Path(rel ...string) string {
	return paths.Join(w.root, rel...)
}

// Remove deletes the work tree
func (w *Workspace) Remove() error {
	if err := w.fs.RemoveAll(w.root); err != nil {
		return errors.Wrap(err, errors.ErrWorkspace, "cannot remove work directory").
			WithDetail("path", w.root)
	}
	return nil
}
