package passes

import (
	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/paths"
	"github.com/arthur-debert/packmapper/pkg/rules"
)

// Pass is one ordered step of a conversion
type Pass interface {
	// Name returns the unique name of this pass
	Name() string

	// Description returns a human-readable description of what this pass does
	Description() string

	// Apply rewrites the tree in place and reports what changed
	Apply(tree Tree) (*Report, error)
}

// Tree is the pack work tree a pass operates on
type Tree struct {
	FS     filesystem.FS
	Root   string
	Layout paths.Layout
}

// Path resolves pack-relative slash paths inside the tree
func (t Tree) Path(rel ...string) string {
	return paths.Join(t.Root, rel...)
}

// Default returns the conversion passes in the order they must run.
// Later passes rely on the layout left behind by earlier ones.
func Default(rs *rules.RuleSet) []Pass {
	return []Pass{
		NewMetadataPass(rs),
		NewTexturePass(rs),
		NewModelPass(rs),
		NewBlockstatePass(rs),
		NewSoundPass(rs),
	}
}
