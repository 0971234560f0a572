package passes

import (
	"strings"

	"github.com/arthur-debert/packmapper/pkg/jsondoc"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/paths"
	"github.com/arthur-debert/packmapper/pkg/rules"
)

// ModelPassName is the name of the model reference pass
const ModelPassName = "models"

const texturesKey = "textures"

// ModelPass points texture references inside model definitions at the
// relocated and renamed textures
type ModelPass struct {
	block rules.Rename
	item  rules.Rename
	rs    *rules.RuleSet
}

// NewModelPass creates a new ModelPass
func NewModelPass(rs *rules.RuleSet) *ModelPass {
	return &ModelPass{
		block: rs.BlockNamespace(),
		item:  rs.ItemNamespace(),
		rs:    rs,
	}
}

// Name returns the unique name of this pass
func (p *ModelPass) Name() string {
	return ModelPassName
}

// Description returns a human-readable description
func (p *ModelPass) Description() string {
	return "Rewrites texture references in model definitions"
}

// Apply rewrites the textures map of every model under the model root
func (p *ModelPass) Apply(tree Tree) (*Report, error) {
	logger := logging.GetLogger("passes.models")
	report := NewReport(p.Name())

	rewriteDefinitions(tree, tree.Layout.ModelRoot, report, logger, func(doc *jsondoc.Object) bool {
		v, ok := doc.Get(texturesKey)
		if !ok {
			return false
		}
		textures, ok := v.(*jsondoc.Object)
		if !ok {
			return false
		}

		changed := false
		for _, key := range textures.Keys() {
			ref, ok := textures.Get(key)
			s, isString := ref.(string)
			if !ok || !isString {
				continue
			}
			if updated := p.rewrite(s, tree.Layout.ImageExt); updated != s {
				textures.Set(key, updated)
				changed = true
			}
		}
		return changed
	})

	logger.Info().
		Int("rewritten", report.Rewritten).
		Int("warnings", len(report.Warnings)).
		Msg("Model references updated")
	return report, nil
}

// rewrite moves one texture reference into the new block or item
// namespace, then applies the texture file renames to its final segment
func (p *ModelPass) rewrite(ref, imageExt string) string {
	switch {
	case !p.block.IsZero() && strings.Contains(ref, p.block.From):
		ref = strings.Replace(ref, p.block.From, p.block.To, 1)
	case !p.item.IsZero() && strings.Contains(ref, p.item.From):
		ref = strings.Replace(ref, p.item.From, p.item.To, 1)
	}
	return p.renameStem(ref, imageExt)
}

// renameStem maps block/stone_granite to block/granite when the texture
// file stone_granite.png is renamed to granite.png. Only references
// directly inside the new block or item namespace are considered, with
// or without a resource namespace such as minecraft:.
func (p *ModelPass) renameStem(ref, imageExt string) string {
	resource := ""
	location := ref
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		resource, location = ref[:i+1], ref[i+1:]
	}

	slash := strings.LastIndexByte(location, '/')
	if slash < 0 {
		return ref
	}
	dir, stem := location[:slash+1], location[slash+1:]
	if !p.inNewNamespace(dir) {
		return ref
	}

	to, ok := p.rs.FileRename(stem + imageExt)
	if !ok || !paths.HasExt(to, imageExt) {
		return ref
	}
	return resource + dir + to[:len(to)-len(imageExt)]
}

func (p *ModelPass) inNewNamespace(dir string) bool {
	return (!p.block.IsZero() && dir == p.block.To) || (!p.item.IsZero() && dir == p.item.To)
}
