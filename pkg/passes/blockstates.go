package passes

import (
	"strings"

	"github.com/arthur-debert/packmapper/pkg/jsondoc"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/rules"
)

// BlockstatePassName is the name of the blockstate reference pass
const BlockstatePassName = "blockstates"

const (
	variantsKey = "variants"
	modelKey    = "model"
)

// BlockstatePass rewrites model references in blockstate variants. Only
// the block namespace is substituted; item models never appear here.
type BlockstatePass struct {
	block rules.Rename
}

// NewBlockstatePass creates a new BlockstatePass
func NewBlockstatePass(rs *rules.RuleSet) *BlockstatePass {
	return &BlockstatePass{block: rs.BlockNamespace()}
}

// Name returns the unique name of this pass
func (p *BlockstatePass) Name() string {
	return BlockstatePassName
}

// Description returns a human-readable description
func (p *BlockstatePass) Description() string {
	return "Rewrites model references in blockstate variants"
}

// Apply rewrites every blockstate under the blockstate root
func (p *BlockstatePass) Apply(tree Tree) (*Report, error) {
	logger := logging.GetLogger("passes.blockstates")
	report := NewReport(p.Name())

	if p.block.IsZero() {
		logger.Debug().Msg("No block namespace rename configured")
		return report, nil
	}

	rewriteDefinitions(tree, tree.Layout.BlockstateRoot, report, logger, func(doc *jsondoc.Object) bool {
		v, ok := doc.Get(variantsKey)
		if !ok {
			return false
		}
		variants, ok := v.(*jsondoc.Object)
		if !ok {
			return false
		}

		changed := false
		for _, key := range variants.Keys() {
			variant, _ := variants.Get(key)
			switch variant := variant.(type) {
			case *jsondoc.Object:
				changed = p.rewriteRecord(variant) || changed
			case []any:
				for _, item := range variant {
					if record, ok := item.(*jsondoc.Object); ok {
						changed = p.rewriteRecord(record) || changed
					}
				}
			}
		}
		return changed
	})

	logger.Info().
		Int("rewritten", report.Rewritten).
		Int("warnings", len(report.Warnings)).
		Msg("Blockstate references updated")
	return report, nil
}

func (p *BlockstatePass) rewriteRecord(record *jsondoc.Object) bool {
	v, ok := record.Get(modelKey)
	if !ok {
		return false
	}
	model, ok := v.(string)
	if !ok || !strings.Contains(model, p.block.From) {
		return false
	}
	record.Set(modelKey, strings.Replace(model, p.block.From, p.block.To, 1))
	return true
}
