package passes

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/paths"
	"github.com/arthur-debert/packmapper/pkg/rules"
)

// TexturePassName is the name of the texture relocation pass
const TexturePassName = "textures"

// TexturePass moves texture directories to their new names and renames
// individual texture files inside them. Image bytes are never touched.
type TexturePass struct {
	prefixes []rules.Rename
	files    []rules.Rename
}

// NewTexturePass creates a new TexturePass
func NewTexturePass(rs *rules.RuleSet) *TexturePass {
	return &TexturePass{
		prefixes: rs.PathPrefixRenames(),
		files:    rs.FileRenames(),
	}
}

// Name returns the unique name of this pass
func (p *TexturePass) Name() string {
	return TexturePassName
}

// Description returns a human-readable description
func (p *TexturePass) Description() string {
	return "Relocates texture directories and renames texture files"
}

// Apply relocates every texture directory whose old name exists and new
// name does not, then renames image files inside the relocated
// directories. An existing destination means the work was already done.
func (p *TexturePass) Apply(tree Tree) (*Report, error) {
	logger := logging.GetLogger("passes.textures")
	report := NewReport(p.Name())

	var relocated []string
	for _, r := range p.prefixes {
		from := strings.TrimSuffix(r.From, "/")
		to := strings.TrimSuffix(r.To, "/")
		if !paths.IsUnder(from, tree.Layout.TextureRoot) || !paths.IsUnder(to, tree.Layout.TextureRoot) {
			logger.Debug().Str("from", r.From).Str("to", r.To).Msg("Prefix rename outside the texture root, skipping")
			continue
		}
		relocated = appendUnique(relocated, to)

		src, dst := tree.Path(from), tree.Path(to)
		if !filesystem.IsDir(tree.FS, src) {
			continue
		}
		if filesystem.Exists(tree.FS, dst) {
			logger.Debug().Str("from", from).Str("to", to).Msg("Destination exists, skipping")
			continue
		}

		if err := tree.FS.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			report.Warn(from, err)
			continue
		}
		if err := tree.FS.Rename(src, dst); err != nil {
			report.Warn(from, err)
			continue
		}

		files, err := filesystem.ListFiles(tree.FS, dst)
		if err != nil {
			report.Warn(to, err)
			continue
		}
		report.Moved += len(files)
		images, _ := filesystem.CountFiles(tree.FS, dst, tree.Layout.ImageExt)
		logger.Info().Str("from", from).Str("to", to).Int("files", len(files)).Int("images", images).Msg("Relocated texture directory")
	}

	for _, r := range p.files {
		if !paths.HasExt(r.From, tree.Layout.ImageExt) {
			continue
		}
		for _, dir := range relocated {
			src, dst := tree.Path(dir, r.From), tree.Path(dir, r.To)
			if !filesystem.IsFile(tree.FS, src) || filesystem.Exists(tree.FS, dst) {
				continue
			}
			if err := tree.FS.Rename(src, dst); err != nil {
				report.Warn(dir+"/"+r.From, err)
				continue
			}
			report.Renamed++
			logger.Debug().Str("dir", dir).Str("from", r.From).Str("to", r.To).Msg("Renamed texture")
		}
	}

	logger.Info().
		Int("moved", report.Moved).
		Int("renamed", report.Renamed).
		Int("warnings", len(report.Warnings)).
		Msg("Texture relocation complete")
	return report, nil
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
