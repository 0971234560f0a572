package passes

import (
	"bytes"

	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/jsondoc"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/rules"
)

// SoundPassName is the name of the sound event pass
const SoundPassName = "sounds"

// SoundPass renames sound event keys in the sound definitions file
type SoundPass struct {
	renames []rules.Rename
}

// NewSoundPass creates a new SoundPass
func NewSoundPass(rs *rules.RuleSet) *SoundPass {
	return &SoundPass{renames: rs.SoundEventRenames()}
}

// Name returns the unique name of this pass
func (p *SoundPass) Name() string {
	return SoundPassName
}

// Description returns a human-readable description
func (p *SoundPass) Description() string {
	return "Renames sound events in the sound definitions"
}

// Apply moves the value of every renamed event to its new key, appended
// after the existing keys. A self-mapped event therefore only moves to
// the end. A missing sounds file is not an error.
func (p *SoundPass) Apply(tree Tree) (*Report, error) {
	logger := logging.GetLogger("passes.sounds")
	report := NewReport(p.Name())
	rel := tree.Layout.SoundsFile
	path := tree.Path(rel)

	if !filesystem.IsFile(tree.FS, path) {
		logger.Debug().Str("path", rel).Msg("No sound definitions")
		return report, nil
	}

	original, err := tree.FS.ReadFile(path)
	if err != nil {
		report.Warn(rel, err)
		return report, nil
	}
	doc, err := jsondoc.ParseObject(original)
	if err != nil {
		logger.Warn().Str("path", rel).Err(err).Msg("Cannot parse sound definitions, leaving them untouched")
		report.Warn(rel, err)
		return report, nil
	}

	found := 0
	for _, r := range p.renames {
		value, ok := doc.Get(r.From)
		if !ok {
			continue
		}
		doc.Delete(r.From)
		doc.Set(r.To, value)
		found++
	}
	if found == 0 {
		return report, nil
	}

	data, err := jsondoc.Marshal(doc)
	if err != nil {
		report.Warn(rel, err)
		return report, nil
	}
	if bytes.Equal(data, original) {
		logger.Debug().Str("path", rel).Msg("Sound definitions already up to date")
		return report, nil
	}
	if err := tree.FS.WriteFile(path, data, 0644); err != nil {
		report.Warn(rel, err)
		return report, nil
	}
	report.Rewritten = 1
	logger.Info().Str("path", rel).Int("events", found).Int("definitions", doc.Len()).Msg("Sound events renamed")
	return report, nil
}
