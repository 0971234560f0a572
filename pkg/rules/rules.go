package rules

import (
	"strings"

	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/paths"
)

// Rename maps an old name, prefix or key to its new form
type Rename struct {
	From string `koanf:"from" toml:"from" yaml:"from" json:"from"`
	To   string `koanf:"to" toml:"to" yaml:"to" json:"to"`
}

// IsZero reports whether the rename is unset
func (r Rename) IsZero() bool {
	return r.From == "" && r.To == ""
}

// IsIdentity reports whether the rename maps a name onto itself
func (r Rename) IsIdentity() bool {
	return r.From == r.To
}

// Target describes the metadata the converted pack declares
type Target struct {
	Format      int    `koanf:"format" toml:"format" yaml:"format" json:"format"`
	Description string `koanf:"description" toml:"description" yaml:"description" json:"description"`
}

// Definition is the decodable, mutable form of a RuleSet
type Definition struct {
	Target            Target   `koanf:"target" toml:"target" yaml:"target" json:"target"`
	PathPrefixRenames []Rename `koanf:"path_prefix_renames" toml:"path_prefix_renames" yaml:"path_prefix_renames" json:"path_prefix_renames"`
	FileRenames       []Rename `koanf:"file_renames" toml:"file_renames" yaml:"file_renames" json:"file_renames"`
	SoundEventRenames []Rename `koanf:"sound_event_renames" toml:"sound_event_renames" yaml:"sound_event_renames" json:"sound_event_renames"`
	BlockNamespace    Rename   `koanf:"block_namespace" toml:"block_namespace" yaml:"block_namespace" json:"block_namespace"`
	ItemNamespace     Rename   `koanf:"item_namespace" toml:"item_namespace" yaml:"item_namespace" json:"item_namespace"`
	RequiredNewAssets []string `koanf:"required_new_assets" toml:"required_new_assets" yaml:"required_new_assets" json:"required_new_assets"`
}

// RuleSet is an immutable, validated set of rename tables
type RuleSet struct {
	target            Target
	pathPrefixRenames []Rename
	fileRenames       []Rename
	fileRenameIndex   map[string]string
	soundEventRenames []Rename
	blockNamespace    Rename
	itemNamespace     Rename
	requiredNewAssets []string
}

// New validates def and builds a RuleSet from a private copy of it
func New(def Definition) (*RuleSet, error) {
	if err := validate(def); err != nil {
		return nil, err
	}

	rs := &RuleSet{
		target:            def.Target,
		pathPrefixRenames: cloneRenames(def.PathPrefixRenames),
		fileRenames:       cloneRenames(def.FileRenames),
		fileRenameIndex:   make(map[string]string, len(def.FileRenames)),
		soundEventRenames: cloneRenames(def.SoundEventRenames),
		blockNamespace:    def.BlockNamespace,
		itemNamespace:     def.ItemNamespace,
		requiredNewAssets: append([]string(nil), def.RequiredNewAssets...),
	}
	for _, r := range rs.fileRenames {
		rs.fileRenameIndex[r.From] = r.To
	}
	return rs, nil
}

// Target returns the target metadata
func (rs *RuleSet) Target() Target {
	return rs.target
}

// PathPrefixRenames returns the directory prefix renames in declaration order
func (rs *RuleSet) PathPrefixRenames() []Rename {
	return cloneRenames(rs.pathPrefixRenames)
}

// FileRenames returns the file name renames in declaration order
func (rs *RuleSet) FileRenames() []Rename {
	return cloneRenames(rs.fileRenames)
}

// FileRename returns the new name for a file name, if one is declared
func (rs *RuleSet) FileRename(name string) (string, bool) {
	to, ok := rs.fileRenameIndex[name]
	return to, ok
}

// SoundEventRenames returns the sound event renames in declaration order
func (rs *RuleSet) SoundEventRenames() []Rename {
	return cloneRenames(rs.soundEventRenames)
}

// BlockNamespace returns the block texture reference rename
func (rs *RuleSet) BlockNamespace() Rename {
	return rs.blockNamespace
}

// ItemNamespace returns the item texture reference rename
func (rs *RuleSet) ItemNamespace() Rename {
	return rs.itemNamespace
}

// RequiredNewAssets returns the assets a converted pack may be missing
func (rs *RuleSet) RequiredNewAssets() []string {
	return append([]string(nil), rs.requiredNewAssets...)
}

// Definition returns a mutable copy of the rule set
func (rs *RuleSet) Definition() Definition {
	return Definition{
		Target:            rs.target,
		PathPrefixRenames: rs.PathPrefixRenames(),
		FileRenames:       rs.FileRenames(),
		SoundEventRenames: rs.SoundEventRenames(),
		BlockNamespace:    rs.blockNamespace,
		ItemNamespace:     rs.itemNamespace,
		RequiredNewAssets: rs.RequiredNewAssets(),
	}
}

func cloneRenames(in []Rename) []Rename {
	if in == nil {
		return nil
	}
	out := make([]Rename, len(in))
	copy(out, in)
	return out
}

func validate(def Definition) error {
	if def.Target.Format <= 0 {
		return errors.Newf(errors.ErrConfigValid, "target format must be positive, got %d", def.Target.Format)
	}

	for i, r := range def.PathPrefixRenames {
		if err := paths.ValidateRelative(r.From); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "path_prefix_renames[%d].from is invalid", i)
		}
		if err := paths.ValidateRelative(r.To); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "path_prefix_renames[%d].to is invalid", i)
		}
		if r.IsIdentity() {
			return errors.Newf(errors.ErrConfigValid, "path_prefix_renames[%d] maps %q onto itself", i, r.From)
		}
	}

	if err := validateFileRenames(def.FileRenames); err != nil {
		return err
	}

	seen := make(map[string]int, len(def.SoundEventRenames))
	for i, r := range def.SoundEventRenames {
		if r.From == "" || r.To == "" {
			return errors.Newf(errors.ErrConfigValid, "sound_event_renames[%d] needs both from and to", i)
		}
		if prev, dup := seen[r.From]; dup {
			return errors.Newf(errors.ErrRuleConflict, "sound event %q is renamed twice", r.From).
				WithDetail("first", prev).
				WithDetail("second", i)
		}
		seen[r.From] = i
	}

	namespaces := []struct {
		name string
		ns   Rename
	}{
		{"block_namespace", def.BlockNamespace},
		{"item_namespace", def.ItemNamespace},
	}
	for _, n := range namespaces {
		if n.ns.IsZero() {
			continue
		}
		if n.ns.From == "" || n.ns.To == "" {
			return errors.Newf(errors.ErrConfigValid, "%s needs both from and to", n.name)
		}
	}

	for i, asset := range def.RequiredNewAssets {
		if err := paths.ValidateRelative(asset); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "required_new_assets[%d] is invalid", i)
		}
	}
	return nil
}

// validateFileRenames rejects duplicate sources, two sources sharing a
// destination and rename chains
func validateFileRenames(renames []Rename) error {
	from := make(map[string]int, len(renames))
	to := make(map[string]int, len(renames))
	for i, r := range renames {
		if r.From == "" || r.To == "" {
			return errors.Newf(errors.ErrConfigValid, "file_renames[%d] needs both from and to", i)
		}
		if strings.ContainsAny(r.From, `/\`) || strings.ContainsAny(r.To, `/\`) {
			return errors.Newf(errors.ErrConfigValid, "file_renames[%d] must name files, not paths", i)
		}
		if prev, dup := from[r.From]; dup {
			return errors.Newf(errors.ErrRuleConflict, "file %q is renamed twice", r.From).
				WithDetail("first", prev).
				WithDetail("second", i)
		}
		from[r.From] = i
		if r.IsIdentity() {
			continue
		}
		if prev, dup := to[r.To]; dup {
			return errors.Newf(errors.ErrRuleConflict, "files %q and %q are both renamed to %q",
				renames[prev].From, r.From, r.To).
				WithDetail("first", prev).
				WithDetail("second", i)
		}
		to[r.To] = i
	}

	// A chain a -> b -> c would rename again on every run
	for i, r := range renames {
		if r.IsIdentity() {
			continue
		}
		if next, chained := from[r.To]; chained {
			return errors.Newf(errors.ErrRuleConflict, "file %q is renamed to %q, which is renamed again", r.From, r.To).
				WithDetail("first", i).
				WithDetail("second", next)
		}
	}
	return nil
}
