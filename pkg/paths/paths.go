package paths

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/packmapper/pkg/errors"
)

// Default pack conventions for the Java edition asset layout.
const (
	DefaultMetadataFile   = "pack.mcmeta"
	DefaultTextureRoot    = "assets/minecraft/textures"
	DefaultModelRoot      = "assets/minecraft/models"
	DefaultBlockstateRoot = "assets/minecraft/blockstates"
	DefaultSoundsFile     = "assets/minecraft/sounds.json"
	DefaultDefinitionExt  = ".json"
	DefaultImageExt       = ".png"
	DefaultArchiveExt     = ".zip"
)

// Layout describes where things live inside a resource pack
type Layout struct {
	MetadataFile   string `koanf:"metadata_file" toml:"metadata_file" yaml:"metadata_file"`
	TextureRoot    string `koanf:"texture_root" toml:"texture_root" yaml:"texture_root"`
	ModelRoot      string `koanf:"model_root" toml:"model_root" yaml:"model_root"`
	BlockstateRoot string `koanf:"blockstate_root" toml:"blockstate_root" yaml:"blockstate_root"`
	SoundsFile     string `koanf:"sounds_file" toml:"sounds_file" yaml:"sounds_file"`
	DefinitionExt  string `koanf:"definition_ext" toml:"definition_ext" yaml:"definition_ext"`
	ImageExt       string `koanf:"image_ext" toml:"image_ext" yaml:"image_ext"`
	ArchiveExt     string `koanf:"archive_ext" toml:"archive_ext" yaml:"archive_ext"`
}

// DefaultLayout returns the standard resource pack layout
func DefaultLayout() Layout {
	return Layout{
		MetadataFile:   DefaultMetadataFile,
		TextureRoot:    DefaultTextureRoot,
		ModelRoot:      DefaultModelRoot,
		BlockstateRoot: DefaultBlockstateRoot,
		SoundsFile:     DefaultSoundsFile,
		DefinitionExt:  DefaultDefinitionExt,
		ImageExt:       DefaultImageExt,
		ArchiveExt:     DefaultArchiveExt,
	}
}

// Validate checks that every path is relative, clean and non-empty
func (l Layout) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"metadata_file", l.MetadataFile},
		{"texture_root", l.TextureRoot},
		{"model_root", l.ModelRoot},
		{"blockstate_root", l.BlockstateRoot},
		{"sounds_file", l.SoundsFile},
	}
	for _, f := range fields {
		if err := ValidateRelative(f.value); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "layout.%s is invalid", f.name).
				WithDetail("value", f.value)
		}
	}

	exts := []struct {
		name  string
		value string
	}{
		{"definition_ext", l.DefinitionExt},
		{"image_ext", l.ImageExt},
		{"archive_ext", l.ArchiveExt},
	}
	for _, e := range exts {
		if !strings.HasPrefix(e.value, ".") || len(e.value) < 2 {
			return errors.Newf(errors.ErrConfigValid, "layout.%s must start with a dot", e.name).
				WithDetail("value", e.value)
		}
	}
	return nil
}

// ValidateRelative checks that p is a slash-separated path that stays
// inside the pack root
func ValidateRelative(p string) error {
	if p == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.Contains(p, `\`) {
		return fmt.Errorf("path %q must use forward slashes", p)
	}
	if path.IsAbs(p) {
		return fmt.Errorf("path %q must be relative", p)
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path %q escapes the pack root", p)
	}
	return nil
}

// IsUnder reports whether rel (a pack-relative slash path) lies strictly
// inside dir
func IsUnder(rel, dir string) bool {
	rel = path.Clean(rel)
	dir = path.Clean(dir)
	return rel != dir && strings.HasPrefix(rel, dir+"/")
}

// Join resolves pack-relative slash paths against a host root directory
func Join(root string, rel ...string) string {
	parts := make([]string, 0, len(rel)+1)
	parts = append(parts, root)
	for _, r := range rel {
		parts = append(parts, filepath.FromSlash(r))
	}
	return filepath.Join(parts...)
}

// Rel returns the slash-separated path of target relative to root
func Rel(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// HasExt reports whether name ends in ext, ignoring case
func HasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// IsArchivePath reports whether an output path names an archive
func (l Layout) IsArchivePath(p string) bool {
	return HasExt(p, l.ArchiveExt)
}

// IsWithin reports whether target is root itself or lies below it.
// Both paths are made absolute first.
func IsWithin(root, target string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false, err
	}
	rel, err := Rel(absRoot, absTarget)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, "../")), nil
}
