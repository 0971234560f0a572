package passes

import (
	"bytes"
	"path"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/jsondoc"
)

// rewriteFunc edits a parsed definition and reports whether it changed it
type rewriteFunc func(doc *jsondoc.Object) bool

// rewriteDefinitions applies fn to every definition file under dir.
// Files fn changes are written back. A file that fails to load or save
// becomes a warning and keeps its bytes.
func rewriteDefinitions(tree Tree, dir string, report *Report, logger zerolog.Logger, fn rewriteFunc) {
	root := tree.Path(dir)
	files, err := filesystem.Glob(tree.FS, root, "**/*"+tree.Layout.DefinitionExt)
	if err != nil {
		report.Warn(dir, err)
		return
	}

	for _, rel := range files {
		packPath := path.Join(dir, rel)
		full := tree.Path(packPath)

		original, err := tree.FS.ReadFile(full)
		if err != nil {
			report.Warn(packPath, err)
			continue
		}
		doc, err := jsondoc.ParseObject(original)
		if err != nil {
			logger.Warn().Str("path", packPath).Err(err).Msg("Cannot parse definition, leaving it untouched")
			report.Warn(packPath, err)
			continue
		}
		if !fn(doc) {
			continue
		}

		data, err := jsondoc.Marshal(doc)
		if err != nil {
			report.Warn(packPath, err)
			continue
		}
		if bytes.Equal(data, original) {
			continue
		}
		if err := tree.FS.WriteFile(full, data, 0644); err != nil {
			report.Warn(packPath, err)
			continue
		}
		report.Rewritten++
		logger.Debug().Str("path", packPath).Msg("Rewrote definition")
	}
}
