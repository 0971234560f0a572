package passes

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/filesystem"
	"github.com/arthur-debert/packmapper/pkg/jsondoc"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/rules"
)

// MetadataPassName is the name of the metadata pass
const MetadataPassName = "metadata"

// Keys of the pack metadata descriptor
const (
	packKey             = "pack"
	packFormatKey       = "pack_format"
	supportedFormatsKey = "supported_formats"
	descriptionKey      = "description"
)

// MetadataPass declares the target pack format in pack.mcmeta
type MetadataPass struct {
	target rules.Target
}

// NewMetadataPass creates a new MetadataPass
func NewMetadataPass(rs *rules.RuleSet) *MetadataPass {
	return &MetadataPass{target: rs.Target()}
}

// Name returns the unique name of this pass
func (p *MetadataPass) Name() string {
	return MetadataPassName
}

// Description returns a human-readable description
func (p *MetadataPass) Description() string {
	return "Writes the target pack format to the pack metadata"
}

// Apply synthesizes the descriptor when it is missing and otherwise sets
// the pack format, adding supported_formats only when absent. A
// descriptor that cannot be parsed fails the pass.
func (p *MetadataPass) Apply(tree Tree) (*Report, error) {
	logger := logging.GetLogger("passes.metadata")
	report := NewReport(p.Name())
	rel := tree.Layout.MetadataFile
	path := tree.Path(rel)

	if !filesystem.Exists(tree.FS, path) {
		data, err := jsondoc.Marshal(p.synthesize())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode pack metadata")
		}
		if err := tree.FS.WriteFile(path, data, 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", rel)
		}
		report.Created = 1
		logger.Info().Str("path", rel).Int("format", p.target.Format).Msg("Created pack metadata")
		return report, nil
	}

	original, err := tree.FS.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", rel)
	}
	doc, err := p.update(original)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMalformedMetadata, "%s is malformed", rel).
			WithDetail("path", rel)
	}

	data, err := jsondoc.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode pack metadata")
	}
	if bytes.Equal(data, original) {
		logger.Debug().Str("path", rel).Msg("Pack metadata already up to date")
		return report, nil
	}
	if err := tree.FS.WriteFile(path, data, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", rel)
	}
	report.Rewritten = 1
	logger.Info().Str("path", rel).Int("format", p.target.Format).Msg("Updated pack metadata")
	return report, nil
}

func (p *MetadataPass) format() json.Number {
	return json.Number(strconv.Itoa(p.target.Format))
}

func (p *MetadataPass) synthesize() *jsondoc.Object {
	pack := jsondoc.NewObject()
	pack.Set(packFormatKey, p.format())
	pack.Set(supportedFormatsKey, []any{p.format()})
	pack.Set(descriptionKey, p.target.Description)

	doc := jsondoc.NewObject()
	doc.Set(packKey, pack)
	return doc
}

func (p *MetadataPass) update(data []byte) (*jsondoc.Object, error) {
	doc, err := jsondoc.ParseObject(data)
	if err != nil {
		return nil, err
	}

	var pack *jsondoc.Object
	switch v, _ := doc.Get(packKey); v := v.(type) {
	case nil:
		pack = jsondoc.NewObject()
		doc.Set(packKey, pack)
	case *jsondoc.Object:
		pack = v
	default:
		return nil, errors.Newf(errors.ErrMalformedMetadata, "%q is %s, not an object", packKey, jsondoc.TypeName(v))
	}

	pack.Set(packFormatKey, p.format())
	if !pack.Has(supportedFormatsKey) {
		pack.Set(supportedFormatsKey, []any{p.format()})
	}
	return doc, nil
}
