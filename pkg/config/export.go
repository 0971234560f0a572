package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/packmapper/pkg/errors"
)

// Export formats accepted by Marshal
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Marshal renders the effective configuration in the given format so it
// can be saved and edited as a user config
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case FormatTOML, "":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(c); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration as toml")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration as yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration as yaml")
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown export format %q", format).
			WithDetail("allowed", []string{FormatTOML, FormatYAML})
	}
}
