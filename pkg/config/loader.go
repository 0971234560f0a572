package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/paths"
	"github.com/arthur-debert/packmapper/pkg/rules"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "PACKMAPPER_"

	// EnvConfigDir overrides the XDG config directory for packmapper
	EnvConfigDir = "PACKMAPPER_CONFIG_DIR"

	// UserConfigFile is the name of the user config file
	UserConfigFile = "config.toml"
)

// Config is the complete packmapper configuration
type Config struct {
	Layout paths.Layout     `koanf:"layout" toml:"layout" yaml:"layout"`
	Rules  rules.Definition `koanf:"rules" toml:"rules" yaml:"rules"`
}

// LoadOptions selects the optional configuration layers
type LoadOptions struct {
	// ConfigFile is an explicit config file; .toml, .yaml and .yml are accepted
	ConfigFile string

	// SkipUserConfig ignores the config file in the XDG config directory
	SkipUserConfig bool

	// Overrides are dotted keys such as "rules.target.format", applied
	// last. Command line flags end up here.
	Overrides map[string]interface{}
}

// Load builds the configuration from, in increasing priority: the
// embedded defaults, the user config, opts.ConfigFile, PACKMAPPER_*
// environment variables and opts.Overrides
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(bytesProvider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User config if it exists
	if !opts.SkipUserConfig {
		userPath := UserConfigPath()
		if _, err := os.Stat(userPath); err == nil {
			if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load user config from %s", userPath)
			}
			logger.Debug().Str("path", userPath).Msg("Loaded user config")
		}
	}

	// 3. Explicit config file
	if opts.ConfigFile != "" {
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("Loaded config file")
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
		logger.Debug().Int("keys", len(opts.Overrides)).Msg("Applied overrides")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded default configuration
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(bytesProvider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}
	return unmarshal(k)
}

// DefaultRuleSet returns the rule set of the embedded defaults
func DefaultRuleSet() (*rules.RuleSet, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	return cfg.RuleSet()
}

// RuleSet validates the rule tables and builds the immutable RuleSet
func (c *Config) RuleSet() (*rules.RuleSet, error) {
	return rules.New(c.Rules)
}

// UserConfigPath returns the location of the user config file
func UserConfigPath() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, UserConfigFile)
	}
	return filepath.Join(xdg.ConfigHome, logging.AppDirName, UserConfigFile)
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path)).
			WithDetail("path", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
	}
	return nil
}

// envKey maps PACKMAPPER_TARGET_FORMAT to rules.target.format. Variables
// outside the target section are ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !strings.HasPrefix(key, "target_") {
		return ""
	}
	return "rules.target." + strings.TrimPrefix(key, "target_")
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
