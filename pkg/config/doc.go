// Package config handles configuration management for packmapper.
// It loads the pack layout and the conversion rule tables from layered
// sources: the embedded defaults, the user config in the XDG config
// directory, an explicit config file (TOML or YAML) and environment
// variables.
package config
