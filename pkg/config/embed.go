package config

import (
	_ "embed"
	"fmt"
)

// defaultsName is how the embedded defaults are named in error messages
const defaultsName = "embedded/defaults.toml"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// GetDefaultsContent returns the embedded defaults, the production rule
// tables included
func GetDefaultsContent() string {
	return string(defaultConfig)
}

// bytesProvider feeds a byte slice to a koanf parser
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("%s must be read through a parser", defaultsName)
}
