// Package output formats configuration data and specification listings.
package output

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx"
)

// EncodeTOML renders a configuration as TOML, one section per sheet.
func EncodeTOML(cfg namedxlsx.Config) ([]byte, error) {
	return toml.Marshal(map[string]map[string]any(cfg))
}

// DecodeTOML parses a TOML configuration document.
func DecodeTOML(data []byte) (namedxlsx.Config, error) {
	var raw map[string]map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return namedxlsx.Config(raw), nil
}
