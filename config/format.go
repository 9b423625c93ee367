package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

// Format is the serialization format of configuration files. Its value is
// also the file extension the loader looks for.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Extension returns the file extension without the leading dot.
func (f Format) Extension() string { return string(f) }

func (f Format) valid() bool {
	return f == FormatYAML || f == FormatJSON
}

func (f Format) parser() koanf.Parser {
	if f == FormatJSON {
		return json.Parser()
	}
	return yaml.Parser()
}

// ParseFormat converts a user-supplied name ("yaml", "yml", "json") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported config format %q", s)
	}
}
