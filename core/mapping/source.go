package mapping

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// SourceFormat identifies the encoding of a raw mapping document.
type SourceFormat string

const (
	FormatJSON SourceFormat = "json"
	FormatYAML SourceFormat = "yaml"
)

// DecodeJSON deserializes a JSON mapping document into the generic node tree
// the parser consumes.
func DecodeJSON(data []byte) (map[string]any, error) {
	var node map[string]any
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode mapping source as JSON: %w", err)
	}
	return node, nil
}

// DecodeYAML deserializes a YAML mapping document into the generic node tree
// the parser consumes.
func DecodeYAML(data []byte) (map[string]any, error) {
	var node map[string]any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode mapping source as YAML: %w", err)
	}
	return node, nil
}

// DecodeSource deserializes a raw mapping document in the given format.
func DecodeSource(data []byte, format SourceFormat) (map[string]any, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported mapping source format %q", format)
	}
}
