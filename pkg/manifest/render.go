package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects a manifest encoding.
type OutputFormat string

const (
	FormatYAML OutputFormat = "yaml"
	FormatJSON OutputFormat = "json"
	FormatXML  OutputFormat = "xml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON, FormatXML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported manifest format %q (yaml, json, xml)", s)
	}
}

// Formatter renders manifest data in one of the supported encodings.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a formatter for the given encoding.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// Filename returns the conventional manifest filename for the encoding.
func (f *Formatter) Filename() string {
	switch f.format {
	case FormatJSON:
		return "fonts.json"
	case FormatXML:
		return "fonts.xml"
	default:
		return "fonts.yml"
	}
}

// Render encodes the manifest tree.
func (f *Formatter) Render(data Data) ([]byte, error) {
	switch f.format {
	case FormatYAML:
		return EncodeYAML(data)
	case FormatJSON:
		return EncodeJSON(data)
	case FormatXML:
		return EncodeXML(data)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", f.format)
	}
}

// EncodeYAML renders the manifest tree as fonts.yml content. Map keys
// marshal in sorted order, so identical trees yield identical bytes.
func EncodeYAML(data Data) ([]byte, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode fonts manifest: %w", err)
	}
	return out, nil
}

// EncodeJSON renders the manifest tree as indented JSON.
func EncodeJSON(data Data) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode fonts manifest: %w", err)
	}
	return append(out, '\n'), nil
}

// FamiliesJSON renders the family listing derived from the manifest
// tree, source → locale → sorted family names, indented by default and
// compact for the .min variant.
func FamiliesJSON(data Data, compact bool) ([]byte, error) {
	listing := make(map[string]map[string][]string, len(data))
	for src, locales := range data {
		byLocale := make(map[string][]string, len(locales))
		for locale, families := range locales {
			names := make([]string, 0, len(families))
			for family := range families {
				names = append(names, family)
			}
			sort.Strings(names)
			byLocale[locale] = names
		}
		listing[src] = byLocale
	}

	var out []byte
	var err error
	if compact {
		out, err = json.Marshal(listing)
	} else {
		out, err = json.MarshalIndent(listing, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encode family listing: %w", err)
	}
	return append(out, '\n'), nil
}
