package manifest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeYAMLDeterministic(t *testing.T) {
	build := func() []byte {
		sources, plan := fixture(t)
		out, err := EncodeYAML(Build(sources, plan, nil))
		require.NoError(t, err)
		return out
	}

	first, second := build(), build()
	assert.Equal(t, string(first), string(second), "identical inputs must yield identical bytes")
	assert.Contains(t, string(first), "was_clashed: true")
	assert.Contains(t, string(first), "file: Example-Regular-v2_00.ttf")
}

func TestEncodeJSON(t *testing.T) {
	sources, plan := fixture(t)
	out, err := EncodeJSON(Build(sources, plan, nil))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"file": "Example-Regular-v2_00.ttf"`)
	assert.True(t, strings.HasSuffix(string(out), "\n"))
}

func TestFamiliesJSON(t *testing.T) {
	sources, plan := fixture(t)
	data := Build(sources, plan, nil)

	indented, err := FamiliesJSON(data, false)
	require.NoError(t, err)
	var listing map[string]map[string][]string
	require.NoError(t, json.Unmarshal(indented, &listing))
	assert.Equal(t, map[string]map[string][]string{
		"a": {DefaultLocale: {"Example", "Unique"}},
		"b": {DefaultLocale: {"Example"}},
	}, listing, "listing groups sorted family names per source and locale")

	compact, err := FamiliesJSON(data, true)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"core":["Example","Unique"]},"b":{"core":["Example"]}}`+"\n", string(compact))
}

func TestFormatterFilename(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatYAML, "fonts.yml"},
		{FormatJSON, "fonts.json"},
		{FormatXML, "fonts.xml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewFormatter(tt.format).Filename())
	}
}

func TestFormatterRender(t *testing.T) {
	sources, plan := fixture(t)
	data := Build(sources, plan, nil)

	for _, format := range []OutputFormat{FormatYAML, FormatJSON, FormatXML} {
		out, err := NewFormatter(format).Render(data)
		require.NoError(t, err, "format %s", format)
		assert.NotEmpty(t, out, "format %s", format)
	}

	_, err := NewFormatter("toml").Render(data)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{"Json", FormatJSON, false},
		{" xml ", FormatXML, false},
		{"csv", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
