package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/typevault/fontmerge/internal/assets"
)

// sourcesSchema is compiled once from the embedded schema. A nil value
// means the embedded asset failed to compile, which Validate reports.
var sourcesSchema *gojsonschema.Schema

func init() {
	data, ok := assets.GetSchema(assets.SchemaSourcesV1)
	if !ok {
		return
	}

	// Schemas are authored in YAML; gojsonschema wants JSON.
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jsonBytes))
	if err != nil {
		return
	}
	sourcesSchema = schema
}

// ValidateSourcesDoc validates a decoded sources manifest against the
// embedded draft-07 schema.
func ValidateSourcesDoc(doc interface{}) error {
	if sourcesSchema == nil {
		return fmt.Errorf("embedded sources schema unavailable")
	}

	result, err := sourcesSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation error: %v", err)
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}
		return fmt.Errorf("sources validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
