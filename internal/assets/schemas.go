package assets

// SchemaSourcesV1 is the embed path of the current sources configuration
// schema.
const SchemaSourcesV1 = "embedded_schemas/schemas/sources/v1.0.0/sources.yaml"

// GetSchema returns the embedded schema bytes by embed path (e.g.,
// "embedded_schemas/schemas/sources/v1.0.0/sources.yaml").
func GetSchema(relPath string) ([]byte, bool) {
	data, err := Schemas.ReadFile(relPath)
	return data, err == nil
}
