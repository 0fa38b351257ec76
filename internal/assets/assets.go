package assets

import (
	"embed"
	"io/fs"
)

//go:embed embedded_templates
var Templates embed.FS

//go:embed embedded_schemas
var Schemas embed.FS

// GetTemplatesFS returns the template tree rooted below the embed
// directory, so callers address "templates/...".
func GetTemplatesFS() fs.FS {
	if sub, err := fs.Sub(Templates, "embedded_templates"); err == nil {
		return sub
	}
	return Templates
}

// GetSchemasFS returns the schema tree rooted below the embed directory,
// so callers address "schemas/...".
func GetSchemasFS() fs.FS {
	if sub, err := fs.Sub(Schemas, "embedded_schemas"); err == nil {
		return sub
	}
	return Schemas
}

// GetEmbeddedAsset retrieves any embedded asset by its full embed path.
func GetEmbeddedAsset(path string) ([]byte, error) {
	if data, err := fs.ReadFile(Templates, path); err == nil {
		return data, nil
	}
	if data, err := fs.ReadFile(Schemas, path); err == nil {
		return data, nil
	}
	return nil, fs.ErrNotExist
}
