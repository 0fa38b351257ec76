package assets

// Registry lists embedded assets available at runtime.
// Update this when adding/removing curated assets.

type AssetInfo struct {
	Family  string // e.g., schemas, templates
	Version string // e.g., v1.0.0
	Path    string // embed path
}

var Registry = []AssetInfo{
	{
		Family:  "schemas",
		Version: "v1.0.0",
		Path:    "embedded_schemas/schemas/sources/v1.0.0/sources.yaml",
	},
	{
		Family:  "templates",
		Version: "v1.0.0",
		Path:    "embedded_templates/templates/report/merge-report.md.hbs",
	},
}
