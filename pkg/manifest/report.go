package manifest

import (
	"fmt"
	"io/fs"

	"github.com/aymerick/raymond"

	"github.com/typevault/fontmerge/internal/assets"
	"github.com/typevault/fontmerge/pkg/merge"
)

const reportTemplatePath = "templates/report/merge-report.md.hbs"

// ReportData feeds the markdown merge report template.
type ReportData struct {
	GeneratedAt string
	OutputDir   string
	DryRun      bool
	Stats       []merge.SourceStats
	Decisions   []merge.Decision
	Copied      int
}

func init() {
	// raymond keeps one global helper registry and panics on
	// re-registration, so helpers are bound exactly once here.
	raymond.RegisterHelper("orDash", func(value string) string {
		if value == "" {
			return "-"
		}
		return value
	})
}

// RenderReport renders the markdown merge report from the embedded
// Handlebars template.
func RenderReport(data ReportData) (string, error) {
	tpl, err := fs.ReadFile(assets.GetTemplatesFS(), reportTemplatePath)
	if err != nil {
		return "", fmt.Errorf("merge report template: %w", err)
	}
	out, err := raymond.Render(string(tpl), data)
	if err != nil {
		return "", fmt.Errorf("render merge report: %w", err)
	}
	return out, nil
}
