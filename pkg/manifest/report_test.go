package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typevault/fontmerge/pkg/merge"
)

func reportFixture() ReportData {
	return ReportData{
		GeneratedAt: "2025-11-05T12:00:00Z",
		OutputDir:   "merged",
		Stats: []merge.SourceStats{
			{Source: "vendor", Copied: 2, Skipped: 1},
			{Source: "distro", Copied: 3, Skipped: 0},
		},
		Decisions: []merge.Decision{
			{
				Family:    "Example",
				Subfamily: "Regular",
				Winner:    "distro",
				Versions: []merge.SourceVersion{
					{Source: "vendor", Path: "example.ttf", Version: "Version 1.00"},
					{Source: "distro", Path: "fonts/example.ttf", Version: ""},
				},
			},
		},
		Copied: 5,
	}
}

func TestRenderReport(t *testing.T) {
	out, err := RenderReport(reportFixture())
	require.NoError(t, err)

	assert.Contains(t, out, "# Font Merge Report")
	assert.Contains(t, out, "Generated: 2025-11-05T12:00:00Z")
	assert.Contains(t, out, "Output directory: `merged`")
	assert.Contains(t, out, "| vendor | 2 | 1 |")
	assert.Contains(t, out, "| distro | 3 | 0 |")
	assert.Contains(t, out, "### Example / Regular")
	assert.Contains(t, out, "Winner: **distro**")
	assert.Contains(t, out, "| vendor | `example.ttf` | Version 1.00 |")
	assert.Contains(t, out, "| distro | `fonts/example.ttf` | - |", "a missing version renders as a dash")
	assert.Contains(t, out, "5 files in the merged set.")
	assert.NotContains(t, out, "dry run")
	assert.NotContains(t, out, "No clashes detected.")
}

func TestRenderReportDryRun(t *testing.T) {
	data := reportFixture()
	data.DryRun = true
	out, err := RenderReport(data)
	require.NoError(t, err)
	assert.Contains(t, out, "_(dry run)_")
}

func TestRenderReportNoClashes(t *testing.T) {
	data := reportFixture()
	data.Decisions = nil
	out, err := RenderReport(data)
	require.NoError(t, err)
	assert.Contains(t, out, "No clashes detected.")
	assert.NotContains(t, out, "Winner:")
}
