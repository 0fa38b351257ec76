// Package manifest assembles the record of a merge run and renders it
// as the fonts manifest, family listings, XML export, and markdown
// report.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/typevault/fontmerge/pkg/merge"
	"github.com/typevault/fontmerge/pkg/scanner"
)

// DefaultLocale groups a source's families when it has no locale map.
const DefaultLocale = "core"

// Offer is what one contending source put forward in a clash.
type Offer struct {
	File    string `json:"file" yaml:"file"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Provenance marks a manifest entry that went through clash resolution.
// From names the winning source; Original is the entry's path inside its
// own source before any renaming or skipping.
type Provenance struct {
	WasClashed bool             `json:"was_clashed" yaml:"was_clashed"`
	From       string           `json:"from" yaml:"from"`
	Original   string           `json:"original" yaml:"original"`
	Clashed    map[string]Offer `json:"clashed" yaml:"clashed"`
}

// Entry describes one logical font of one family. File is the canonical
// merged name; a clashed entry carries the winner's merged file and
// version no matter which source the entry came from, so every contender
// points at the file that actually shipped.
type Entry struct {
	Subfamily string      `json:"subfamily,omitempty" yaml:"subfamily,omitempty"`
	File      string      `json:"file" yaml:"file"`
	Version   string      `json:"version,omitempty" yaml:"version,omitempty"`
	Source    *Provenance `json:"source,omitempty" yaml:"source,omitempty"`
}

// Data is the manifest tree: source name → locale → family → entries.
// Map-based on purpose; renderers emit keys in sorted order, so the tree
// marshals identically across runs.
type Data map[string]map[string]map[string][]Entry

// LocaleMap groups family names by locale tag.
type LocaleMap map[string][]string

// LoadLocaleMap reads a {locale: [family, ...]} JSON file.
func LoadLocaleMap(path string) (LocaleMap, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the sources configuration
	if err != nil {
		return nil, fmt.Errorf("locale map: %w", err)
	}
	var m LocaleMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("locale map %s: %w", path, err)
	}
	return m, nil
}

// Build assembles the manifest tree from the scanned sources and the
// executed (or planned) merge. Sources without a locale map group all
// their families under DefaultLocale. A locale family missing from the
// source's index is dropped silently; locale maps routinely cover more
// than a given build of a source ships.
func Build(sources []*scanner.Source, plan *merge.Plan, locales map[string]LocaleMap) Data {
	data := make(Data, len(sources))
	for _, src := range sources {
		lm := locales[src.Name]
		if len(lm) == 0 {
			lm = LocaleMap{DefaultLocale: src.Families.Families()}
		}
		srcData := make(map[string]map[string][]Entry, len(lm))
		for locale, families := range lm {
			localeData := make(map[string][]Entry)
			for _, family := range families {
				entries, ok := src.Families[family]
				if !ok {
					continue
				}
				list := make([]Entry, 0, len(entries))
				for _, e := range entries {
					list = append(list, buildEntry(src, plan, family, e))
				}
				localeData[family] = list
			}
			srcData[locale] = localeData
		}
		data[src.Name] = srcData
	}
	return data
}

func buildEntry(src *scanner.Source, plan *merge.Plan, family string, e scanner.Entry) Entry {
	if d, ok := plan.FindDecision(family, e.Subfamily); ok {
		return clashedEntry(plan, d, e)
	}
	file, copied := plan.OutputFor(src.Name, e.Path)
	if !copied {
		file = e.Path
	}
	return Entry{Subfamily: e.Subfamily, File: file, Version: e.Version}
}

// clashedEntry resolves an entry of a clashing pair to the winner's
// merged file and version, whichever contender it came from.
func clashedEntry(plan *merge.Plan, d merge.Decision, e scanner.Entry) Entry {
	var winnerPath, winnerVersion string
	offers := make(map[string]Offer, len(d.Versions))
	for _, v := range d.Versions {
		offers[v.Source] = Offer{File: v.Path, Version: v.Version}
		if v.Source == d.Winner {
			winnerPath = v.Path
			winnerVersion = v.Version
		}
	}
	file, copied := plan.OutputFor(d.Winner, winnerPath)
	if !copied {
		file = winnerPath
	}
	return Entry{
		Subfamily: e.Subfamily,
		File:      file,
		Version:   winnerVersion,
		Source: &Provenance{
			WasClashed: true,
			From:       d.Winner,
			Original:   e.Path,
			Clashed:    offers,
		},
	}
}
