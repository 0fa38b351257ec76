// Package clash compares family indexes across scanned sources and
// reports the (family, subfamily) pairs contended by more than one
// source, annotated with everything else each contending file provides.
package clash

import (
	"sort"

	"github.com/typevault/fontmerge/pkg/scanner"
)

// DefaultSubfamily is the grouping label for entries that do not declare
// a subfamily.
const DefaultSubfamily = "Regular"

// Normalize maps an absent subfamily to DefaultSubfamily. Clash grouping
// and lookups operate on normalized labels throughout.
func Normalize(subfamily string) string {
	if subfamily == "" {
		return DefaultSubfamily
	}
	return subfamily
}

// Entry is one contending file inside a subfamily clash. AlsoContains
// lists the other (family, subfamily) pairs the same physical file
// provides; a file serving only the clashing pair has none.
type Entry struct {
	Path         string                 `json:"file" yaml:"file"`
	Version      string                 `json:"version,omitempty" yaml:"version,omitempty"`
	AlsoContains []scanner.Contribution `json:"also_contains,omitempty" yaml:"also_contains,omitempty"`
}

// SourceEntries groups one source's contending entries for a subfamily.
type SourceEntries struct {
	Source  string  `json:"source" yaml:"source"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// SubfamilyClash is one (family, subfamily) pair contended by two or
// more sources. Sources appear in declared source order.
type SubfamilyClash struct {
	Subfamily string          `json:"subfamily" yaml:"subfamily"`
	Sources   []SourceEntries `json:"sources" yaml:"sources"`
}

// FamilyClash collects every contended subfamily of one family.
// Subfamilies are sorted by label.
type FamilyClash struct {
	Family      string           `json:"family" yaml:"family"`
	Subfamilies []SubfamilyClash `json:"subfamilies" yaml:"subfamilies"`
}

// Report lists every clashing family in sorted family order. A family
// appears only when at least one of its subfamilies is contended; two
// sources sharing a family name but never a subfamily do not clash.
type Report []FamilyClash

// Families returns the clashing family names in report order.
func (r Report) Families() []string {
	names := make([]string, 0, len(r))
	for _, fc := range r {
		names = append(names, fc.Family)
	}
	return names
}

// FamilySet returns the clashing family names as a membership set.
func (r Report) FamilySet() map[string]bool {
	set := make(map[string]bool, len(r))
	for _, fc := range r {
		set[fc.Family] = true
	}
	return set
}

// PairCount returns the number of contended (family, subfamily) pairs.
func (r Report) PairCount() int {
	n := 0
	for _, fc := range r {
		n += len(fc.Subfamilies)
	}
	return n
}

// Detect builds the clash report for the given sources. Sources must be
// in declared configuration order; that order is preserved inside every
// SubfamilyClash and later drives the merge tie-break.
func Detect(sources []*scanner.Source) Report {
	families := make(map[string]bool)
	for _, src := range sources {
		for family := range src.Families {
			families[family] = true
		}
	}
	names := make([]string, 0, len(families))
	for family := range families {
		names = append(names, family)
	}
	sort.Strings(names)

	var report Report
	for _, family := range names {
		if fc, ok := detectFamily(family, sources); ok {
			report = append(report, fc)
		}
	}
	return report
}

// detectFamily reports the contended subfamilies of one family, or
// ok=false when fewer than two sources provide the family or no
// subfamily is shared.
func detectFamily(family string, sources []*scanner.Source) (FamilyClash, bool) {
	type sourceGroup struct {
		source *scanner.Source
		bySub  map[string][]scanner.Entry
	}
	var groups []sourceGroup
	for _, src := range sources {
		entries, ok := src.Families[family]
		if !ok {
			continue
		}
		bySub := make(map[string][]scanner.Entry)
		for _, e := range entries {
			label := Normalize(e.Subfamily)
			bySub[label] = append(bySub[label], e)
		}
		groups = append(groups, sourceGroup{source: src, bySub: bySub})
	}
	if len(groups) < 2 {
		return FamilyClash{}, false
	}

	labels := make(map[string]bool)
	for _, g := range groups {
		for label := range g.bySub {
			labels[label] = true
		}
	}
	sorted := make([]string, 0, len(labels))
	for label := range labels {
		sorted = append(sorted, label)
	}
	sort.Strings(sorted)

	fc := FamilyClash{Family: family}
	for _, label := range sorted {
		var contending []SourceEntries
		for _, g := range groups {
			entries, ok := g.bySub[label]
			if !ok {
				continue
			}
			se := SourceEntries{Source: g.source.Name}
			for _, e := range entries {
				se.Entries = append(se.Entries, Entry{
					Path:         e.Path,
					Version:      e.Version,
					AlsoContains: alsoContains(g.source.Files, e.Path, family, label),
				})
			}
			contending = append(contending, se)
		}
		if len(contending) < 2 {
			continue
		}
		fc.Subfamilies = append(fc.Subfamilies, SubfamilyClash{
			Subfamily: label,
			Sources:   contending,
		})
	}
	if len(fc.Subfamilies) == 0 {
		return FamilyClash{}, false
	}
	return fc, true
}

// alsoContains lists what else the file at path provides, excluding the
// clashing (family, subfamily) pair itself. Subfamily comparison uses
// the normalized label so an undeclared subfamily matches "Regular".
func alsoContains(files scanner.FileIndex, path, family, label string) []scanner.Contribution {
	var others []scanner.Contribution
	for _, c := range files[path] {
		if c.Family == family && Normalize(c.Subfamily) == label {
			continue
		}
		others = append(others, c)
	}
	return others
}
