// Package merge decides clash winners, plans a collision-free copy set
// under canonical names, and executes the plan into a merged output
// directory.
package merge

import (
	"fmt"
	"sort"

	"github.com/typevault/fontmerge/pkg/clash"
	"github.com/typevault/fontmerge/pkg/fontver"
	"github.com/typevault/fontmerge/pkg/scanner"
)

// SourceVersion records what one contending source offered in a clash:
// the first listed file for the pair and the version it carries.
type SourceVersion struct {
	Source  string `json:"source" yaml:"source"`
	Path    string `json:"file" yaml:"file"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Decision resolves one clashing (family, subfamily) pair. Versions holds
// every contender in declared source order so a tie-broken winner stays
// auditable.
type Decision struct {
	Family    string          `json:"family" yaml:"family"`
	Subfamily string          `json:"subfamily" yaml:"subfamily"`
	Winner    string          `json:"winner" yaml:"winner"`
	Versions  []SourceVersion `json:"versions" yaml:"versions"`
}

// Copy is one planned copy: a source-relative file and the canonical
// output name it lands under.
type Copy struct {
	Source string `json:"source" yaml:"source"`
	Path   string `json:"file" yaml:"file"`
	Output string `json:"output" yaml:"output"`
}

// SourceStats counts one source's planned copies and skips.
type SourceStats struct {
	Source  string `json:"source" yaml:"source"`
	Copied  int    `json:"copied" yaml:"copied"`
	Skipped int    `json:"skipped" yaml:"skipped"`
}

// Plan is the full outcome of planning a merge. It is a pure function of
// the report and the scanned sources; planning twice over identical
// inputs yields deeply equal plans.
type Plan struct {
	Decisions []Decision          `json:"decisions,omitempty" yaml:"decisions,omitempty"`
	Copies    []Copy              `json:"copies" yaml:"copies"`
	Skips     map[string][]string `json:"skips,omitempty" yaml:"skips,omitempty"`
	Stats     []SourceStats       `json:"stats" yaml:"stats"`
}

// FindDecision returns the decision for a clashing (family, subfamily)
// pair, matching the subfamily by its normalized label.
func (p *Plan) FindDecision(family, subfamily string) (Decision, bool) {
	label := clash.Normalize(subfamily)
	for _, d := range p.Decisions {
		if d.Family == family && d.Subfamily == label {
			return d, true
		}
	}
	return Decision{}, false
}

// IsSkipped reports whether the plan drops the given source file.
func (p *Plan) IsSkipped(source, path string) bool {
	paths := p.Skips[source]
	i := sort.SearchStrings(paths, path)
	return i < len(paths) && paths[i] == path
}

// OutputFor returns the canonical output name assigned to a source file,
// ok=false when the file was skipped or never planned.
func (p *Plan) OutputFor(source, path string) (string, bool) {
	for _, c := range p.Copies {
		if c.Source == source && c.Path == path {
			return c.Output, true
		}
	}
	return "", false
}

// Build plans a merge from the clash report and the scanned sources.
// Sources must be in declared configuration order. Winner selection takes
// the greatest version among each clash's contenders; an exact tie keeps
// the earliest declared source. A losing file is skipped only when every
// family it serves is itself clashing, so unique content always survives.
// Copies visit sources in declared order and each source's files in
// sorted path order, assigning canonical names and resolving collisions
// through one shared registry of used names.
func Build(report clash.Report, sources []*scanner.Source) (*Plan, error) {
	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		if seen[src.Name] {
			return nil, fmt.Errorf("duplicate source name %q", src.Name)
		}
		seen[src.Name] = true
	}

	plan := &Plan{Skips: make(map[string][]string)}
	candidates := decide(report, plan)
	finalizeSkips(plan, candidates, report.FamilySet(), sources)
	planCopies(plan, sources)

	for _, src := range sources {
		copied := 0
		for _, c := range plan.Copies {
			if c.Source == src.Name {
				copied++
			}
		}
		plan.Stats = append(plan.Stats, SourceStats{
			Source:  src.Name,
			Copied:  copied,
			Skipped: len(plan.Skips[src.Name]),
		})
	}
	if len(plan.Skips) == 0 {
		plan.Skips = nil
	}
	return plan, nil
}

// decide fills plan.Decisions and returns the per-source skip candidates,
// the files contributed by every losing side of a clash.
func decide(report clash.Report, plan *Plan) map[string]map[string]bool {
	candidates := make(map[string]map[string]bool)
	for _, fc := range report {
		for _, sc := range fc.Subfamilies {
			d := Decision{Family: fc.Family, Subfamily: sc.Subfamily}
			var best fontver.Tuple
			for _, se := range sc.Sources {
				first := se.Entries[0]
				d.Versions = append(d.Versions, SourceVersion{
					Source:  se.Source,
					Path:    first.Path,
					Version: first.Version,
				})
				if t := fontver.Parse(first.Version); fontver.Compare(t, best) == fontver.ComparisonGreater {
					best = t
					d.Winner = se.Source
				}
			}
			plan.Decisions = append(plan.Decisions, d)

			for _, se := range sc.Sources {
				if se.Source == d.Winner {
					continue
				}
				set := candidates[se.Source]
				if set == nil {
					set = make(map[string]bool)
					candidates[se.Source] = set
				}
				for _, e := range se.Entries {
					set[e.Path] = true
				}
			}
		}
	}
	return candidates
}

// finalizeSkips keeps a candidate only when all of the file's families
// are clashing. A file that also serves a non-clashing family is kept
// even though it lost, so nothing unique to it is dropped.
func finalizeSkips(plan *Plan, candidates map[string]map[string]bool, clashing map[string]bool, sources []*scanner.Source) {
	for _, src := range sources {
		set := candidates[src.Name]
		if len(set) == 0 {
			continue
		}
		var skipped []string
		for path := range set {
			keep := false
			for _, c := range src.Files[path] {
				if !clashing[c.Family] {
					keep = true
					break
				}
			}
			if !keep {
				skipped = append(skipped, path)
			}
		}
		if len(skipped) > 0 {
			sort.Strings(skipped)
			plan.Skips[src.Name] = skipped
		}
	}
}

// planCopies assigns canonical output names to every surviving file.
func planCopies(plan *Plan, sources []*scanner.Source) {
	used := make(map[string]bool)
	for _, src := range sources {
		for _, relPath := range src.FontFiles {
			if plan.IsSkipped(src.Name, relPath) {
				continue
			}
			name := uniqueName(CanonicalName(relPath, src.Files[relPath]), used)
			used[name] = true
			plan.Copies = append(plan.Copies, Copy{
				Source: src.Name,
				Path:   relPath,
				Output: name,
			})
		}
	}
}
