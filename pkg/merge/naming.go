package merge

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/typevault/fontmerge/pkg/scanner"
)

// maxStemLen bounds the canonical name before its extension.
const maxStemLen = 200

// CanonicalName derives the output filename for a source file from the
// (family, subfamily) pairs it provides. relPath is the slash-relative
// source path; contributions come from the source's file index and may
// be empty for a file that yielded no records.
//
// Family and subfamily tokens keep only ASCII letters and digits, and
// families whose names clean to nothing drop out entirely. One
// surviving family names the file Family-Subfamily, taking the first
// sorted pair's subfamily and omitting it when that cleans empty.
// Several families join their tokens with "_" when that stays within
// 80 characters; longer sets collapse to Prefix-xN when the tokens
// share a prefix of at least 4 characters, and otherwise fall back to
// the cleaned filename stem. When no family token survives the name
// falls back to the cleaned stem, or "font". The first sorted pair's
// version, when present, is appended as -v with the version cleaned
// down to alphanumerics and dots, dots then becoming underscores. The
// stem is capped at 200 characters and the original extension is kept
// lowercased.
func CanonicalName(relPath string, contributions []scanner.Contribution) string {
	base := path.Base(relPath)
	ext := strings.ToLower(path.Ext(base))
	stem := strings.TrimSuffix(base, path.Ext(base))

	pairs := distinctPairs(contributions)
	if len(pairs) == 0 {
		name := cleanToken(stem)
		if name == "" {
			name = "font"
		}
		return truncate(name, maxStemLen) + ext
	}

	families := distinctFamilies(pairs)
	var name string
	switch len(families) {
	case 0:
		name = cleanToken(stem)
		if name == "" {
			name = "font"
		}
	case 1:
		name = families[0]
		if sub := cleanToken(pairs[0].Subfamily); sub != "" {
			name += "-" + sub
		}
	default:
		name = multiFamilyName(families, stem)
	}

	if v := versionSuffix(pairs[0].Version); v != "" {
		name += "-v" + v
	}
	return truncate(name, maxStemLen) + ext
}

// distinctPairs sorts the contributions by (family, subfamily) and
// deduplicates on that pair, keeping the first occurrence.
func distinctPairs(contributions []scanner.Contribution) []scanner.Contribution {
	seen := make(map[[2]string]bool, len(contributions))
	var pairs []scanner.Contribution
	for _, c := range contributions {
		key := [2]string{c.Family, c.Subfamily}
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, c)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Family != pairs[j].Family {
			return pairs[i].Family < pairs[j].Family
		}
		return pairs[i].Subfamily < pairs[j].Subfamily
	})
	return pairs
}

// distinctFamilies cleans every family name to its token, dropping
// empties and keeping one of each in first-seen order.
func distinctFamilies(pairs []scanner.Contribution) []string {
	seen := make(map[string]bool, len(pairs))
	var families []string
	for _, p := range pairs {
		tok := cleanToken(p.Family)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		families = append(families, tok)
	}
	return families
}

// multiFamilyName joins the cleaned family tokens, collapsing long sets
// to a shared prefix and falling back to the filename stem.
func multiFamilyName(families []string, stem string) string {
	if joined := strings.Join(families, "_"); len(joined) <= 80 {
		return joined
	}
	if prefix := commonPrefix(families); len(prefix) >= 4 {
		return fmt.Sprintf("%s-x%d", prefix, len(families))
	}
	if fallback := cleanToken(stem); fallback != "" {
		return fallback
	}
	return "font"
}

// versionSuffix cleans a raw version string: the "Version " prefix
// goes, anything from the first ';' goes, only alphanumerics and dots
// stay, and dots become underscores.
func versionSuffix(raw string) string {
	if raw == "" {
		return ""
	}
	if len(raw) >= 8 && strings.EqualFold(raw[:8], "version ") {
		raw = raw[8:]
	}
	if i := strings.IndexByte(raw, ';'); i >= 0 {
		raw = raw[:i]
	}
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r == '.':
			b.WriteByte('_')
		}
	}
	return b.String()
}

// cleanToken keeps only the ASCII letters and digits of s.
func cleanToken(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func commonPrefix(names []string) string {
	prefix := names[0]
	for _, name := range names[1:] {
		for !strings.HasPrefix(name, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// uniqueName resolves an output-name collision by appending -2, -3, and
// so on before the extension, trying suffixes in increasing order until
// one is free. The caller records the returned name in used.
func uniqueName(name string, used map[string]bool) string {
	if !used[name] {
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
		if !used[candidate] {
			return candidate
		}
	}
}
