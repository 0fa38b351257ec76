package scanner

import "sort"

// Entry records one logical font found in a file, scoped to the family it
// was indexed under. Path is slash-separated and relative to the source
// root. Subfamily and Version are empty when the font does not declare
// them.
type Entry struct {
	Path      string `json:"file" yaml:"file"`
	Subfamily string `json:"subfamily,omitempty" yaml:"subfamily,omitempty"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Contribution names one (family, subfamily) pair a file provides, with
// the version that pair carries.
type Contribution struct {
	Family    string `json:"family" yaml:"family"`
	Subfamily string `json:"subfamily,omitempty" yaml:"subfamily,omitempty"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
}

// FamilyIndex maps family name to the entries that provide it. Entries are
// sorted by (path, subfamily) and deduplicated on that key. Built once per
// source and read-only afterward.
type FamilyIndex map[string][]Entry

// Families returns the family names in sorted order.
func (idx FamilyIndex) Families() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EntryCount returns the total number of indexed entries.
func (idx FamilyIndex) EntryCount() int {
	n := 0
	for _, entries := range idx {
		n += len(entries)
	}
	return n
}

// FileIndex maps a relative file path to the (family, subfamily) pairs it
// contributes. It is the inverse of a FamilyIndex.
type FileIndex map[string][]Contribution

// Paths returns the indexed file paths in sorted order.
func (idx FileIndex) Paths() []string {
	paths := make([]string, 0, len(idx))
	for p := range idx {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Invert builds the FileIndex for the family index. Families are visited
// in sorted order so contribution lists come out deterministic.
func (idx FamilyIndex) Invert() FileIndex {
	files := make(FileIndex)
	for _, family := range idx.Families() {
		for _, e := range idx[family] {
			files[e.Path] = append(files[e.Path], Contribution{
				Family:    family,
				Subfamily: e.Subfamily,
				Version:   e.Version,
			})
		}
	}
	return files
}

// Source holds everything one scanned source contributes to a merge run.
type Source struct {
	// Name is the declared source name from the sources configuration.
	Name string
	// Root is the directory the scan walked.
	Root string
	// Families indexes every named font found under Root.
	Families FamilyIndex
	// Files is the inverse of Families.
	Files FileIndex
	// FontFiles lists every file with a recognized font extension, sorted
	// by relative path, whether or not it yielded records. The merge walk
	// visits exactly this list.
	FontFiles []string
}
