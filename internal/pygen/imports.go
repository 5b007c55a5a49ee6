package pygen

import "sort"

// importSet collects import statements for one generated unit. A statement
// is recorded at most once no matter how many fields reference the module
// that it brings in.
type importSet struct {
	seen  map[string]bool
	order []string
}

func newImportSet() *importSet {
	return &importSet{seen: make(map[string]bool)}
}

func (s *importSet) add(stmt string) {
	if stmt == "" || s.seen[stmt] {
		return
	}
	s.seen[stmt] = true
	s.order = append(s.order, stmt)
}

func (s *importSet) has(stmt string) bool {
	return s.seen[stmt]
}

func (s *importSet) empty() bool {
	return len(s.order) == 0
}

// sorted returns the collected statements in lexical order. The final
// assembly sorts so that output is stable regardless of the order in
// which fields happened to reference foreign modules.
func (s *importSet) sorted() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	sort.Strings(out)
	return out
}
