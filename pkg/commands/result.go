package commands

import "strings"

// Result is what a stage contributes to the rename: paths to include and
// paths to exclude. Both are lists; duplicates are kept.
type Result struct {
	Inclusions []string `json:"inclusions" yaml:"inclusions" toml:"inclusions"`
	Exclusions []string `json:"exclusions" yaml:"exclusions" toml:"exclusions"`
}

// Append concatenates other onto r. A nil other is ignored.
func (r *Result) Append(other *Result) {
	if other == nil {
		return
	}
	r.Inclusions = append(r.Inclusions, other.Inclusions...)
	r.Exclusions = append(r.Exclusions, other.Exclusions...)
}

// Empty reports whether neither list has entries
func (r *Result) Empty() bool {
	return r == nil || (len(r.Inclusions) == 0 && len(r.Exclusions) == 0)
}

// Filter drops every path containing an exclusion. When inclusions are
// present, only paths containing at least one of them are kept.
func (r *Result) Filter(paths []string) []string {
	if r == nil {
		return paths
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if containsAny(p, r.Exclusions) {
			continue
		}
		if len(r.Inclusions) > 0 && !containsAny(p, r.Inclusions) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
