// Package skills holds the skill matching rule shared by profile extraction,
// job scoring and catalog search.
package skills

import "strings"

// Normalize lower-cases and trims a skill name
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Matches reports whether two skills match. After normalization, a and b match
// when either contains the other as a substring.
//
// The rule is deliberately loose: "java" matches "javascript" and "go" matches
// "django". Empty strings never match.
func Matches(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// MatchesAny reports whether skill matches at least one entry of list
func MatchesAny(skill string, list []string) bool {
	for _, s := range list {
		if Matches(skill, s) {
			return true
		}
	}
	return false
}

// Dedupe removes case-insensitive duplicates and blank entries, keeping the
// first spelling seen.
func Dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		key := Normalize(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
