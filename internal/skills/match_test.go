package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact", "python", "python", true},
		{"case insensitive", "React", "react", true},
		{"contains", "node", "Node.js", true},
		{"contained", "Vue.js", "vue", true},
		{"java matches javascript", "java", "JavaScript", true},
		{"go matches django", "go", "Django", true},
		{"trimmed", "  sql ", "SQL", true},
		{"unrelated", "python", "figma", false},
		{"empty left", "", "python", false},
		{"empty right", "python", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.a, tt.b))
			assert.Equal(t, tt.want, Matches(tt.b, tt.a), "rule is symmetric")
		})
	}
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, MatchesAny("react", []string{"HTML", "React Native"}))
	assert.False(t, MatchesAny("rust", []string{"HTML", "CSS"}))
	assert.False(t, MatchesAny("rust", nil))
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"Python", "python ", "", "SQL", "PYTHON", "sql", "Go"})
	assert.Equal(t, []string{"Python", "SQL", "Go"}, got)
}
