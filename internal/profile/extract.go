// Package profile extracts a lightweight career profile (skills, interests and
// experience level) from free conversation or résumé text.
package profile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/career-advisor/internal/skills"
	"github.com/jonathan/career-advisor/internal/types"
)

// SkillVocabulary is the fixed list of skills detected in free text, in detection order
var SkillVocabulary = []string{
	"javascript", "python", "react", "node", "java", "css", "html", "sql",
	"mongodb", "aws", "docker", "git", "typescript", "vue", "angular",
	"express", "django", "flask", "spring", "laravel", "php", "ruby", "go",
	"rust", "c++", "c#", ".net", "swift", "kotlin", "android", "ios",
	"figma", "sketch", "photoshop", "illustrator", "ui", "ux", "design",
	"marketing", "seo", "analytics", "project management", "agile", "scrum",
}

// InterestVocabulary is the fixed list of career domains detected in free text
var InterestVocabulary = []string{
	"web development", "mobile development", "data science", "machine learning",
	"ai", "cybersecurity", "devops", "product management", "design",
	"marketing", "sales",
}

var (
	beginnerMarkers = []string{"beginner", "new", "starting"}
	yearsPattern    = regexp.MustCompile(`(\d+)\s*year`)
)

// Extract builds a Profile from the user-role messages of a conversation and
// an optional explicitly supplied profile.
//
// Detection is plain substring search with no word boundaries, so "go" is found
// inside "good". Experience is decided by the first matching rule only.
func Extract(messages []types.Message, explicit *types.PartialProfile) types.Profile {
	var parts []string
	for _, m := range messages {
		if m.Role == types.RoleUser {
			parts = append(parts, m.Content)
		}
	}
	blob := strings.ToLower(strings.Join(parts, " "))

	p := types.Profile{
		Skills:     detect(blob, SkillVocabulary),
		Interests:  detect(blob, InterestVocabulary),
		Experience: detectExperience(blob),
	}

	return merge(p, explicit)
}

// ExtractText builds a Profile from a single block of text such as a résumé
func ExtractText(text string, explicit *types.PartialProfile) types.Profile {
	return Extract([]types.Message{{Role: types.RoleUser, Content: text}}, explicit)
}

// ResolveExperience maps free text such as "3 years" or "senior" to a level.
// The second return value is false when nothing could be inferred.
func ResolveExperience(text string) (types.ExperienceLevel, bool) {
	if level, ok := types.ParseExperienceLevel(text); ok && level != types.ExperienceUnknown {
		return level, true
	}
	level := detectExperience(strings.ToLower(text))
	return level, level != types.ExperienceUnknown
}

func detect(blob string, vocabulary []string) []string {
	found := []string{}
	for _, term := range vocabulary {
		if strings.Contains(blob, term) {
			found = append(found, term)
		}
	}
	return found
}

func detectExperience(blob string) types.ExperienceLevel {
	for _, marker := range beginnerMarkers {
		if strings.Contains(blob, marker) {
			return types.ExperienceEntry
		}
	}

	if !strings.Contains(blob, "year") && !strings.Contains(blob, "experience") {
		return types.ExperienceUnknown
	}

	m := yearsPattern.FindStringSubmatch(blob)
	if m == nil {
		return types.ExperienceUnknown
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		// digits overflowing int are certainly more than five years
		return types.ExperienceSenior
	}

	switch {
	case years <= 2:
		return types.ExperienceEntry
	case years <= 5:
		return types.ExperienceMid
	default:
		return types.ExperienceSenior
	}
}

// merge unions explicit skills (first) with detected ones. An explicit
// experience value wins when it resolves to a level.
func merge(p types.Profile, explicit *types.PartialProfile) types.Profile {
	if explicit.IsEmpty() {
		return p
	}

	if len(explicit.Skills) > 0 {
		combined := make([]string, 0, len(explicit.Skills)+len(p.Skills))
		for _, s := range explicit.Skills {
			combined = append(combined, skills.Normalize(s))
		}
		combined = append(combined, p.Skills...)
		p.Skills = skills.Dedupe(combined)
	}

	if level, ok := ResolveExperience(explicit.Experience); ok {
		p.Experience = level
	}

	return p
}
