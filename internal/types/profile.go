package types

import "strings"

// ExperienceLevel is the coarse seniority inferred for a user
type ExperienceLevel string

// Experience levels
const (
	ExperienceUnknown ExperienceLevel = "unknown"
	ExperienceEntry   ExperienceLevel = "entry"
	ExperienceMid     ExperienceLevel = "mid"
	ExperienceSenior  ExperienceLevel = "senior"
)

// ParseExperienceLevel maps a level name to an ExperienceLevel.
// The second return value is false when s is not a level name.
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry":
		return ExperienceEntry, true
	case "mid":
		return ExperienceMid, true
	case "senior":
		return ExperienceSenior, true
	case "unknown":
		return ExperienceUnknown, true
	default:
		return ExperienceUnknown, false
	}
}

// Profile is the lightweight skill/interest/experience extraction for a user.
// It is rebuilt on every recommendation request.
type Profile struct {
	Skills     []string        `json:"skills"`
	Interests  []string        `json:"interests"`
	Experience ExperienceLevel `json:"experienceLevel"`
}

// Level returns the experience level, treating the zero value as unknown
func (p Profile) Level() ExperienceLevel {
	if p.Experience == "" {
		return ExperienceUnknown
	}
	return p.Experience
}

// PartialProfile holds user-supplied profile fields from outside the conversation.
// Experience is free text such as "3 years" or a level name.
type PartialProfile struct {
	Name       string   `json:"name,omitempty"`
	Title      string   `json:"title,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
	Education  string   `json:"education,omitempty"`
	Location   string   `json:"location,omitempty"`
}

// IsEmpty reports whether no field is set
func (p *PartialProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == "" && p.Title == "" && len(p.Skills) == 0 &&
		p.Experience == "" && p.Education == "" && p.Location == ""
}
