// Package types provides type definitions for structured data used throughout the career advisor.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobListing is a static catalog entry describing a job role
type JobListing struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	Level            string   `json:"level"` // Entry, Mid or Senior
	Skills           []string `json:"skills"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	SalaryRange      string   `json:"salaryRange,omitempty"`
	GrowthOutlook    string   `json:"growthOutlook,omitempty"`
	Education        string   `json:"education,omitempty"`
	WorkEnvironment  string   `json:"workEnvironment,omitempty"`
}

// Job levels used by the catalog
const (
	LevelEntry  = "Entry"
	LevelMid    = "Mid"
	LevelSenior = "Senior"
)

// JobMatch is a listing scored and annotated against a profile.
// Created per recommendation request and never persisted on its own.
type JobMatch struct {
	JobListing
	MatchScore     float64  `json:"matchScore"`
	MatchingSkills []string `json:"matchingSkills"`
	WhyRecommended string   `json:"whyRecommended,omitempty"`
	NextSteps      []string `json:"nextSteps,omitempty"`
}

// SearchFilters narrows a job search. All set filters must hold.
type SearchFilters struct {
	Category string   `json:"category,omitempty"`
	Level    string   `json:"level,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}
