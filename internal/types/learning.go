package types

// LearningResource is a course, book, tutorial or similar learning material.
// Resources are deduplicated by Title.
type LearningResource struct {
	Title       string  `json:"title"`
	Provider    string  `json:"provider"`
	Type        string  `json:"type"`
	URL         string  `json:"url"`
	Duration    string  `json:"duration,omitempty"`
	Price       string  `json:"price,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Description string  `json:"description,omitempty"`
}

// MentorshipPlatform describes a place where mentors can be found
type MentorshipPlatform struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Type        string   `json:"type"`
	Features    []string `json:"features"`
	Categories  []string `json:"categories"`
	Rating      float64  `json:"rating"`
	Cost        string   `json:"cost"`
}

// MentorRecommendation suggests a platform for a given career goal.
// PlatformDetails is attached by name lookup when composing recommendations.
type MentorRecommendation struct {
	Platform        string              `json:"platform"`
	Reason          string              `json:"reason"`
	Focus           string              `json:"focus"`
	PlatformDetails *MentorshipPlatform `json:"platformDetails,omitempty"`
}

// RecommendationBundle is the composed output of one recommendation request
type RecommendationBundle struct {
	Jobs         []JobMatch             `json:"jobs"`      // at most 5
	Resources    []LearningResource     `json:"resources"` // at most 8
	Mentors      []MentorRecommendation `json:"mentors"`   // at most 4
	CareerAdvice string                 `json:"careerAdvice"`
}
