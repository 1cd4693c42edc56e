package resume

import (
	"strings"

	"github.com/jonathan/career-advisor/internal/types"
)

// GlobalKeywords are the job market keywords looked for in a résumé, in report order
var GlobalKeywords = []string{
	"react", "node", "python", "javascript", "typescript", "cloud", "devops", "data",
	"ai", "machine learning", "sql", "docker", "kubernetes", "agile", "scrum",
	"design", "testing", "security", "api", "frontend", "backend", "fullstack",
	"mobile", "aws", "azure", "gcp", "linux", "git", "project management",
	"communication", "leadership",
}

// TechKeywords mark a job as a technology role
var TechKeywords = []string{
	"developer", "engineer", "software", "frontend", "backend", "fullstack", "devops",
	"cloud", "data", "ai", "machine learning", "python", "javascript", "typescript",
	"react", "node", "sql", "docker", "kubernetes", "mobile", "aws", "azure", "gcp",
	"linux", "git",
}

// MinKeywords is the keyword count below which a résumé is considered weak
const MinKeywords = 5

// Course suggestions
const (
	SuggestionWeakCV = "Your CV does not match enough global tech skills. Please visit the Learning Hub " +
		"and take recommended courses in programming, cloud, or data to improve your profile."
	SuggestionNoJobs = "No matching jobs found for your CV. Consider improving your CV or taking new " +
		"courses in the Learning Hub."
)

// Analysis is the keyword report for one résumé
type Analysis struct {
	Keywords         []string           `json:"keywords"`
	RecommendedJobs  []types.JobListing `json:"recommendedJobs"`
	CourseSuggestion string             `json:"courseSuggestion,omitempty"`
}

// Analyze scans the résumé for GlobalKeywords and recommends the tech jobs
// whose title or skills mention at least one of them. Matching is lower-case
// substring search, so "ai" also fires inside "maintain".
func Analyze(text string, jobs []types.JobListing) Analysis {
	lower := strings.ToLower(text)

	found := []string{}
	for _, kw := range GlobalKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}

	recommended := []types.JobListing{}
	for _, job := range jobs {
		jobText := strings.ToLower(job.Title + " " + strings.Join(job.Skills, " "))
		if containsAny(jobText, TechKeywords) && containsAny(jobText, found) {
			recommended = append(recommended, job)
		}
	}

	a := Analysis{Keywords: found, RecommendedJobs: recommended}
	switch {
	case len(found) < MinKeywords:
		a.CourseSuggestion = SuggestionWeakCV
	case len(recommended) == 0:
		a.CourseSuggestion = SuggestionNoJobs
	}
	return a
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
