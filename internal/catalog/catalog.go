// Package catalog provides the static reference data used for recommendations:
// job listings, learning resources and mentorship platforms.
// The default data is embedded at compile time and validated against the
// JSON Schemas in the schemas directory.
package catalog

import (
	"strings"

	"github.com/jonathan/career-advisor/internal/skills"
	"github.com/jonathan/career-advisor/internal/types"
)

// ResourceGroup is a set of learning resources keyed by job title or skill name
type ResourceGroup struct {
	Key       string                   `json:"key"`
	Resources []types.LearningResource `json:"resources"`
}

// MentorGroup is a set of mentor recommendations for one role
type MentorGroup struct {
	Role    string                       `json:"role"`
	Mentors []types.MentorRecommendation `json:"mentors"`
}

// Data is the raw content of a catalog
type Data struct {
	Jobs             []types.JobListing
	Resources        []ResourceGroup
	GeneralResources []types.LearningResource
	Platforms        []types.MentorshipPlatform
	Mentors          []MentorGroup
	GeneralMentors   []types.MentorRecommendation
}

// Catalog is read-only after construction and safe for concurrent use
type Catalog struct {
	data Data
}

// New builds a catalog from already decoded data
func New(data Data) *Catalog {
	return &Catalog{data: data}
}

// Jobs returns all listings in catalog order
func (c *Catalog) Jobs() []types.JobListing {
	return append([]types.JobListing(nil), c.data.Jobs...)
}

// JobByID finds a listing by id
func (c *Catalog) JobByID(id string) (types.JobListing, bool) {
	for _, j := range c.data.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return types.JobListing{}, false
}

// FindByKeyword returns up to limit listings whose title, description,
// category or any skill contains keyword (case-insensitive), in catalog order.
// A limit <= 0 means no limit.
func (c *Catalog) FindByKeyword(keyword string, limit int) []types.JobListing {
	return FindByKeyword(c.data.Jobs, keyword, limit)
}

// FindByKeyword is the keyword search of Catalog.FindByKeyword over an arbitrary listing slice
func FindByKeyword(jobs []types.JobListing, keyword string, limit int) []types.JobListing {
	kw := strings.ToLower(keyword)
	out := []types.JobListing{}
	for _, j := range jobs {
		if limit > 0 && len(out) >= limit {
			break
		}
		if listingContains(j, kw) {
			out = append(out, j)
		}
	}
	return out
}

func listingContains(j types.JobListing, kw string) bool {
	if strings.Contains(strings.ToLower(j.Title), kw) ||
		strings.Contains(strings.ToLower(j.Description), kw) ||
		strings.Contains(strings.ToLower(j.Category), kw) {
		return true
	}
	for _, s := range j.Skills {
		if strings.Contains(strings.ToLower(s), kw) {
			return true
		}
	}
	return false
}

// MaxSearchResults caps the result of Search
const MaxSearchResults = 10

// Search looks up listings by free-text query (or the full catalog when query
// is blank) and then applies every set filter:
//   - category: case-insensitive substring
//   - level: case-insensitive equality
//   - skills: any filter skill matches any listing skill
func (c *Catalog) Search(query string, filters types.SearchFilters) []types.JobListing {
	var results []types.JobListing
	if strings.TrimSpace(query) != "" {
		results = c.FindByKeyword(query, MaxSearchResults)
	} else {
		results = c.Jobs()
	}

	category := strings.ToLower(filters.Category)
	out := []types.JobListing{}
	for _, j := range results {
		if category != "" && !strings.Contains(strings.ToLower(j.Category), category) {
			continue
		}
		if filters.Level != "" && !strings.EqualFold(j.Level, filters.Level) {
			continue
		}
		if len(filters.Skills) > 0 && !anySkillMatches(filters.Skills, j.Skills) {
			continue
		}
		out = append(out, j)
		if len(out) == MaxSearchResults {
			break
		}
	}
	return out
}

func anySkillMatches(wanted, have []string) bool {
	for _, w := range wanted {
		if skills.MatchesAny(w, have) {
			return true
		}
	}
	return false
}
