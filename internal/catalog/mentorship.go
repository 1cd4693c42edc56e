package catalog

import (
	"strings"

	"github.com/jonathan/career-advisor/internal/types"
)

// MentorsForJob returns mentor recommendations for a job title.
// Lookup order: exact role, then the first role where either title contains
// the other (case-insensitive), then the general recommendations.
func (c *Catalog) MentorsForJob(title string) []types.MentorRecommendation {
	for _, g := range c.data.Mentors {
		if g.Role == title {
			return cloneMentors(g.Mentors)
		}
	}

	lower := strings.ToLower(title)
	for _, g := range c.data.Mentors {
		role := strings.ToLower(g.Role)
		if strings.Contains(lower, role) || strings.Contains(role, lower) {
			return cloneMentors(g.Mentors)
		}
	}

	return cloneMentors(c.data.GeneralMentors)
}

// Platforms returns every mentorship platform in catalog order
func (c *Catalog) Platforms() []types.MentorshipPlatform {
	return append([]types.MentorshipPlatform(nil), c.data.Platforms...)
}

// PlatformByName finds a platform by its exact name
func (c *Catalog) PlatformByName(name string) (types.MentorshipPlatform, bool) {
	for _, p := range c.data.Platforms {
		if p.Name == name {
			return p, true
		}
	}
	return types.MentorshipPlatform{}, false
}

// PlatformsByCategory returns platforms having a category that contains
// category (case-insensitive)
func (c *Catalog) PlatformsByCategory(category string) []types.MentorshipPlatform {
	want := strings.ToLower(category)
	out := []types.MentorshipPlatform{}
	for _, p := range c.data.Platforms {
		for _, cat := range p.Categories {
			if strings.Contains(strings.ToLower(cat), want) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func cloneMentors(in []types.MentorRecommendation) []types.MentorRecommendation {
	return append([]types.MentorRecommendation(nil), in...)
}
