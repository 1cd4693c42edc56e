package catalog

import (
	"strings"

	"github.com/jonathan/career-advisor/internal/types"
)

// ResourcesForJob returns resources keyed exactly by a job title
func (c *Catalog) ResourcesForJob(title string) []types.LearningResource {
	for _, g := range c.data.Resources {
		if g.Key == title {
			return append([]types.LearningResource(nil), g.Resources...)
		}
	}
	return nil
}

// ResourcesForSkills returns resources for every skill equal to a resource key
// ignoring case ("react" finds "React"), deduplicated by title.
func (c *Catalog) ResourcesForSkills(skillNames []string) []types.LearningResource {
	var out []types.LearningResource
	for _, s := range skillNames {
		for _, g := range c.data.Resources {
			if strings.EqualFold(g.Key, strings.TrimSpace(s)) {
				out = append(out, g.Resources...)
			}
		}
	}
	return DedupeResources(out)
}

// GeneralResources returns the career development resources that apply to any role
func (c *Catalog) GeneralResources() []types.LearningResource {
	return append([]types.LearningResource(nil), c.data.GeneralResources...)
}

// DedupeResources drops resources whose title was already seen
func DedupeResources(in []types.LearningResource) []types.LearningResource {
	seen := make(map[string]bool, len(in))
	out := make([]types.LearningResource, 0, len(in))
	for _, r := range in {
		if seen[r.Title] {
			continue
		}
		seen[r.Title] = true
		out = append(out, r)
	}
	return out
}
