// Package recommend composes job matches, learning resources, mentorship
// options and career advice into a recommendation bundle, and exposes the
// Engine used by the HTTP server and the CLI.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/ranking"
	"github.com/jonathan/career-advisor/internal/skills"
	"github.com/jonathan/career-advisor/internal/types"
)

const (
	maxResources        = 8
	maxMentors          = 4
	generalResourceCap  = 2
	fallbackPlatformCap = 3
	maxNextSteps        = 3
)

// Composer builds recommendation bundles from a catalog. It holds no mutable
// state and is safe for concurrent use.
type Composer struct {
	catalog *catalog.Catalog
}

// NewComposer creates a Composer over the given catalog
func NewComposer(c *catalog.Catalog) *Composer {
	return &Composer{catalog: c}
}

// Recommend scores the whole catalog against the profile and composes the result
func (c *Composer) Recommend(profile types.Profile) types.RecommendationBundle {
	matches := ranking.ScoreJobs(profile, c.catalog.Jobs(), ranking.DefaultLimit)
	return c.Compose(profile, matches)
}

// Compose annotates the matches and gathers resources, mentors and advice for them
func (c *Composer) Compose(profile types.Profile, matches []types.JobMatch) types.RecommendationBundle {
	jobs := make([]types.JobMatch, 0, len(matches))
	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		m.WhyRecommended = WhyRecommended(m.JobListing, profile)
		m.NextSteps = NextSteps(m.JobListing, profile)
		jobs = append(jobs, m)
		titles = append(titles, m.Title)
	}

	return types.RecommendationBundle{
		Jobs:         jobs,
		Resources:    c.Resources(titles, profile.Skills),
		Mentors:      c.Mentors(titles),
		CareerAdvice: CareerAdvice(profile, jobs),
	}
}

// WhyRecommended picks exactly one reason sentence, in priority order:
// skill overlap, entry-level fit, mid-level growth, generic prospects.
func WhyRecommended(job types.JobListing, profile types.Profile) string {
	var matching []string
	for _, s := range job.Skills {
		if skills.MatchesAny(s, profile.Skills) {
			matching = append(matching, s)
		}
	}
	if len(matching) > 0 {
		return fmt.Sprintf("This role matches your skills in %s.", strings.Join(firstN(matching, 3), ", "))
	}

	switch {
	case profile.Level() == types.ExperienceEntry && job.Level == types.LevelEntry:
		return "This is a great entry-level position to start your career."
	case profile.Level() == types.ExperienceMid && (job.Level == types.LevelMid || job.Level == types.LevelSenior):
		return "This role aligns with your experience level and offers growth opportunities."
	default:
		return "This role offers good career prospects in a growing field."
	}
}

// NextSteps returns up to three suggested actions for pursuing the job
func NextSteps(job types.JobListing, profile types.Profile) []string {
	var steps []string

	var missing []string
	for _, s := range job.Skills {
		if !skills.MatchesAny(s, profile.Skills) {
			missing = append(missing, strings.ToLower(s))
		}
	}
	if len(missing) > 0 {
		steps = append(steps, fmt.Sprintf("Learn %s to strengthen your application", strings.Join(firstN(missing, 2), " and ")))
	}

	if job.Category == "Technology" || job.Category == "Design" {
		steps = append(steps, "Build projects showcasing relevant skills for your portfolio")
	}

	steps = append(steps, "Connect with professionals in this field on LinkedIn")

	if job.Level == types.LevelSenior && profile.Level() != types.ExperienceSenior {
		steps = append(steps, "Consider gaining more experience in relevant technologies")
	}

	return firstN(steps, maxNextSteps)
}

// Resources gathers learning resources for the given job titles and skills,
// followed by two general career resources. The result has unique titles and
// at most eight entries.
func (c *Composer) Resources(jobTitles, skillNames []string) []types.LearningResource {
	var all []types.LearningResource
	for _, title := range jobTitles {
		all = append(all, c.catalog.ResourcesForJob(title)...)
	}
	if len(skillNames) > 0 {
		all = append(all, c.catalog.ResourcesForSkills(skillNames)...)
	}
	all = append(all, firstN(c.catalog.GeneralResources(), generalResourceCap)...)

	return firstN(catalog.DedupeResources(all), maxResources)
}

// Mentors gathers mentor recommendations for the given job titles, unique by
// platform and enriched with platform details. With no titles the first
// three platforms of the catalog are suggested instead.
func (c *Composer) Mentors(jobTitles []string) []types.MentorRecommendation {
	if len(jobTitles) == 0 {
		return c.platformSuggestions()
	}

	seen := make(map[string]bool)
	out := []types.MentorRecommendation{}
	for _, title := range jobTitles {
		for _, rec := range c.catalog.MentorsForJob(title) {
			if seen[rec.Platform] {
				continue
			}
			seen[rec.Platform] = true
			if p, ok := c.catalog.PlatformByName(rec.Platform); ok {
				rec.PlatformDetails = &p
			}
			out = append(out, rec)
		}
	}

	return firstN(out, maxMentors)
}

func (c *Composer) platformSuggestions() []types.MentorRecommendation {
	platforms := firstN(c.catalog.Platforms(), fallbackPlatformCap)
	out := make([]types.MentorRecommendation, 0, len(platforms))
	for i := range platforms {
		p := platforms[i]
		out = append(out, types.MentorRecommendation{
			Platform:        p.Name,
			Reason:          p.Description,
			Focus:           strings.Join(p.Categories, ", "),
			PlatformDetails: &p,
		})
	}
	return out
}

// CareerAdvice writes the advice paragraph for the recommended jobs
func CareerAdvice(profile types.Profile, jobs []types.JobMatch) string {
	if len(jobs) == 0 {
		return "I'd recommend exploring different career paths based on your interests. " +
			"Consider taking some online courses to discover what you enjoy most, " +
			"and don't hesitate to reach out to professionals in fields that interest you."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Based on your profile, I recommend focusing on %s roles. ", jobs[0].Title))

	var missing []string
	for _, s := range topSkills(jobs, 3) {
		if !skills.MatchesAny(s, profile.Skills) {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		sb.WriteString(fmt.Sprintf("Consider learning %s as these skills appear frequently in recommended roles. ",
			strings.Join(firstN(missing, 2), " and ")))
	}

	switch profile.Level() {
	case types.ExperienceEntry, types.ExperienceUnknown:
		sb.WriteString("Focus on building a strong portfolio with personal projects and consider internships or entry-level positions to gain experience. ")
	case types.ExperienceMid:
		sb.WriteString("You're in a great position to take on more challenging projects and consider leadership opportunities. ")
	}

	sb.WriteString("Keep networking, stay updated with industry trends, and consider finding a mentor in your field of interest.")
	return sb.String()
}

// topSkills returns the n most frequent skills across the jobs. Ties keep the
// order in which skills were first seen.
func topSkills(jobs []types.JobMatch, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, j := range jobs {
		for _, s := range j.Skills {
			if counts[s] == 0 {
				order = append(order, s)
			}
			counts[s]++
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	return firstN(order, n)
}

func firstN[T any](in []T, n int) []T {
	if len(in) > n {
		return in[:n]
	}
	return in
}
