// Package ranking scores catalog job listings against a user profile.
package ranking

import (
	"sort"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/types"
)

const (
	// DefaultLimit is the number of matches returned when no limit is given
	DefaultLimit = 5

	// interestHits is how many keyword hits each declared interest may add
	interestHits = 2

	// fallbackSize is how many leading catalog listings are returned when nothing matched
	fallbackSize = 3
)

// ScoreJobs ranks jobs against the profile and returns at most limit matches.
//
// Listings with a positive skill score come first, sorted by score descending
// with catalog order kept for ties. Each interest then adds up to two keyword
// hits, deduplicated by id. When nothing matched, the first three listings of
// jobs are returned so a non-empty catalog always yields recommendations.
func ScoreJobs(profile types.Profile, jobs []types.JobListing, limit int) []types.JobMatch {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(jobs) == 0 {
		return []types.JobMatch{}
	}

	// 1. Skill-based matches
	matches := make([]types.JobMatch, 0, len(jobs))
	if len(profile.Skills) > 0 {
		for _, job := range jobs {
			m := Score(profile, job)
			if m.MatchScore > 0 {
				matches = append(matches, m)
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	// 2. Interest-based keyword hits, appended after skill matches
	if len(profile.Interests) > 0 {
		seen := make(map[string]bool, len(matches))
		for _, m := range matches {
			seen[m.ID] = true
		}
		for _, interest := range profile.Interests {
			for _, job := range catalog.FindByKeyword(jobs, interest, interestHits) {
				if seen[job.ID] {
					continue
				}
				seen[job.ID] = true
				matches = append(matches, Score(profile, job))
			}
		}
		if len(matches) > limit {
			matches = matches[:limit]
		}
	}

	// 3. Fallback
	if len(matches) == 0 {
		n := fallbackSize
		if n > len(jobs) {
			n = len(jobs)
		}
		if n > limit {
			n = limit
		}
		for _, job := range jobs[:n] {
			matches = append(matches, Score(profile, job))
		}
	}

	return matches
}
