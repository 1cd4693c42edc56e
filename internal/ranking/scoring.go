package ranking

import (
	"github.com/jonathan/career-advisor/internal/skills"
	"github.com/jonathan/career-advisor/internal/types"
)

// Score computes the match of one listing against the profile.
//
// MatchingSkills are the profile skills (in profile order) that match any
// listing skill. MatchScore is |MatchingSkills| / max(|profile skills|,
// |listing skills|) * 100, and 0 when the profile has no skills.
func Score(profile types.Profile, job types.JobListing) types.JobMatch {
	matching := []string{}
	for _, s := range profile.Skills {
		if skills.MatchesAny(s, job.Skills) {
			matching = append(matching, s)
		}
	}

	return types.JobMatch{
		JobListing:     job,
		MatchScore:     computeMatchScore(len(matching), len(profile.Skills), len(job.Skills)),
		MatchingSkills: matching,
	}
}

func computeMatchScore(matched, profileSkills, listingSkills int) float64 {
	if profileSkills == 0 || matched == 0 {
		return 0
	}
	denominator := profileSkills
	if listingSkills > denominator {
		denominator = listingSkills
	}
	return float64(matched) / float64(denominator) * 100
}
