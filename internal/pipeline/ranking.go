package pipeline

import (
	"math"
	"sort"

	"github.com/rsavchuk/talentflow/internal/models"
)

// Tier boundaries on the 0-100 display scale. Buckets are inclusive-low,
// half-open: [85,100], [70,85), [0,70).
const (
	strongTierFloor   = 85.0
	moderateTierFloor = 70.0
)

// rankCandidates computes weighted overall scores and returns the full
// ranked list, weak matches included; filtering is the next phase's job.
// The sort is stable, so candidates with equal scores keep their original
// evaluation order.
func rankCandidates(evaluations []*models.Evaluation, cfg Config) []models.RankedCandidate {
	ranked := make([]models.RankedCandidate, 0, len(evaluations))

	for _, eval := range evaluations {
		skillsScore := eval.Skills.MatchScore
		culturalScore := eval.Cultural.CulturalFitScore

		years := experienceYears(eval.Candidate, cfg.ExperienceFromDurations)
		expScore := math.Min(years/10, 1.0)

		overall := skillsScore*cfg.Weights.Skills +
			culturalScore*cfg.Weights.Cultural +
			expScore*cfg.Weights.Experience

		display := round2(overall * 100)

		name := eval.Candidate.PersonalInfo.Name
		if name == "" {
			name = "Unknown"
		}

		ranked = append(ranked, models.RankedCandidate{
			ID:                eval.ID,
			Candidate:         eval.Candidate,
			Name:              name,
			Email:             eval.Candidate.PersonalInfo.Email,
			Phone:             eval.Candidate.PersonalInfo.Phone,
			OverallScore:      display,
			SkillsMatchScore:  round2(skillsScore * 100),
			CulturalFitScore:  round2(culturalScore * 100),
			ExperienceScore:   round2(expScore * 100),
			Tier:              tierFor(display),
			MatchedSkills:     eval.Skills.MatchedSkills,
			MissingSkills:     eval.Skills.MissingSkills,
			SkillsRationale:   eval.Skills.Rationale,
			CulturalRationale: eval.Cultural.Rationale,
			DimensionalScores: eval.Cultural.DimensionalScores,
			Recommendation:    eval.Skills.Recommendation,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallScore > ranked[j].OverallScore
	})

	return ranked
}

// experienceYears approximates total experience. The default heuristic of
// two years per work-history entry ignores the duration fields present in
// the parsed data; fromDurations switches to summing reported
// duration_months instead.
func experienceYears(candidate *models.Candidate, fromDurations bool) float64 {
	if !fromDurations {
		return float64(2 * len(candidate.WorkExperience))
	}

	months := 0
	for _, exp := range candidate.WorkExperience {
		months += exp.DurationMonths
	}

	return float64(months) / 12
}

// tierFor buckets the displayed overall score.
func tierFor(overallScore float64) string {
	switch {
	case overallScore >= strongTierFloor:
		return models.TierStrong
	case overallScore >= moderateTierFloor:
		return models.TierModerate
	default:
		return models.TierWeak
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
