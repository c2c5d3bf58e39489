package pipeline

import (
	"github.com/rsavchuk/talentflow/internal/models"

	"go.uber.org/zap"
)

// selectQualified applies the qualification policy to the ranked list and
// logs the drop counts of each step. The result preserves rank order.
func (o *Orchestrator) selectQualified(logger *zap.Logger, ranked []models.RankedCandidate) []models.RankedCandidate {
	qualified := thresholdQualified(ranked, o.cfg.SkillsThreshold, o.cfg.CulturalThreshold)
	logger.Info("qualification thresholds applied",
		zap.Int("initial", len(ranked)),
		zap.Int("dropped", len(ranked)-len(qualified)),
		zap.Int("left", len(qualified)),
	)

	eligible := shortlist(qualified)
	logger.Info("scheduling shortlist selected",
		zap.Int("initial", len(qualified)),
		zap.Int("dropped", len(qualified)-len(eligible)),
		zap.Int("left", len(eligible)),
	)

	return eligible
}

// thresholdQualified keeps candidates meeting BOTH the skills and cultural
// thresholds (0-100 scale).
func thresholdQualified(ranked []models.RankedCandidate, skillsMin, culturalMin float64) []models.RankedCandidate {
	qualified := make([]models.RankedCandidate, 0, len(ranked))

	for _, candidate := range ranked {
		if candidate.SkillsMatchScore >= skillsMin && candidate.CulturalFitScore >= culturalMin {
			qualified = append(qualified, candidate)
		}
	}

	return qualified
}

// shortlist picks the scheduling-eligible subset from the qualified set.
// Strong matches take precedence: when any exist, exactly that subset is
// returned and numerically qualified moderate matches are excluded. With
// no strong matches the top 20% of the qualified set proceeds, with a
// floor of one candidate when any qualify at all.
func shortlist(qualified []models.RankedCandidate) []models.RankedCandidate {
	strong := make([]models.RankedCandidate, 0, len(qualified))
	for _, candidate := range qualified {
		if candidate.Tier == models.TierStrong {
			strong = append(strong, candidate)
		}
	}

	if len(strong) > 0 {
		return strong
	}

	if len(qualified) == 0 {
		return qualified
	}

	top := len(qualified) / 5
	if top < 1 {
		top = 1
	}

	return qualified[:top]
}
