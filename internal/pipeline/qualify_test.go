package pipeline

import (
	"fmt"
	"testing"

	"github.com/rsavchuk/talentflow/internal/models"
)

func rankedCandidate(name, tier string, skills, cultural float64) models.RankedCandidate {
	return models.RankedCandidate{
		ID:               name,
		Name:             name,
		Tier:             tier,
		SkillsMatchScore: skills,
		CulturalFitScore: cultural,
	}
}

func TestThresholdRequiresBothScores(t *testing.T) {
	ranked := []models.RankedCandidate{
		rankedCandidate("both", models.TierModerate, 75.0, 70.0),
		rankedCandidate("skills only", models.TierModerate, 80.0, 60.0),
		rankedCandidate("cultural only", models.TierModerate, 65.0, 80.0),
		rankedCandidate("exactly at", models.TierModerate, 70.0, 65.0),
	}

	qualified := thresholdQualified(ranked, 70.0, 65.0)

	if len(qualified) != 2 {
		t.Fatalf("expected 2 qualified, got %d", len(qualified))
	}
	if qualified[0].Name != "both" || qualified[1].Name != "exactly at" {
		t.Fatalf("unexpected qualified set: %q, %q", qualified[0].Name, qualified[1].Name)
	}
}

func TestShortlistStrongMatchesTakePrecedence(t *testing.T) {
	qualified := []models.RankedCandidate{
		rankedCandidate("strong one", models.TierStrong, 90.0, 88.0),
		rankedCandidate("moderate one", models.TierModerate, 78.0, 72.0),
		rankedCandidate("strong two", models.TierStrong, 87.0, 86.0),
		rankedCandidate("moderate two", models.TierModerate, 75.0, 70.0),
	}

	shortlisted := shortlist(qualified)

	if len(shortlisted) != 2 {
		t.Fatalf("expected 2 shortlisted, got %d", len(shortlisted))
	}
	for _, c := range shortlisted {
		if c.Tier != models.TierStrong {
			t.Fatalf("moderate match %q leaked into the strong shortlist", c.Name)
		}
	}
}

func TestShortlistTopTwentyPercentWithoutStrong(t *testing.T) {
	cases := []struct {
		qualified int
		want      int
	}{
		{1, 1},
		{4, 1}, // floor of one
		{5, 1},
		{7, 1},
		{10, 2},
		{15, 3},
	}

	for _, tc := range cases {
		qualified := make([]models.RankedCandidate, tc.qualified)
		for i := range qualified {
			qualified[i] = rankedCandidate(fmt.Sprintf("candidate_%d", i), models.TierModerate, 75.0, 70.0)
		}

		shortlisted := shortlist(qualified)
		if len(shortlisted) != tc.want {
			t.Fatalf("shortlist of %d qualified: got %d, want %d", tc.qualified, len(shortlisted), tc.want)
		}
		// Rank order must be preserved: the shortlist is a prefix.
		for i := range shortlisted {
			if shortlisted[i].Name != qualified[i].Name {
				t.Fatalf("shortlist reordered candidates at %d", i)
			}
		}
	}
}

func TestShortlistEmptyQualifiedSet(t *testing.T) {
	if got := shortlist(nil); len(got) != 0 {
		t.Fatalf("expected empty shortlist, got %d", len(got))
	}
	if got := shortlist([]models.RankedCandidate{}); len(got) != 0 {
		t.Fatalf("expected empty shortlist, got %d", len(got))
	}
}
