package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rsavchuk/talentflow/internal/models"
)

func matchInput() (*models.Candidate, *models.JobDescription) {
	candidate := &models.Candidate{
		PersonalInfo:   models.PersonalInfo{Name: "Jane Doe"},
		Skills:         []string{"Go", "PostgreSQL"},
		WorkExperience: []models.WorkExperience{{Company: "Acme", Role: "Engineer"}},
	}
	job := &models.JobDescription{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Go", "PostgreSQL", "Kafka"},
	}

	return candidate, job
}

func TestMatchRejectsMissingInput(t *testing.T) {
	gen := &stubGenerator{}
	matcher := NewSkillsMatcher(gen, nil, 0)

	candidate, job := matchInput()

	if _, err := matcher.Match(context.Background(), nil, job); !errors.Is(err, ErrMissingMatchInput) {
		t.Fatalf("expected ErrMissingMatchInput for nil candidate, got %v", err)
	}
	if _, err := matcher.Match(context.Background(), candidate, nil); !errors.Is(err, ErrMissingMatchInput) {
		t.Fatalf("expected ErrMissingMatchInput for nil job, got %v", err)
	}
	if _, err := matcher.Match(context.Background(), candidate, &models.JobDescription{}); !errors.Is(err, ErrMissingMatchInput) {
		t.Fatalf("expected ErrMissingMatchInput for empty job, got %v", err)
	}

	if gen.calls != 0 {
		t.Fatalf("invalid input must not reach the model, got %d calls", gen.calls)
	}
}

func TestMatchNormalizesPercentage(t *testing.T) {
	gen := &stubGenerator{response: `{
  "overall_match_percentage": 87.5,
  "matched_skills": [{"skill": "Go", "evidence": "5 years at Acme"}],
  "missing_skills": [{"skill": "Kafka", "importance": "medium", "can_be_learned": true}],
  "rationale": "solid overlap"
}`}

	matcher := NewSkillsMatcher(gen, nil, 0)
	candidate, job := matchInput()

	eval, err := matcher.Match(context.Background(), candidate, job)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}

	if eval.MatchScore != 0.875 {
		t.Fatalf("expected 0.875, got %v", eval.MatchScore)
	}
	if eval.Recommendation != models.TierStrong {
		t.Fatalf("expected strong recommendation, got %q", eval.Recommendation)
	}
	if len(eval.MatchedSkills) != 1 || eval.MatchedSkills[0].Skill != "Go" {
		t.Fatalf("unexpected matched skills: %+v", eval.MatchedSkills)
	}
	if len(eval.MissingSkills) != 1 || !eval.MissingSkills[0].CanBeLearned {
		t.Fatalf("unexpected missing skills: %+v", eval.MissingSkills)
	}

	if gen.lastRequest.Temperature != 0.5 {
		t.Fatalf("unexpected temperature: %v", gen.lastRequest.Temperature)
	}
	if !strings.Contains(gen.lastRequest.Prompt, "Kafka") {
		t.Fatalf("job requirements missing from prompt")
	}
}

func TestMatchClampsOutOfRangeScores(t *testing.T) {
	matcher := NewSkillsMatcher(&stubGenerator{response: `{"overall_match_percentage": 150}`}, nil, 0)
	candidate, job := matchInput()

	eval, err := matcher.Match(context.Background(), candidate, job)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if eval.MatchScore != 1.0 {
		t.Fatalf("expected clamp to 1.0, got %v", eval.MatchScore)
	}

	matcher = NewSkillsMatcher(&stubGenerator{response: `{"overall_match_percentage": -20}`}, nil, 0)
	eval, err = matcher.Match(context.Background(), candidate, job)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if eval.MatchScore != 0.0 {
		t.Fatalf("expected clamp to 0.0, got %v", eval.MatchScore)
	}
}

func TestRecommendationBuckets(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{100, models.TierStrong},
		{85, models.TierStrong},
		{84.9, models.TierModerate},
		{70, models.TierModerate},
		{69.9, models.TierWeak},
		{0, models.TierWeak},
	}

	for _, tc := range cases {
		if got := recommendationFor(tc.percentage); got != tc.want {
			t.Fatalf("recommendationFor(%v) = %q, want %q", tc.percentage, got, tc.want)
		}
	}
}
