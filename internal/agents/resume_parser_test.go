package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/rsavchuk/talentflow/internal/models"
)

func TestParseRejectsEmptyResume(t *testing.T) {
	gen := &stubGenerator{}
	parser := NewResumeParser(gen, nil, 0)

	for _, content := range []string{"", "   \n\t  "} {
		_, _, err := parser.Parse(context.Background(), content)
		if !errors.Is(err, ErrEmptyResume) {
			t.Fatalf("expected ErrEmptyResume for %q, got %v", content, err)
		}
	}

	if gen.calls != 0 {
		t.Fatalf("empty input must not reach the model, got %d calls", gen.calls)
	}
}

func TestParseFencedResponse(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" + `{
  "personal_info": {"name": "Jane Doe", "email": "jane@example.com"},
  "work_experience": [{"company": "Acme", "role": "Engineer"}],
  "skills": ["Go", "Kubernetes"]
}` + "\n```"}

	parser := NewResumeParser(gen, nil, 0)

	candidate, confidence, err := parser.Parse(context.Background(), "Jane Doe\njane@example.com\nEngineer at Acme")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if candidate.PersonalInfo.Name != "Jane Doe" {
		t.Fatalf("unexpected name: %q", candidate.PersonalInfo.Name)
	}
	if len(candidate.WorkExperience) != 1 || candidate.WorkExperience[0].Company != "Acme" {
		t.Fatalf("unexpected work experience: %+v", candidate.WorkExperience)
	}
	if len(candidate.Skills) != 2 {
		t.Fatalf("unexpected skills: %v", candidate.Skills)
	}

	if confidence["personal_info"] != 1.0 {
		t.Fatalf("expected full personal_info confidence, got %v", confidence["personal_info"])
	}
	if confidence["education"] != 0.5 {
		t.Fatalf("expected reduced education confidence, got %v", confidence["education"])
	}

	if gen.lastRequest.Temperature != 0.3 {
		t.Fatalf("unexpected temperature: %v", gen.lastRequest.Temperature)
	}
	if gen.lastRequest.System == "" {
		t.Fatalf("expected a system prompt")
	}
}

func TestParseMalformedResponse(t *testing.T) {
	gen := &stubGenerator{response: "no JSON here, just prose"}
	parser := NewResumeParser(gen, nil, 0)

	_, _, err := parser.Parse(context.Background(), "some resume")
	if err == nil {
		t.Fatalf("expected an error")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T", err)
	}
	if malformed.Raw != gen.response {
		t.Fatalf("raw response not preserved: %q", malformed.Raw)
	}
}

func TestParsePropagatesGeneratorError(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	parser := NewResumeParser(&stubGenerator{err: wantErr}, nil, 0)

	_, _, err := parser.Parse(context.Background(), "some resume")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestConfidenceScores(t *testing.T) {
	sparse := &models.Candidate{
		PersonalInfo: models.PersonalInfo{Name: "Only Name"},
	}

	scores := confidenceScores(sparse)

	if scores["personal_info"] != 0.5 {
		t.Fatalf("expected 0.5 personal_info, got %v", scores["personal_info"])
	}
	if scores["work_experience"] != 0.5 || scores["education"] != 0.5 {
		t.Fatalf("unexpected section scores: %v", scores)
	}
	if scores["skills"] != 0.3 {
		t.Fatalf("expected 0.3 skills, got %v", scores["skills"])
	}

	full := &models.Candidate{
		PersonalInfo:   models.PersonalInfo{Name: "Jane", Email: "jane@example.com"},
		WorkExperience: []models.WorkExperience{{Company: "Acme"}},
		Education:      []models.Education{{Institution: "MIT"}},
		Skills:         []string{"Go"},
	}

	scores = confidenceScores(full)
	for section, score := range scores {
		if score != 1.0 {
			t.Fatalf("expected full confidence for %s, got %v", section, score)
		}
	}
}
