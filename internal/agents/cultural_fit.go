package agents

import (
	"context"
	"errors"
	"unicode/utf8"

	_ "embed"

	"github.com/rsavchuk/talentflow/internal/ai"
	"github.com/rsavchuk/talentflow/internal/models"
	"github.com/rsavchuk/talentflow/internal/utils"

	"go.uber.org/zap"
)

//go:embed cultural_fit_prompt.md
var culturalFitSystemPrompt string

const culturalFitTemperature = 0.6

// ErrMissingCandidateData is returned when no candidate data is supplied.
var ErrMissingCandidateData = errors.New("missing candidate data")

// CulturalFitAnalyzer assesses a candidate's alignment with a company
// culture profile. When no explicit profile is supplied one is synthesized
// from the job description.
type CulturalFitAnalyzer struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

// NewCulturalFitAnalyzer creates the analyzer agent.
func NewCulturalFitAnalyzer(generator ai.Generator, logger *zap.Logger, maxLogLength int) *CulturalFitAnalyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CulturalFitAnalyzer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// culturalPayload is the duck-typed shape the model returns. The overall
// score arrives on a 0-100 scale; dimensional scores are already 0-1.
type culturalPayload struct {
	OverallCulturalFitScore   float64            `mapstructure:"overall_cultural_fit_score"`
	DimensionalScores         map[string]float64 `mapstructure:"dimensional_scores"`
	Rationale                 string             `mapstructure:"rationale"`
	Evidence                  []string           `mapstructure:"evidence"`
	PotentialConcerns         []string           `mapstructure:"potential_concerns"`
	InterviewDiscussionPoints []string           `mapstructure:"interview_discussion_points"`
}

// candidateBackground is the candidate-side prompt payload.
type candidateBackground struct {
	WorkHistory    []models.WorkExperience `json:"work_history"`
	Education      []models.Education      `json:"education"`
	Skills         []string                `json:"skills"`
	Certifications []models.Certification  `json:"certifications"`
	Projects       []models.Project        `json:"projects"`
	Achievements   []string                `json:"achievements"`
}

// Analyze evaluates the candidate's cultural fit. The returned score is
// normalized to [0,1] and dimensional scores are clamped into [0,1].
func (a *CulturalFitAnalyzer) Analyze(ctx context.Context, candidate *models.Candidate, job *models.JobDescription, culture *models.CompanyCulture) (*models.CulturalFitEvaluation, error) {
	if candidate == nil {
		return nil, ErrMissingCandidateData
	}
	if job.IsZero() {
		return nil, ErrMissingMatchInput
	}

	if culture.IsZero() {
		culture = cultureFromJob(job)
	}

	background := candidateBackground{
		WorkHistory:    candidate.WorkExperience,
		Education:      candidate.Education,
		Skills:         candidate.Skills,
		Certifications: candidate.Certifications,
		Projects:       candidate.Projects,
		Achievements:   candidate.Achievements,
	}

	backgroundJSON, err := marshalIndent(background)
	if err != nil {
		return nil, err
	}
	cultureJSON, err := marshalIndent(culture)
	if err != nil {
		return nil, err
	}

	prompt := "Analyze this candidate's cultural fit with the company.\n\n" +
		"Candidate Background:\n" + backgroundJSON + "\n\n" +
		"Company Culture Profile:\n" + cultureJSON + "\n\n" +
		"Return the complete cultural fit analysis as JSON:"

	a.logger.Debug("cultural fit request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.Generate(ctx, ai.Request{
		System:      culturalFitSystemPrompt,
		Prompt:      prompt,
		Temperature: culturalFitTemperature,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("cultural fit response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	var payload culturalPayload
	if err := decodePayload(raw, &payload); err != nil {
		return nil, err
	}

	dims := make(map[string]float64, len(payload.DimensionalScores))
	for name, score := range payload.DimensionalScores {
		dims[name] = clamp(score, 0, 1)
	}

	return &models.CulturalFitEvaluation{
		CulturalFitScore:          clamp(payload.OverallCulturalFitScore, 0, 100) / 100,
		DimensionalScores:         dims,
		Rationale:                 payload.Rationale,
		Evidence:                  payload.Evidence,
		PotentialConcerns:         payload.PotentialConcerns,
		InterviewDiscussionPoints: payload.InterviewDiscussionPoints,
	}, nil
}

// cultureFromJob infers a culture profile from the job description.
func cultureFromJob(job *models.JobDescription) *models.CompanyCulture {
	return &models.CompanyCulture{
		Values:          job.CompanyValues,
		TeamDescription: job.TeamDescription,
		WorkEnvironment: job.WorkEnvironment,
		Attributes:      job.CulturalAttributes,
	}
}
