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

//go:embed skills_matcher_prompt.md
var skillsMatcherSystemPrompt string

const skillsMatcherTemperature = 0.5

// ErrMissingMatchInput is returned when candidate data or the job
// description is absent. No external call is made in that case.
var ErrMissingMatchInput = errors.New("missing candidate data or job description")

// SkillsMatcher scores a candidate's skills against job requirements.
type SkillsMatcher struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

// NewSkillsMatcher creates the matcher agent.
func NewSkillsMatcher(generator ai.Generator, logger *zap.Logger, maxLogLength int) *SkillsMatcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SkillsMatcher{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// skillsPayload is the duck-typed shape the model returns. The overall
// percentage arrives on a 0-100 scale.
type skillsPayload struct {
	OverallMatchPercentage float64                    `mapstructure:"overall_match_percentage"`
	MatchedSkills          []models.MatchedSkill      `mapstructure:"matched_skills"`
	MissingSkills          []models.MissingSkill      `mapstructure:"missing_skills"`
	TransferableSkills     []models.TransferableSkill `mapstructure:"transferable_skills"`
	DetailedBreakdown      models.ScoreBreakdown      `mapstructure:"detailed_breakdown"`
	Rationale              string                     `mapstructure:"rationale"`
}

// candidateProfile is the candidate-side prompt payload.
type candidateProfile struct {
	TechnicalSkills   []string                `json:"technical_skills"`
	WorkExperience    []models.WorkExperience `json:"work_experience"`
	Education         []models.Education     `json:"education"`
	Certifications    []models.Certification `json:"certifications"`
	YearsOfExperience float64                `json:"years_of_experience"`
}

// jobRequirements is the job-side prompt payload.
type jobRequirements struct {
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	ExperienceLevel  string   `json:"experience_level"`
	Responsibilities []string `json:"responsibilities"`
}

// Match evaluates the candidate against the job description. The returned
// match score is normalized to [0,1].
func (m *SkillsMatcher) Match(ctx context.Context, candidate *models.Candidate, job *models.JobDescription) (*models.SkillsEvaluation, error) {
	if candidate == nil || job.IsZero() {
		return nil, ErrMissingMatchInput
	}

	profile := candidateProfile{
		TechnicalSkills:   candidate.Skills,
		WorkExperience:    candidate.WorkExperience,
		Education:         candidate.Education,
		Certifications:    candidate.Certifications,
		YearsOfExperience: float64(2 * len(candidate.WorkExperience)),
	}

	requirements := jobRequirements{
		RequiredSkills:   job.RequiredSkills,
		PreferredSkills:  job.PreferredSkills,
		ExperienceLevel:  job.ExperienceLevel,
		Responsibilities: job.Responsibilities,
	}

	profileJSON, err := marshalIndent(profile)
	if err != nil {
		return nil, err
	}
	requirementsJSON, err := marshalIndent(requirements)
	if err != nil {
		return nil, err
	}

	prompt := "Evaluate how well this candidate matches the job requirements. Provide a comprehensive skills analysis.\n\n" +
		"Candidate Skills and Experience:\n" + profileJSON + "\n\n" +
		"Job Requirements:\n" + requirementsJSON + "\n\n" +
		"Return the complete skills matching analysis as JSON:"

	m.logger.Debug("skills match request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.generator.Generate(ctx, ai.Request{
		System:      skillsMatcherSystemPrompt,
		Prompt:      prompt,
		Temperature: skillsMatcherTemperature,
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("skills match response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, m.maxLogLen)),
	)

	var payload skillsPayload
	if err := decodePayload(raw, &payload); err != nil {
		return nil, err
	}

	percentage := clamp(payload.OverallMatchPercentage, 0, 100)

	return &models.SkillsEvaluation{
		MatchScore:         percentage / 100,
		MatchedSkills:      payload.MatchedSkills,
		MissingSkills:      payload.MissingSkills,
		TransferableSkills: payload.TransferableSkills,
		Rationale:          payload.Rationale,
		Recommendation:     recommendationFor(percentage),
		DetailedBreakdown:  payload.DetailedBreakdown,
	}, nil
}

// recommendationFor buckets the raw 0-100 match percentage.
func recommendationFor(percentage float64) string {
	switch {
	case percentage >= 85:
		return models.TierStrong
	case percentage >= 70:
		return models.TierModerate
	default:
		return models.TierWeak
	}
}
