package agents

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/rsavchuk/talentflow/internal/ai"
	"github.com/rsavchuk/talentflow/internal/models"
	"github.com/rsavchuk/talentflow/internal/utils"

	"go.uber.org/zap"
)

//go:embed resume_parser_prompt.md
var resumeParserSystemPrompt string

const resumeParserTemperature = 0.3

// ErrEmptyResume is returned when a resume arrives without content. No
// external call is made in that case.
var ErrEmptyResume = errors.New("no resume content provided")

// ResumeParser extracts a structured candidate record from free-text
// resume content.
type ResumeParser struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

// NewResumeParser creates the parser agent.
func NewResumeParser(generator ai.Generator, logger *zap.Logger, maxLogLength int) *ResumeParser {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ResumeParser{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

const defaultMaxLogLength = 200

// Parse extracts candidate data from one resume. It also reports
// per-section confidence scores derived from the completeness of the
// extracted record.
func (p *ResumeParser) Parse(ctx context.Context, resumeContent string) (*models.Candidate, map[string]float64, error) {
	resumeContent = strings.TrimSpace(resumeContent)
	if resumeContent == "" {
		return nil, nil, ErrEmptyResume
	}

	prompt := "Extract all relevant information from the following resume and return it as a structured JSON object.\n\n" +
		"Resume Content:\n" + resumeContent + "\n\nReturn the structured JSON now:"

	p.logger.Debug("resume parse request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, p.maxLogLen)),
	)

	raw, err := p.generator.Generate(ctx, ai.Request{
		System:      resumeParserSystemPrompt,
		Prompt:      prompt,
		Temperature: resumeParserTemperature,
	})
	if err != nil {
		return nil, nil, err
	}

	p.logger.Debug("resume parse response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, p.maxLogLen)),
	)

	var candidate models.Candidate
	if err := decodePayload(raw, &candidate); err != nil {
		return nil, nil, err
	}

	return &candidate, confidenceScores(&candidate), nil
}

// confidenceScores grades the completeness of each extracted section.
func confidenceScores(c *models.Candidate) map[string]float64 {
	scores := make(map[string]float64)

	required := 0
	if strings.TrimSpace(c.PersonalInfo.Name) != "" {
		required++
	}
	if strings.TrimSpace(c.PersonalInfo.Email) != "" {
		required++
	}
	scores["personal_info"] = float64(required) / 2

	if len(c.WorkExperience) > 0 {
		scores["work_experience"] = 1.0
	} else {
		scores["work_experience"] = 0.5
	}

	if len(c.Education) > 0 {
		scores["education"] = 1.0
	} else {
		scores["education"] = 0.5
	}

	if len(c.Skills) > 0 {
		scores["skills"] = 1.0
	} else {
		scores["skills"] = 0.3
	}

	return scores
}
