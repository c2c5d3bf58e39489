// Package pipeline implements the orchestration core of the recruitment
// workflow: parallel resume parsing, parallel candidate evaluation,
// deterministic ranking and qualification with conditional interview
// scheduling. The orchestrator is the only component holding cross-candidate
// state, and the only place ordering, tie-break and threshold policy lives.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rsavchuk/talentflow/internal/metrics"
	"github.com/rsavchuk/talentflow/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResumeParser extracts structured candidate data from raw resume text.
type ResumeParser interface {
	Parse(ctx context.Context, resumeContent string) (*models.Candidate, map[string]float64, error)
}

// SkillsMatcher scores a candidate's skills against the job description.
type SkillsMatcher interface {
	Match(ctx context.Context, candidate *models.Candidate, job *models.JobDescription) (*models.SkillsEvaluation, error)
}

// CulturalFitAnalyzer scores a candidate's cultural alignment.
type CulturalFitAnalyzer interface {
	Analyze(ctx context.Context, candidate *models.Candidate, job *models.JobDescription, culture *models.CompanyCulture) (*models.CulturalFitEvaluation, error)
}

// InterviewScheduler books interviews for the qualified candidates.
// Per-candidate failures are handled inside the scheduler.
type InterviewScheduler interface {
	Schedule(ctx context.Context, candidates []models.RankedCandidate, interviewerEmail string) []models.ScheduledInterview
}

// Weights combines the three evaluation axes into the overall score. The
// defaults sum to 1.0 by convention; this is not enforced.
type Weights struct {
	Skills     float64
	Cultural   float64
	Experience float64
}

// Default scoring policy.
const (
	defaultSkillsWeight     = 0.6
	defaultCulturalWeight   = 0.3
	defaultExperienceWeight = 0.1

	defaultSkillsThreshold   = 70.0
	defaultCulturalThreshold = 65.0

	defaultCallTimeout = 45 * time.Second
)

// Config is the explicit orchestrator configuration. Thresholds are on the
// 0-100 display scale.
type Config struct {
	Weights           Weights
	SkillsThreshold   float64
	CulturalThreshold float64

	// CallTimeout bounds every individual agent call so an unresponsive
	// external service cannot stall the batch indefinitely.
	CallTimeout time.Duration

	// ExperienceFromDurations switches the experience heuristic from
	// 2 years per work-history entry to the sum of reported
	// duration_months. See rankCandidates.
	ExperienceFromDurations bool
}

func (c Config) withDefaults() Config {
	if c.Weights == (Weights{}) {
		c.Weights = Weights{
			Skills:     defaultSkillsWeight,
			Cultural:   defaultCulturalWeight,
			Experience: defaultExperienceWeight,
		}
	}
	if c.SkillsThreshold <= 0 {
		c.SkillsThreshold = defaultSkillsThreshold
	}
	if c.CulturalThreshold <= 0 {
		c.CulturalThreshold = defaultCulturalThreshold
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = defaultCallTimeout
	}

	return c
}

// Request is one orchestration batch: N resumes against one job
// description, with an optional culture profile and interviewer.
type Request struct {
	Resumes          []string
	JobDescription   *models.JobDescription
	CompanyCulture   *models.CompanyCulture
	InterviewerEmail string
}

// Orchestrator drives the 4-phase pipeline.
type Orchestrator struct {
	parser    ResumeParser
	matcher   SkillsMatcher
	cultural  CulturalFitAnalyzer
	scheduler InterviewScheduler
	cfg       Config
	logger    *zap.Logger
	recorder  *metrics.Recorder
}

// New creates an orchestrator. The scheduler and recorder may be nil, in
// which case scheduling is skipped and no metrics are recorded.
func New(parser ResumeParser, matcher SkillsMatcher, cultural CulturalFitAnalyzer, scheduler InterviewScheduler, cfg Config, logger *zap.Logger, recorder *metrics.Recorder) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		parser:    parser,
		matcher:   matcher,
		cultural:  cultural,
		scheduler: scheduler,
		cfg:       cfg.withDefaults(),
		logger:    logger,
		recorder:  recorder,
	}
}

// Run executes one batch. It always returns a well-formed result: partial
// failures surface in the processing summary, and the status is "error"
// only for whole-batch failures. Genuinely unexpected failures are caught
// at this boundary instead of crashing the caller.
func (o *Orchestrator) Run(ctx context.Context, req Request) (result *models.Result) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("unexpected failure in orchestration", zap.Any("panic", r))
			result = errorResult(fmt.Sprintf("unexpected failure: %v", r))
		}
	}()

	if len(req.Resumes) == 0 {
		o.logger.Error("no resumes provided")
		return errorResult("No resumes provided")
	}

	if req.JobDescription.IsZero() {
		o.logger.Error("no job description provided")
		return errorResult("No job description provided")
	}

	batchID := uuid.NewString()
	started := time.Now()
	o.recorder.BatchStarted()
	defer func() { o.recorder.BatchFinished(time.Since(started)) }()

	logger := o.logger.With(zap.String("batch_id", batchID))
	logger.Info("starting orchestration workflow", zap.Int("resumes", len(req.Resumes)))

	// Phase 1: parse all resumes in parallel.
	parsed := o.parseResumes(ctx, logger, req.Resumes)

	valid := make([]models.ParsedResume, 0, len(parsed))
	for _, p := range parsed {
		if p.Succeeded() {
			valid = append(valid, p)
		}
	}
	o.recorder.ParseResults(len(valid), len(parsed)-len(valid))
	logger.Info("phase 1 complete",
		zap.Int("parsed", len(valid)),
		zap.Int("failed", len(parsed)-len(valid)),
	)

	// Phase 2: skills matching and cultural fit analysis in parallel.
	evaluations, evalFailures := o.evaluateCandidates(ctx, logger, valid, req.JobDescription, req.CompanyCulture)
	o.recorder.EvaluationFailures(evalFailures)
	logger.Info("phase 2 complete",
		zap.Int("evaluated", len(evaluations)),
		zap.Int("failed", evalFailures),
	)

	// Phase 3: deterministic ranking. Pure and synchronous.
	ranked := rankCandidates(evaluations, o.cfg)
	logger.Info("phase 3 complete", zap.Int("ranked", len(ranked)))

	// Phase 4: qualification and conditional scheduling.
	qualified := o.selectQualified(logger, ranked)
	o.recorder.Qualified(len(qualified))

	var scheduled []models.ScheduledInterview
	if len(qualified) > 0 && req.InterviewerEmail != "" && o.scheduler != nil {
		scheduled = o.scheduler.Schedule(ctx, qualified, req.InterviewerEmail)
	}
	o.recorder.Scheduled(len(scheduled))
	if scheduled == nil {
		scheduled = []models.ScheduledInterview{}
	}

	logger.Info("orchestration workflow completed",
		zap.Int("qualified", len(qualified)),
		zap.Int("scheduled", len(scheduled)),
	)

	return &models.Result{
		Status:           models.StatusSuccess,
		BatchID:          batchID,
		RankedCandidates: ranked,
		ProcessingSummary: &models.ProcessingSummary{
			TotalResumes:        len(req.Resumes),
			SuccessfullyParsed:  len(valid),
			EvaluationFailures:  evalFailures,
			QualifiedCandidates: len(qualified),
			InterviewsScheduled: len(scheduled),
		},
		ScheduledInterviews: scheduled,
	}
}

// parseResumes fans out one parse per resume and waits for all of them.
// Results are slotted by input index, never by completion order, and a
// failed parse never cancels its siblings.
func (o *Orchestrator) parseResumes(ctx context.Context, logger *zap.Logger, resumes []string) []models.ParsedResume {
	results := make([]models.ParsedResume, len(resumes))

	var wg sync.WaitGroup
	for idx, content := range resumes {
		wg.Add(1)
		go func(idx int, content string) {
			defer wg.Done()

			id := fmt.Sprintf("candidate_%d", idx)

			// A panicking parse must not take the process down with it.
			defer func() {
				if r := recover(); r != nil {
					logger.Error("resume parsing panicked",
						zap.Int("resume_index", idx),
						zap.Any("panic", r),
					)
					results[idx] = models.ParsedResume{
						ID:          id,
						ResumeIndex: idx,
						Status:      models.StatusError,
						Error:       fmt.Sprintf("panic: %v", r),
					}
				}
			}()

			callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
			defer cancel()

			candidate, confidence, err := o.parser.Parse(callCtx, content)
			if err != nil {
				logger.Error("resume parsing failed",
					zap.Int("resume_index", idx),
					zap.Error(err),
				)
				results[idx] = models.ParsedResume{
					ID:          id,
					ResumeIndex: idx,
					Status:      models.StatusError,
					Error:       err.Error(),
				}
				return
			}

			results[idx] = models.ParsedResume{
				ID:               id,
				ResumeIndex:      idx,
				Status:           models.StatusSuccess,
				Candidate:        candidate,
				ConfidenceScores: confidence,
			}
		}(idx, content)
	}
	wg.Wait()

	return results
}

// evaluateCandidates fans out across candidates, with skills matching and
// cultural fit running concurrently for each one. A candidate whose
// evaluation pair fails is dropped from ranking; the count of dropped
// candidates is reported so the failure stays visible in the summary.
func (o *Orchestrator) evaluateCandidates(ctx context.Context, logger *zap.Logger, candidates []models.ParsedResume, job *models.JobDescription, culture *models.CompanyCulture) ([]*models.Evaluation, int) {
	type outcome struct {
		eval *models.Evaluation
		err  error
	}

	outcomes := make([]outcome, len(candidates))

	var wg sync.WaitGroup
	for idx, candidate := range candidates {
		wg.Add(1)
		go func(idx int, parsed models.ParsedResume) {
			defer wg.Done()

			eval, err := o.evaluateOne(ctx, parsed, job, culture)
			outcomes[idx] = outcome{eval: eval, err: err}
		}(idx, candidate)
	}
	wg.Wait()

	evaluations := make([]*models.Evaluation, 0, len(candidates))
	failures := 0
	for idx, out := range outcomes {
		if out.err != nil {
			failures++
			logger.Error("candidate evaluation failed",
				zap.String("candidate_id", candidates[idx].ID),
				zap.Error(out.err),
			)
			continue
		}
		evaluations = append(evaluations, out.eval)
	}

	return evaluations, failures
}

// evaluateOne runs both evaluations concurrently against the same
// candidate and job description.
func (o *Orchestrator) evaluateOne(ctx context.Context, parsed models.ParsedResume, job *models.JobDescription, culture *models.CompanyCulture) (*models.Evaluation, error) {
	var (
		wg       sync.WaitGroup
		skills   *models.SkillsEvaluation
		cultural *models.CulturalFitEvaluation
		sErr     error
		cErr     error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				sErr = fmt.Errorf("skills matching panic: %v", r)
			}
		}()
		callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
		defer cancel()
		skills, sErr = o.matcher.Match(callCtx, parsed.Candidate, job)
	}()

	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				cErr = fmt.Errorf("cultural fit analysis panic: %v", r)
			}
		}()
		callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
		defer cancel()
		cultural, cErr = o.cultural.Analyze(callCtx, parsed.Candidate, job, culture)
	}()

	wg.Wait()

	if err := errors.Join(sErr, cErr); err != nil {
		return nil, err
	}

	return &models.Evaluation{
		ID:          parsed.ID,
		ResumeIndex: parsed.ResumeIndex,
		Candidate:   parsed.Candidate,
		Skills:      skills,
		Cultural:    cultural,
	}, nil
}

func errorResult(message string) *models.Result {
	return &models.Result{
		Status:              models.StatusError,
		Message:             message,
		RankedCandidates:    []models.RankedCandidate{},
		ScheduledInterviews: []models.ScheduledInterview{},
	}
}
