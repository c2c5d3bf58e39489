package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rsavchuk/talentflow/internal/agents"
	"github.com/rsavchuk/talentflow/internal/ai"
	"github.com/rsavchuk/talentflow/internal/ai/gemini"
	"github.com/rsavchuk/talentflow/internal/calendar"
	"github.com/rsavchuk/talentflow/internal/export"
	"github.com/rsavchuk/talentflow/internal/logger"
	"github.com/rsavchuk/talentflow/internal/metrics"
	"github.com/rsavchuk/talentflow/internal/models"
	"github.com/rsavchuk/talentflow/internal/notify"
	"github.com/rsavchuk/talentflow/internal/pipeline"
	"github.com/rsavchuk/talentflow/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var schedulePrompt = promptui.Select{
	Label: "Schedule interviews for qualified candidates?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the recruitment pipeline over a batch of resumes",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before scheduling interviews")
	runCmd.Flags().StringP("report", "r", "", "write an Excel report of the batch result to the given path")
	runCmd.Flags().Bool("no-schedule", false, "rank candidates only, skip interview scheduling")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting talentflow", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Gemini == nil {
		logger.Fatal("gemini configuration is required under the gemini section")
	}

	if config.ResumesDir == "" || config.JobFile == "" {
		logger.Fatal("resumes-dir and job-file are required")
	}

	resumes, err := readResumes(config.ResumesDir)
	if err != nil {
		logger.Fatal("reading resumes", zap.Error(err))
	}

	logger.Info("loaded resumes", zap.Int("count", len(resumes)))

	job, culture, err := readJobFile(config.JobFile)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	logger.Info("loaded job description", zap.String("title", job.Title))

	generator, err := newGenerator(ctx, config.Gemini, logger)
	if err != nil {
		logger.Fatal(
			"building gemini generator",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE environment variable or the gemini.api-key-file key in the configuration file"),
		)
	}

	interviewer, scheduler := prepareScheduling(ctx, cmd, config.Scheduling, logger)

	maxLogLen := config.Gemini.MaxLogLength

	orchestrator := pipeline.New(
		agents.NewResumeParser(generator, logger.With(zap.String("agent", "resume_parser")), maxLogLen),
		agents.NewSkillsMatcher(generator, logger.With(zap.String("agent", "skills_matcher")), maxLogLen),
		agents.NewCulturalFitAnalyzer(generator, logger.With(zap.String("agent", "cultural_fit")), maxLogLen),
		scheduler,
		scoringConfig(config.Scoring),
		logger,
		metrics.NewRecorder(nil),
	)

	result := orchestrator.Run(ctx, pipeline.Request{
		Resumes:          resumes,
		JobDescription:   job,
		CompanyCulture:   culture,
		InterviewerEmail: interviewer,
	})

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("rendering result", zap.Error(err))
	}
	fmt.Println(string(pretty))

	if result.Status != models.StatusSuccess {
		logger.Fatal("batch failed", zap.String("message", result.Message))
	}

	if report := cmd.Flag("report").Value.String(); report != "" {
		if err := export.ToExcel(result, job, report); err != nil {
			logger.Fatal("writing excel report", zap.Error(err))
		}
		logger.Info("excel report written", zap.String("path", report))
	}
}

// prepareScheduling resolves the interviewer and builds the scheduler
// agent. It returns an empty interviewer when scheduling is disabled,
// unconfigured or declined at the prompt, which skips phase 4.
func prepareScheduling(ctx context.Context, cmd *cobra.Command, cfg *SchedulingConfig, logger *zap.Logger) (string, pipeline.InterviewScheduler) {
	if cmd.Flag("no-schedule").Value.String() == "true" {
		return "", nil
	}

	if cfg == nil || strings.TrimSpace(cfg.Interviewer) == "" {
		logger.Info("scheduling skipped", zap.String("reason", "no interviewer configured"))
		return "", nil
	}

	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := schedulePrompt.Run()
		if err != nil {
			logger.Fatal("prompt failed", zap.Error(err))
		}
		if action != PromptYes {
			logger.Info("scheduling skipped", zap.String("reason", "declined at prompt"))
			return "", nil
		}
	}

	calendarService, err := calendar.NewGoogleService(ctx, cfg.CredentialsFile, cfg.TokenFile, logger)
	if err != nil {
		logger.Fatal("building calendar service", zap.Error(err))
	}

	sender, err := notify.NewGmailSender(ctx, cfg.CredentialsFile, cfg.TokenFile, cfg.FromEmail, logger)
	if err != nil {
		logger.Fatal("building email sender", zap.Error(err))
	}

	scheduler := agents.NewInterviewScheduler(calendarService, sender, agents.SchedulerConfig{
		LookaheadDays:   cfg.LookaheadDays,
		DurationMinutes: cfg.DurationMinutes,
	}, logger)

	return cfg.Interviewer, scheduler
}

func newGenerator(ctx context.Context, cfg *GeminiConfig, logger *zap.Logger) (ai.Generator, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Model),
	)

	return gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.MaxRetries, genLogger)
}

func scoringConfig(cfg *ScoringConfig) pipeline.Config {
	if cfg == nil {
		return pipeline.Config{}
	}

	return pipeline.Config{
		Weights: pipeline.Weights{
			Skills:     cfg.SkillsWeight,
			Cultural:   cfg.CulturalWeight,
			Experience: cfg.ExperienceWeight,
		},
		SkillsThreshold:         cfg.SkillsThreshold,
		CulturalThreshold:       cfg.CulturalThreshold,
		CallTimeout:             time.Duration(cfg.CallTimeoutSeconds) * time.Second,
		ExperienceFromDurations: cfg.ExperienceFromDurations,
	}
}

// readResumes loads every plain-text resume from the directory, sorted by
// filename so batch indices are reproducible across runs.
func readResumes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read resumes dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".md":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no .txt or .md resumes found in %s", dir)
	}

	resumes := make([]string, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read resume %s: %w", name, err)
		}
		resumes = append(resumes, string(data))
	}

	return resumes, nil
}

// jobFile is the on-disk layout of the job description file: the job
// fields at the top level plus an optional company culture section.
type jobFile struct {
	models.JobDescription `mapstructure:",squash"`
	CompanyCulture        *models.CompanyCulture `mapstructure:"company_culture"`
}

func readJobFile(path string) (*models.JobDescription, *models.CompanyCulture, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read job file: %w", err)
	}

	var parsed jobFile
	if err := v.Unmarshal(&parsed); err != nil {
		return nil, nil, fmt.Errorf("decode job file: %w", err)
	}

	job := parsed.JobDescription
	if job.IsZero() {
		return nil, nil, fmt.Errorf("job file %s contains no job description", path)
	}

	return &job, parsed.CompanyCulture, nil
}
