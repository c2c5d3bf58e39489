package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talentflow"
)

// Config is the application configuration, decoded from the config file.
type Config struct {
	ResumesDir string            `mapstructure:"resumes-dir"`
	JobFile    string            `mapstructure:"job-file"`
	Gemini     *GeminiConfig     `mapstructure:"gemini"`
	Scoring    *ScoringConfig    `mapstructure:"scoring"`
	Scheduling *SchedulingConfig `mapstructure:"scheduling"`
}

// GeminiConfig configures the text-generation provider.
type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

// ScoringConfig tunes ranking weights and qualification thresholds.
// Thresholds are on the 0-100 scale; weights should sum to 1.0.
type ScoringConfig struct {
	SkillsWeight            float64 `mapstructure:"skills-weight"`
	CulturalWeight          float64 `mapstructure:"cultural-weight"`
	ExperienceWeight        float64 `mapstructure:"experience-weight"`
	SkillsThreshold         float64 `mapstructure:"skills-threshold"`
	CulturalThreshold       float64 `mapstructure:"cultural-threshold"`
	CallTimeoutSeconds      int     `mapstructure:"call-timeout-seconds"`
	ExperienceFromDurations bool    `mapstructure:"experience-from-durations"`
}

// SchedulingConfig configures the interview scheduling integration. When
// Interviewer is empty scheduling is skipped entirely.
type SchedulingConfig struct {
	Interviewer     string `mapstructure:"interviewer"`
	LookaheadDays   int    `mapstructure:"lookahead-days"`
	DurationMinutes int    `mapstructure:"duration-minutes"`
	CredentialsFile string `mapstructure:"credentials-file"`
	TokenFile       string `mapstructure:"token-file"`
	FromEmail       string `mapstructure:"from-email"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentflow is a cli for evaluating resume batches against a job description and scheduling interviews",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentflow.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the run command. If there is no config, we can
	// skip initialization.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	return config, nil
}
