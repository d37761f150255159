package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sednabcn/job-search-automation/internal/ai"
	"github.com/sednabcn/job-search-automation/internal/ai/gemini"
	"github.com/sednabcn/job-search-automation/internal/history"
	"github.com/sednabcn/job-search-automation/internal/jobs"
	"github.com/sednabcn/job-search-automation/internal/logger"
	"github.com/sednabcn/job-search-automation/internal/match"
	"github.com/sednabcn/job-search-automation/internal/normalize"
	"github.com/sednabcn/job-search-automation/internal/pipeline"
	"github.com/sednabcn/job-search-automation/internal/secrets"
	"github.com/sednabcn/job-search-automation/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes             = "Yes"
	PromptNo              = "No"
	PromptReportByCompany = "Report by company"
	PromptMatchesToFile   = "Dump matches to file"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Save these matches?",
	Items: []string{PromptYes, PromptNo, PromptReportByCompany, PromptMatchesToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the aggregation pipeline over collector output",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("include-seen", "f", false, "do not exclude jobs already present in the history file")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before saving matches")
	runCmd.Flags().Float64P("min-score", "m", -1, "minimum total score to keep a match. Overrides the config value.")
	runCmd.Flags().StringP("history-file", "e", "", "file with previously discovered jobs. Default is unset.")

	viper.BindPFlag("history-file", runCmd.Flags().Lookup("history-file"))
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

	logger.Info("starting the job search aggregation", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if len(config.Inputs) == 0 {
		logger.Fatal("at least one collector input file is required under inputs")
	}

	// The one fatal validation of the system: scoring with a broken
	// profile would be meaningless.
	profile, err := match.NewProfile(config.Profile)
	if err != nil {
		logger.Fatal("building the match profile", zap.Error(err))
	}

	raws := loadRawRecords(config, logger)
	logger.Info("collected raw records", zap.Int("count", len(raws)))

	minScore := config.MinScore
	if flagScore, err := cmd.Flags().GetFloat64("min-score"); err == nil && flagScore >= 0 {
		minScore = flagScore
	}

	normalizer := normalize.New(normalize.Config{Vocabulary: config.Vocabulary})

	result := pipeline.New(normalizer, profile, minScore, logger).Run(raws)

	if len(result.Results) == 0 {
		logger.Info("exiting", zap.String("reason", "no matches above the score threshold"))
		return
	}

	seen := loadHistory(cmd, result, logger)

	if len(result.Results) == 0 {
		logger.Info("exiting", zap.String("reason", "no matches left after history exclusion"))
		return
	}

	reviewMatches(ctx, config.AI, profile, result, logger)

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of matches", zap.Int("count", len(result.Results)))

		if err := handleAction(ctx, action, config, result, seen, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if cmd.Flag("auto-approve").Value.String() == "true" {
			return
		}
	}
}

func handleAction(ctx context.Context, action string, config *Config, result *pipeline.Result, seen *history.History, logger *zap.Logger) error {
	switch action {
	case PromptYes:
		if err := saveRun(ctx, config, result, logger); err != nil {
			return err
		}
		if err := saveHistory(result, seen, logger); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(result.Matches().ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", len(result.Results)))
		return nil
	case PromptMatchesToFile:
		filename, err := result.Matches().DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump matches to file: %w", err)
		}
		logger.Info("dumping matches to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// loadRawRecords reads every configured collector file. A missing file is
// logged and skipped: one dead collector should not sink the whole run.
func loadRawRecords(config *Config, logger *zap.Logger) []jobs.RawRecord {
	var raws []jobs.RawRecord

	for _, input := range config.Inputs {
		platform := jobs.ParsePlatform(input.Platform)

		records, err := jobs.LoadRawRecords(input.File, platform)
		if err != nil {
			logger.Warn("skipping collector file",
				zap.String("platform", string(platform)),
				zap.String("file", input.File),
				zap.Error(err),
			)
			continue
		}

		logger.Info("loaded collector file",
			zap.String("platform", string(platform)),
			zap.String("file", input.File),
			zap.Int("count", len(records)),
		)

		raws = append(raws, records...)
	}

	return raws
}

func loadHistory(cmd *cobra.Command, result *pipeline.Result, logger *zap.Logger) *history.History {
	path := strings.TrimSpace(viper.GetString("history-file"))
	if path == "" {
		return history.New()
	}

	seen, err := history.FromFile(path)
	if err != nil {
		logger.Fatal("loading the history file", zap.String("path", path), zap.Error(err))
	}

	if cmd.Flag("include-seen").Value.String() == "true" {
		logger.Info("keeping previously seen jobs", zap.String("reason", "include-seen flag is set"))
		return seen
	}

	kept, dropped := seen.ExcludeSeen(result.Results)
	result.Results = kept

	if dropped > 0 {
		logger.Info("excluding jobs already in history",
			zap.String("path", path),
			zap.Int("dropped", dropped),
			zap.Int("left", len(kept)),
		)
	}

	return seen
}

func saveHistory(result *pipeline.Result, seen *history.History, logger *zap.Logger) error {
	path := strings.TrimSpace(viper.GetString("history-file"))
	if path == "" {
		return nil
	}

	added := 0
	now := time.Now()
	for _, m := range result.Results {
		if seen.Add(m.Job, now) {
			added++
		}
	}

	if err := seen.ToFile(path); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}

	logger.Info("updated the history file", zap.String("path", path), zap.Int("added", added))
	return nil
}

func saveRun(ctx context.Context, config *Config, result *pipeline.Result, logger *zap.Logger) error {
	st, err := buildStore(ctx, config.Store)
	if err != nil {
		return fmt.Errorf("building the result store: %w", err)
	}

	run := &store.Run{
		RunID:          result.RunID,
		FinishedAt:     time.Now().UTC().Format(time.RFC3339),
		RejectedCount:  result.RejectedCount,
		DuplicateCount: result.DuplicateCount,
		Results:        result.Results,
	}

	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}

	logger.Info("saved the run",
		zap.String("run_id", run.RunID),
		zap.Int("matches", len(run.Results)),
	)
	return nil
}

func buildStore(ctx context.Context, cfg *StoreConfig) (store.Store, error) {
	if cfg == nil {
		return store.NewFileStore("runs")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "file":
		return store.NewFileStore(cfg.Dir)
	case "postgres":
		dsn, err := secrets.Load(secrets.Source{
			Name:  "postgres dsn",
			Value: cfg.DatabaseURL,
			File:  cfg.DatabaseURLFile,
		})
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}

// reviewMatches asks the configured AI provider for a second opinion on each
// ranked match. Assessments are advisory: they are logged, never used to
// reorder or drop matches.
func reviewMatches(ctx context.Context, cfg *AIConfig, profile *match.Profile, result *pipeline.Result, logger *zap.Logger) {
	if cfg == nil || !cfg.Enabled {
		return
	}

	reviewer, err := newAIReviewer(ctx, cfg, logger)
	if err != nil {
		logger.Warn("skipping AI review", zap.Error(err))
		return
	}

	for _, m := range result.Results {
		assessment, err := reviewer.Evaluate(ctx, profile, m)
		if err != nil {
			logger.Warn("AI review failed",
				zap.String("company", m.Job.Company),
				zap.String("title", m.Job.Title),
				zap.Error(err),
			)
			continue
		}

		logger.Info("AI review",
			zap.String("company", m.Job.Company),
			zap.String("title", m.Job.Title),
			zap.Bool("ai_fit", assessment.Fit),
			zap.Float64("ai_score", assessment.Score),
			zap.String("ai_reason", assessment.Reason),
		)
	}
}

func newAIReviewer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Reviewer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai review is enabled")
	}

	keyFile := cfg.Gemini.APIKeyFile
	if keyFile == "" {
		keyFile = viper.GetString("gemini-api-key-file")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	reviewLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewMatcher(generator, reviewLogger, cfg.MinimumFitScore, cfg.Gemini.MaxLogLength), nil
}
