package cmd

import (
	"log"

	"github.com/sednabcn/job-search-automation/internal/match"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "job-search-automation"
)

type Config struct {
	Inputs      []InputConfig       `mapstructure:"inputs"`
	Vocabulary  []string            `mapstructure:"vocabulary"`
	Profile     match.ProfileParams `mapstructure:"profile"`
	MinScore    float64             `mapstructure:"min-score"`
	HistoryFile string              `mapstructure:"history-file"`
	Store       *StoreConfig        `mapstructure:"store"`
	AI          *AIConfig           `mapstructure:"ai"`
}

// InputConfig names one collector output file and the platform it came from.
type InputConfig struct {
	Platform string `mapstructure:"platform"`
	File     string `mapstructure:"file"`
}

type StoreConfig struct {
	Driver          string `mapstructure:"driver"`
	Dir             string `mapstructure:"dir"`
	DatabaseURL     string `mapstructure:"database-url"`
	DatabaseURLFile string `mapstructure:"database-url-file"`
}

type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider"`
	MinimumFitScore float64       `mapstructure:"minimum-fit-score"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-search-automation merges collector output into one deduplicated, scored and ranked list of job postings",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini-api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is "+app+".yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
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
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
