package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "ats-scorer"
)

type Config struct {
	Provider     string       `mapstructure:"provider"`
	Format       string       `mapstructure:"format"`
	MaxLogLength int          `mapstructure:"max-log-length"`
	AI           *AIConfig    `mapstructure:"ai"`
	Batch        *BatchConfig `mapstructure:"batch"`
}

// AIConfig holds per-provider settings. A provider without a key is simply
// not offered.
type AIConfig struct {
	OpenAI *ProviderConfig `mapstructure:"openai"`
	Groq   *ProviderConfig `mapstructure:"groq"`
	Gemini *ProviderConfig `mapstructure:"gemini"`
	Claude *ProviderConfig `mapstructure:"claude"`
}

type ProviderConfig struct {
	APIKey      string  `mapstructure:"api-key"`
	APIKeyFile  string  `mapstructure:"api-key-file"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base-url"`
	MaxTokens   int     `mapstructure:"max-tokens"`
	Temperature *float64 `mapstructure:"temperature"`
	MaxRetries  int     `mapstructure:"max-retries"`
}

type BatchConfig struct {
	Threshold   int     `mapstructure:"threshold"`
	Concurrency int     `mapstructure:"concurrency"`
	MinCoverage float64 `mapstructure:"min-coverage"`
	KeepFailed  bool    `mapstructure:"keep-failed"`
	ExcludeFile string  `mapstructure:"exclude-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "ats-scorer rates resumes against a job description with an LLM and a skill taxonomy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app, err)
	}
	return err
}

func init() {
	if err := viper.BindEnv("provider", "ATS_PROVIDER"); err != nil {
		log.Fatalf("binding ATS_PROVIDER environment variable: %v", err)
	}

	viper.SetDefault("format", "text")
	viper.SetDefault("batch.threshold", 70)
	viper.SetDefault("batch.concurrency", 4)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("provider", "p", "", "llm provider: openai, groq, gemini or claude")
	rootCmd.PersistentFlags().StringP("format", "o", "text", "report format: text or json")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

func initConfig() {
	// API keys are often kept in a local .env file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional, but a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.Batch == nil {
		config.Batch = &BatchConfig{}
	}

	return config, nil
}
