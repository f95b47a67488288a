// Package cli wires the quartet commands: serving the study backend,
// exporting collected data, and administrative cache resets.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quartetlab/quartet/internal/config"
)

var (
	cfgFile       string
	currentConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "quartet",
	Short: "quartet — persona-conditioned generation backend for behavioral studies",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default quartet.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return
	}
	viper.SetConfigName("quartet")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/quartet")
}

// loadConfig reads the config file and environment into currentConfig,
// starting from built-in defaults. A missing config file is fine; a
// malformed one is not.
func loadConfig() error {
	defaults := config.Default()
	viper.SetDefault("listenAddr", defaults.ListenAddr)
	viper.SetDefault("databaseUrl", defaults.DatabaseURL)
	viper.SetDefault("redisUrl", defaults.RedisURL)
	viper.SetDefault("cacheTtl", defaults.CacheTTL)
	viper.SetDefault("promptConfigPath", defaults.PromptConfigPath)
	viper.SetDefault("promptVersion", defaults.PromptVersion)
	viper.SetDefault("stripPii", defaults.StripPII)
	viper.SetDefault("llm.provider", defaults.LLM.Provider)
	viper.SetDefault("llm.apiKey", defaults.LLM.APIKey)
	viper.SetDefault("llm.model", defaults.LLM.Model)
	viper.SetDefault("llm.baseUrl", defaults.LLM.BaseURL)
	viper.SetDefault("llm.temperature", defaults.LLM.Temperature)
	viper.SetDefault("llm.topP", defaults.LLM.TopP)
	viper.SetDefault("llm.maxTokens", defaults.LLM.MaxTokens)
	viper.SetDefault("llm.timeout", defaults.LLM.Timeout)
	viper.SetDefault("llm.rateLimit", defaults.LLM.RateLimit)
	viper.SetDefault("llm.rateBurst", defaults.LLM.RateBurst)

	// Nested keys map to underscored env names: llm.apiKey is settable
	// as QUARTET_LLM_APIKEY.
	viper.SetEnvPrefix("QUARTET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	currentConfig = cfg
	return nil
}
