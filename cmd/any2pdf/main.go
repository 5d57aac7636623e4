// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the any2pdf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arturict/any2pdf/internal/secrets"
	"github.com/arturict/any2pdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the any2pdf CLI.
var rootCmd = &cobra.Command{
	Use:   "any2pdf",
	Short: "Convert documents to searchable PDFs",
	Long: `any2pdf batch-converts office documents, images, text files and existing
PDFs into searchable PDFs, optionally merges them into a single document,
and can open an interactive chat session over the result using an LLM API.

Conversion shells out to an office suite, tesseract and pdftoppm where
needed; run "any2pdf deps" to check what is installed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./any2pdf.yaml or ~/.config/any2pdf/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("any2pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "any2pdf"))
		}
	}

	viper.SetEnvPrefix("ANY2PDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveChatConfig assembles the chat settings from flag values, config
// file, loaded secrets and the conventional environment variables, in that
// order of precedence.
func resolveChatConfig(provider, model, apiKey string) types.ChatConfig {
	if provider == "" {
		provider = viper.GetString("chat.provider")
	}
	if provider == "" {
		provider = string(types.ProviderOpenAI)
	}
	if model == "" {
		model = viper.GetString("chat.model")
	}

	p := types.ChatProvider(provider)
	if apiKey == "" {
		apiKey = loadedSecrets[provider+"-api-key"]
	}
	if apiKey == "" {
		switch p {
		case types.ProviderGemini:
			apiKey = os.Getenv("GEMINI_API_KEY")
		default:
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return types.ChatConfig{
		Provider:        p,
		Model:           model,
		APIKey:          apiKey,
		MaxRetries:      viper.GetInt("chat.max_retries"),
		MaxContextRunes: viper.GetInt("chat.max_context_runes"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
