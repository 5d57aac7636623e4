// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arturict/any2pdf/internal/chat"
	"github.com/arturict/any2pdf/internal/pdftext"
	"github.com/arturict/any2pdf/pkg/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat PDF",
	Short: "Chat with a PDF using an LLM API",
	Long: `Chat extracts the text of a PDF and opens an interactive session against
the configured LLM provider. Each turn sends the document context plus the
conversation so far; history is kept in memory for the session only.

The API key is taken from --api-key, then .secrets/<provider>-api-key,
then the OPENAI_API_KEY / GEMINI_API_KEY environment variable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, _ := cmd.Flags().GetString("provider")
		model, _ := cmd.Flags().GetString("model")
		apiKey, _ := cmd.Flags().GetString("api-key")
		return startChat(cmd, args[0], resolveChatConfig(provider, model, apiKey))
	},
}

func init() {
	chatCmd.Flags().String("provider", "", "LLM provider: openai or gemini (default: openai)")
	chatCmd.Flags().String("model", "", "model identifier (default: provider default)")
	chatCmd.Flags().String("api-key", "", "API key (default: .secrets/ or environment)")

	rootCmd.AddCommand(chatCmd)
}

// startChat extracts the PDF text and runs the interactive loop. Shared by
// the chat subcommand and convert --chat.
func startChat(cmd *cobra.Command, pdfPath string, cfg types.ChatConfig) error {
	w := cmd.OutOrStdout()

	text, err := pdftext.Extract(pdfPath)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(text)) < 50 {
		fmt.Fprintln(w, "warning: the PDF has minimal text content, chat may be limited")
	}

	backend, err := chat.NewBackend(cfg)
	if err != nil {
		return err
	}

	session := chat.NewSession(backend, text, cfg.MaxContextRunes, cmd.InOrStdin(), w)
	return session.Run(cmd.Context())
}
