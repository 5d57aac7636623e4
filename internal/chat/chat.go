// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat runs an interactive question/answer session against the
// text of a converted document, backed by a third-party LLM API.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/arturict/any2pdf/internal/pdftext"
	"github.com/arturict/any2pdf/pkg/types"
)

// Backend sends one turn to an LLM vendor. Each provider implements this
// interface; the session is provider-agnostic.
type Backend interface {
	// Name returns the provider name for display.
	Name() string

	// Chat sends the document context, the prior turns and the new user
	// message, returning the assistant's reply. Stateless per call: the
	// full history travels with every request.
	Chat(ctx context.Context, doc string, history []types.ChatTurn, userMsg string) (string, error)
}

// NewBackend builds the backend for the configured provider.
func NewBackend(cfg types.ChatConfig) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key for provider %s", cfg.Provider)
	}
	model := cfg.Model
	if model == "" {
		model = cfg.DefaultModel()
	}

	switch cfg.Provider {
	case types.ProviderOpenAI:
		return &OpenAIBackend{APIKey: cfg.APIKey, Model: model, MaxRetries: cfg.MaxRetries}, nil
	case types.ProviderGemini:
		return &GeminiBackend{APIKey: cfg.APIKey, Model: model, MaxRetries: cfg.MaxRetries}, nil
	default:
		return nil, fmt.Errorf("unknown chat provider %q (want openai or gemini)", cfg.Provider)
	}
}

// Session is one interactive chat over a document. History lives in memory
// for the lifetime of the session only.
type Session struct {
	backend Backend
	doc     string
	history []types.ChatTurn
	in      io.Reader
	out     io.Writer
}

// NewSession prepares a session over docText, truncated to maxContextRunes
// (0 selects the 50000-rune default).
func NewSession(backend Backend, docText string, maxContextRunes int, in io.Reader, out io.Writer) *Session {
	if maxContextRunes <= 0 {
		maxContextRunes = 50000
	}
	return &Session{
		backend: backend,
		doc:     pdftext.Truncate(docText, maxContextRunes),
		in:      in,
		out:     out,
	}
}

// Run drives the read/ask/print loop until exit or EOF. A failed turn is
// reported and the loop continues; the user retries by re-sending.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Chat session (%s). Document context: %d characters.\n",
		s.backend.Name(), len(s.doc))
	fmt.Fprintln(s.out, "Commands: exit, clear, help.")

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Fprint(s.out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out, "\nGoodbye.")
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit", "q":
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		case "clear":
			s.history = nil
			fmt.Fprintln(s.out, "Conversation history cleared.")
			continue
		case "help":
			fmt.Fprintln(s.out, "Ask any question about the document.")
			fmt.Fprintln(s.out, "  exit   end the session")
			fmt.Fprintln(s.out, "  clear  clear conversation history")
			fmt.Fprintln(s.out, "  help   show this help")
			continue
		}

		reply, err := s.backend.Chat(ctx, s.doc, s.history, input)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\nRe-send your question to retry.\n", err)
			continue
		}

		fmt.Fprintf(s.out, "AI: %s\n", reply)
		s.history = append(s.history,
			types.ChatTurn{Role: types.RoleUser, Text: input},
			types.ChatTurn{Role: types.RoleAssistant, Text: reply},
		)
	}
}

// docPrompt frames the document context for both providers.
const docPrompt = "You are a helpful assistant analyzing a document. Here is its content:\n\n%s\n\nAnswer questions about this document."
