// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arturict/any2pdf/internal/httputil"
	"github.com/arturict/any2pdf/pkg/types"
)

// openaiAPIURL is the chat completions endpoint. Package-level var for
// test substitution.
var openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIBackend talks to the OpenAI chat completions API.
type OpenAIBackend struct {
	APIKey     string
	Model      string
	MaxRetries int
	Client     *http.Client
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
}

func (b *OpenAIBackend) Name() string { return "openai/" + b.Model }

func (b *OpenAIBackend) Chat(ctx context.Context, doc string, history []types.ChatTurn, userMsg string) (string, error) {
	messages := make([]openaiMessage, 0, len(history)+2)
	messages = append(messages, openaiMessage{
		Role:    "system",
		Content: fmt.Sprintf(docPrompt, doc),
	})
	for _, turn := range history {
		messages = append(messages, openaiMessage{Role: string(turn.Role), Content: turn.Text})
	}
	messages = append(messages, openaiMessage{Role: "user", Content: userMsg})

	body, err := json.Marshal(openaiRequest{Model: b.Model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	resp, err := httputil.DoWithRetry(ctx, b.client(), req, b.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, detail)
	}

	var parsed openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (b *OpenAIBackend) client() *http.Client {
	if b.Client != nil {
		return b.Client
	}
	return &http.Client{Timeout: 120 * time.Second}
}
