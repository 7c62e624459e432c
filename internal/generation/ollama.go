package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"remedia/internal/prompt"
	"remedia/pkg/platform/sentinel"
)

// Defaults match a local Ollama serving its OpenAI-compatible API.
const (
	defaultEndpoint  = "http://localhost:11434/v1/chat/completions"
	defaultModel     = "gpt-oss:20b"
	defaultMaxTokens = 512
	defaultTimeout   = 30 * time.Second
)

// OllamaConfig configures the Ollama-backed generation client.
type OllamaConfig struct {
	Endpoint  string
	Model     string
	MaxTokens int
	// Timeout bounds one generation call. Every call gets a deadline; a
	// backend that never answers must not stall a decision forever.
	Timeout time.Duration
}

// OllamaClient talks to an Ollama (or any OpenAI-compatible) chat-completions
// endpoint.
type OllamaClient struct {
	cfg        OllamaConfig
	httpClient *http.Client
}

// NewOllamaClient builds a client; nil httpClient falls back to a default.
func NewOllamaClient(cfg OllamaConfig, httpClient *http.Client) *OllamaClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OllamaClient{cfg: cfg, httpClient: httpClient}
}

// Generate sends the prompt and returns the first completion's text.
func (c *OllamaClient) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	payload := chatCompletionRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("generation backend: %w", sentinel.ErrTimeout)
		}
		return "", fmt.Errorf("generation backend: %v: %w", err, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("generation backend: %s: %w", resp.Status, sentinel.ErrUnavailable)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("generation backend: malformed response: %w", sentinel.ErrUnavailable)
	}
	text := decoded.FirstMessage()
	if text == "" {
		return "", fmt.Errorf("generation backend: empty completion: %w", sentinel.ErrUnavailable)
	}
	return text, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c chatCompletionResponse) FirstMessage() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(c.Choices[0].Message.Content)
}
