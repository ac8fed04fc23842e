package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sellerboard/sellerboard-backend/pkg/config"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
)

// Summarizer turns an analytics projection prompt into narrative text. The
// engine never depends on its output to function.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	httpc   *http.Client
}

// NewClient builds a chat-completions client from the insights config.
func NewClient(cfg config.InsightsConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("insights api key required")
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		httpc:   &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = "You are an analyst for a Turkish marketplace seller. " +
	"Summarize the store's profitability data in a few short paragraphs: " +
	"call out the strongest categories, loss-making products, and whether " +
	"campaigns are paying for themselves. Plain language, no markdown."

// Summarize sends one chat completion request and returns the narrative.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode summary request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build summary request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call summarizer")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read summarizer response")
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode summarizer response")
	}
	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("summarizer returned %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", pkgerrors.New(pkgerrors.CodeDependency, msg)
	}
	if len(parsed.Choices) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "summarizer returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
