package breakdown

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dayflow/internal/prompt"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	requestTimeout = 30 * time.Second

	minSteps = 2
	maxSteps = 6
)

// APIProvider calls an OpenAI-compatible chat completions endpoint to
// break a task into subtasks. A failed or unusable response surfaces as
// a *ProviderError; the caller decides whether to fall back.
type APIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewAPIProvider creates a provider for the given endpoint. Empty
// baseURL or model select the OpenAI defaults.
func NewAPIProvider(apiKey, baseURL, model string) *APIProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &APIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (p *APIProvider) Breakdown(ctx context.Context, title, extra string) ([]string, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System()},
			{Role: "user", Content: prompt.ForTask(title, extra)},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ProviderError{Reason: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, &ProviderError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Reason: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, &ProviderError{Reason: fmt.Sprintf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)}
		}
		return nil, &ProviderError{Reason: fmt.Sprintf("API returned status %d", resp.StatusCode)}
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, &ProviderError{Reason: "decode response", Err: err}
	}
	if len(chat.Choices) == 0 {
		return nil, &ProviderError{Reason: "response has no choices"}
	}

	steps := parseSteps(chat.Choices[0].Message.Content)
	if len(steps) < minSteps {
		return nil, &ProviderError{Reason: "response has too few usable steps"}
	}
	return steps, nil
}

// parseSteps extracts one step per line, stripping list bullets and
// numbering the model tends to add despite instructions.
func parseSteps(content string) []string {
	var steps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = trimNumbering(line)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		steps = append(steps, line)
		if len(steps) == maxSteps {
			break
		}
	}
	return steps
}

func trimNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return line
	}
	if line[i] == '.' || line[i] == ')' {
		return line[i+1:]
	}
	return line
}
