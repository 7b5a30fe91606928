// Package tutor is a thin wrapper over the generative-language API: it sends
// a child-friendly prompt for a topic and parses the model's JSON reply.
// Nothing here feeds scoring or persistence; failures surface as inline
// messages only.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gamified-learning-service/internal/httpx"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
)

// Explanation is the structured tutoring reply rendered to the user.
type Explanation struct {
	Explanation string   `json:"explanation"`
	KeyPoints   []string `json:"keyPoints"`
	Tips        string   `json:"tips"`
}

// Client calls the text-generation endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient builds a tutoring client. baseURL and model may be empty to use
// the production defaults; tests point baseURL at an httptest server.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    httpx.NewClient(timeout),
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Explain asks the model for a tutoring explanation of topic in language.
func (c *Client) Explain(ctx context.Context, topic, language string) (Explanation, error) {
	if c.apiKey == "" {
		return Explanation{}, fmt.Errorf("tutor api key not configured")
	}
	if language == "" {
		language = "english"
	}

	prompt := fmt.Sprintf(`You are a friendly AI tutor. Explain the concept of %s in %s. Focus on:
1. A clear definition
2. Key points to understand
3. Tips for teaching this concept

Respond in JSON format with these exact keys:
{
  "explanation": "string",
  "keyPoints": ["string"],
  "tips": "string"
}`, topic, language)

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: 0.7, MaxOutputTokens: 1024},
	})
	if err != nil {
		return Explanation{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	resp, err := httpx.Do(ctx, c.http, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return Explanation{}, fmt.Errorf("tutor request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Explanation{}, fmt.Errorf("read tutor response: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Explanation{}, fmt.Errorf("decode tutor response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return Explanation{}, fmt.Errorf("tutor response has no candidates")
	}

	text := stripCodeFence(decoded.Candidates[0].Content.Parts[0].Text)
	var explanation Explanation
	if err := json.Unmarshal([]byte(text), &explanation); err != nil {
		return Explanation{}, fmt.Errorf("tutor reply is not valid JSON: %w", err)
	}
	return explanation, nil
}

// stripCodeFence removes a markdown ```json fence the model sometimes wraps
// its reply in.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
