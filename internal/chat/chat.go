// Package chat is a thin client for OpenAI-compatible chat completion
// endpoints. The artifact summary feature talks to Groq through it.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client produces one completion for a conversation.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

const (
	defaultEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	defaultModel    = "llama-3.3-70b-versatile"
)

// GroqClient calls the Groq chat completion API.
type GroqClient struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

type GroqOption func(*GroqClient)

func WithEndpoint(endpoint string) GroqOption {
	return func(c *GroqClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

func WithModel(model string) GroqOption {
	return func(c *GroqClient) {
		if model != "" {
			c.model = model
		}
	}
}

func WithHTTPClient(h *http.Client) GroqOption {
	return func(c *GroqClient) {
		if h != nil {
			c.http = h
		}
	}
}

func NewGroqClient(apiKey string, opts ...GroqOption) *GroqClient {
	c := &GroqClient{
		endpoint: defaultEndpoint,
		model:    defaultModel,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *GroqClient) Generate(ctx context.Context, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("missing API key")
	}
	payload := map[string]any{
		"model":    c.model,
		"messages": messages,
	}
	buf, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat completion error: %s", resp.Status)
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return out.Choices[0].Message.Content, nil
}
