package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultModel is the free-tier model used when neither the request nor the
// server configuration names one.
const DefaultModel = "meta-llama/llama-3.1-8b-instruct:free"

var (
	// ErrNoAPIKey means no gateway credential was available anywhere in the
	// fallback chain. No network call is attempted in that case.
	ErrNoAPIKey = errors.New("completion gateway API key not configured")

	// ErrUpstream covers transport failures and non-success responses from
	// the gateway. The provider's error body is logged, never surfaced.
	ErrUpstream = errors.New("completion gateway request failed")
)

// Message is one role-tagged entry of an outbound completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client calls the OpenRouter chat completions API. One attempt per turn: no
// retries, no backoff, only the client-level timeout.
type Client struct {
	http         *resty.Client
	defaultKey   string
	defaultModel string
}

// NewClient creates a gateway client with server-side fallback credentials.
// Either default may be empty; resolution happens per call.
func NewClient(baseURL, defaultKey, defaultModel string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(60 * time.Second)
	client.SetHeader("HTTP-Referer", "https://finflow-app.com")
	client.SetHeader("X-Title", "FinFlow")

	return &Client{
		http:         client,
		defaultKey:   defaultKey,
		defaultModel: defaultModel,
	}
}

type chatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Complete issues one completion request and returns the first choice's text.
// apiKey and model are caller overrides; empty values fall back to the
// client's configured defaults, and for the model finally to DefaultModel.
func (c *Client) Complete(ctx context.Context, apiKey, model string, messages []Message) (string, error) {
	key := apiKey
	if key == "" {
		key = c.defaultKey
	}
	if key == "" {
		return "", ErrNoAPIKey
	}

	m := model
	if m == "" {
		m = c.defaultModel
	}
	if m == "" {
		m = DefaultModel
	}

	var result chatCompletionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(key).
		SetBody(chatCompletionRequest{Model: m, Messages: messages}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		log.Printf("ERROR [llm] request to completion gateway failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.IsError() {
		log.Printf("ERROR [llm] completion gateway returned %d: %s", resp.StatusCode(), resp.String())
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}

	if len(result.Choices) == 0 {
		log.Printf("ERROR [llm] completion gateway returned no choices: %s", resp.String())
		return "", fmt.Errorf("%w: empty response", ErrUpstream)
	}

	return result.Choices[0].Message.Content, nil
}
