package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("empty response from Gemini")

// Client sends single GenerateContent requests over a pool of API keys.
// A rate-limited key is rotated out for the next request; the failing
// request is not repeated.
type Client struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	baseURL    string
	logger     logger.Logger
}

// New creates a Client. At least one key is required.
func New(apiKeys []string, log logger.Logger) (*Client, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("gemini: no API keys configured")
	}
	return &Client{
		apiKeys: append([]string(nil), apiKeys...),
		logger:  log,
	}, nil
}

// Generate runs one request against model and returns the concatenated text parts.
func (c *Client) Generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	key, idx := c.key()

	clientCfg := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		if IsRateLimited(err) {
			c.logger.Warn(ctx, "Key %d rate limited, rotating for the next request", idx+1)
			c.rotateFrom(idx)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		if strings.TrimSpace(text.String()) != "" {
			return text.String(), nil
		}
	}

	return "", ErrEmptyResponse
}

// IsRateLimited reports whether err is a 429 / quota response.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (c *Client) key() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKeys[c.currentKey], c.currentKey
}

// rotateFrom advances past idx unless a concurrent request already did.
func (c *Client) rotateFrom(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}
