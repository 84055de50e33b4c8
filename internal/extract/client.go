package extract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Compile-time interface check
var _ Completer = (*Client)(nil)

// CompletionService defines the interface for making chat completion calls.
// This abstraction enables testing without calling the real endpoint.
type CompletionService interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client performs one synchronous, non-streaming round trip per request
// against an OpenAI-compatible chat completion endpoint.
type Client struct {
	chat    CompletionService
	model   openai.ChatModel
	timeout time.Duration
}

// NewClient creates a completion client. baseURL may be empty to use the
// default OpenAI endpoint.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &Client{
		chat:    client.Chat.Completions,
		model:   openai.ChatModel(model),
		timeout: timeout,
	}
}

// ModelName returns the configured completion model name.
func (c *Client) ModelName() string {
	return string(c.model)
}

// Complete sends the system prompt and the raw user message and returns the
// completion text. Failures map to the typed errors in errors.go.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		}),
		Model: openai.F(c.model),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", &TransportError{Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrUpstreamFormat
	}

	return resp.Choices[0].Message.Content, nil
}

// ParseModelJSON recovers a JSON object from completion text, tolerating a
// surrounding triple-fence code block and a leading "json" marker. A parse
// failure is not an error: the second return is false and the caller
// reports the raw text for diagnostics, so "nothing extracted" stays
// distinguishable from a transport failure.
func ParseModelJSON(content string) (map[string]any, bool) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
		content = strings.TrimSpace(content)
	}
	if strings.HasPrefix(content, "json") {
		content = strings.TrimSpace(content[4:])
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, false
	}
	return fields, true
}
