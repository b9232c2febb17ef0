package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/yash-srivastava19/docstudio/internal/settings"
	"github.com/yash-srivastava19/docstudio/internal/templates"
)

// ErrNotConfigured is returned before any network call when the endpoint,
// key or model is missing.
var ErrNotConfigured = errors.New("ai: endpoint, api key and model must be configured")

const suggestionTimeout = 60 * time.Second

// Assistant is what the editor needs from a chat-completion backend.
type Assistant interface {
	FetchSuggestion(ctx context.Context, text string) (string, error)
	StreamRewrite(ctx context.Context, text string, onChunk func(partial string)) (string, error)
}

// SettingsSource supplies the current API settings. It is consulted on every
// request so edits in the settings panel take effect immediately.
type SettingsSource interface {
	API() (settings.APISettings, bool)
}

type Client struct {
	src  SettingsSource
	http *http.Client
	log  *zap.Logger
}

func NewClient(src SettingsSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		src:  src,
		http: &http.Client{},
		log:  log.Named("ai"),
	}
}

// Available reports whether a request could be attempted right now.
func (c *Client) Available() bool {
	s, ok := c.src.API()
	return ok && s.Complete()
}

// HTTPError carries the status of a non-success response.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api request failed with status %d: %v", e.StatusCode, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// BaseURL turns a configured endpoint into the base that "/chat/completions"
// is appended to. Endpoints already ending in /chat/completions are accepted.
func BaseURL(endpoint string) string {
	base := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	base = strings.TrimSuffix(base, "/chat/completions")
	return strings.TrimRight(base, "/")
}

func (c *Client) openai(s settings.APISettings) *openai.Client {
	cfg := openai.DefaultConfig(s.APIKey)
	cfg.BaseURL = BaseURL(s.APIEndpoint)
	cfg.HTTPClient = c.http
	return openai.NewClientWithConfig(cfg)
}

func (c *Client) config(op string) (settings.APISettings, error) {
	s, ok := c.src.API()
	if !ok || !s.Complete() {
		c.log.Info("skipping request, api settings incomplete", zap.String("op", op))
		return settings.APISettings{}, ErrNotConfigured
	}
	return s, nil
}

func messages(p templates.Prompt) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: p.System},
		{Role: openai.ChatMessageRoleUser, Content: p.User},
	}
}

// FetchSuggestion asks for one short follow-up question about text.
func (c *Client) FetchSuggestion(ctx context.Context, text string) (string, error) {
	s, err := c.config("suggest")
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, suggestionTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       s.Model,
		Messages:    messages(templates.Get("suggest", text)),
		MaxTokens:   s.MaxTokensOr(settings.DefaultMaxTokens),
		Temperature: float32(s.TemperatureOr(settings.DefaultTemperature)),
	}
	resp, err := c.openai(s).CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Warn("suggestion request failed", zap.Error(err))
		return "", wrap(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// StreamRewrite streams an "organize" rewrite of text. onChunk receives the
// cumulative text after every delta. When ctx is cancelled the read loop stops
// and the partial text is returned together with ctx's error.
func (c *Client) StreamRewrite(ctx context.Context, text string, onChunk func(partial string)) (string, error) {
	s, err := c.config("organize")
	if err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model:    s.Model,
		Messages: messages(templates.Get("organize", text)),
		Stream:   true,
	}
	stream, err := c.openai(s).CreateChatCompletionStream(ctx, req)
	if err != nil {
		c.log.Warn("rewrite request failed", zap.Error(err))
		return "", wrap(err)
	}
	defer stream.Close()

	var acc strings.Builder
	for {
		if ctx.Err() != nil {
			return acc.String(), ctx.Err()
		}
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return acc.String(), nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return acc.String(), ctx.Err()
			}
			c.log.Warn("rewrite stream broke", zap.Error(err), zap.Int("received", acc.Len()))
			return acc.String(), wrap(err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		acc.WriteString(resp.Choices[0].Delta.Content)
		if onChunk != nil {
			onChunk(acc.String())
		}
	}
}

// TestConnection sends a tiny request with the given settings, which need not
// be saved yet.
func (c *Client) TestConnection(ctx context.Context, s settings.APISettings) error {
	if !s.Complete() {
		return ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, suggestionTimeout)
	defer cancel()

	_, err := c.openai(s).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Hello, this is a test message. Please respond with a brief confirmation."},
		},
		MaxTokens: 20,
	})
	return wrap(err)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &HTTPError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &HTTPError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return err
}
