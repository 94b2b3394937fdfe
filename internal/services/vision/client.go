package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"instatory/internal/catalog"
	"instatory/internal/config"
	"instatory/internal/imaging"
	"instatory/internal/services"
)

const (
	defaultHTTPTimeout   = 30 * time.Second
	defaultRetryBase     = 1 * time.Second
	defaultRetryMax      = 40 * time.Second
	defaultRetryAttempts = 6
	defaultMaxTokens     = 700
	defaultDetail        = "low"
)

// Config captures the runtime settings required to talk to the vision model.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	MaxAttempts    int
	RetryBase      time.Duration
	RetryMax       time.Duration
	MaxTokens      int
	Detail         string
}

// FromConfig maps application configuration onto client settings.
func FromConfig(cfg *config.Config) Config {
	if cfg == nil {
		return Config{}
	}
	return Config{
		APIKey:         cfg.Vision.APIKey,
		BaseURL:        cfg.Vision.BaseURL,
		Model:          cfg.Vision.Model,
		TimeoutSeconds: cfg.Vision.TimeoutSeconds,
		MaxAttempts:    cfg.Vision.MaxAttempts,
		RetryBase:      time.Duration(cfg.Vision.RetryInitialSeconds) * time.Second,
		RetryMax:       time.Duration(cfg.Vision.RetryMaxSeconds) * time.Second,
		MaxTokens:      cfg.Vision.MaxTokens,
		Detail:         cfg.Vision.Detail,
	}
}

// Client wraps an OpenAI-compatible chat-completion endpoint for image
// feature extraction.
type Client struct {
	cfg        Config
	httpClient *http.Client

	sleeper   func(time.Duration)
	randFloat func() float64
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMaxAttempts overrides the retry ceiling.
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.cfg.MaxAttempts = attempts
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// WithRandFloat overrides the jitter source (useful for tests).
func WithRandFloat(fn func() float64) Option {
	return func(c *Client) {
		if fn != nil {
			c.randFloat = fn
		}
	}
}

// NewClient constructs a vision client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultRetryAttempts
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = defaultRetryBase
	}
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = defaultRetryMax
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if strings.TrimSpace(cfg.Detail) == "" {
		cfg.Detail = defaultDetail
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
			MaxAttempts:    cfg.MaxAttempts,
			RetryBase:      cfg.RetryBase,
			RetryMax:       cfg.RetryMax,
			MaxTokens:      cfg.MaxTokens,
			Detail:         cfg.Detail,
		},
		httpClient: &http.Client{Timeout: timeout},
		randFloat:  rand.Float64,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "https://api.openai.com/v1/chat/completions"
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// AnalyzeProduct sends the encoded image to the model and parses the
// response into a product draft. Any network or parse failure is returned as
// an error; nothing is retried beyond the configured ceiling.
func (c *Client) AnalyzeProduct(ctx context.Context, img imaging.EncodedImage) (*catalog.Draft, error) {
	if img.Base64 == "" {
		return nil, services.Wrap(services.ErrValidation, "vision", "analyze", "encoded image required", nil)
	}
	if c.cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "vision", "analyze", "api key required (set OPENAI_API_KEY)", nil)
	}

	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: InstructionPrompt(catalog.Categories())},
				{Type: "image_url", ImageURL: &imageURL{URL: img.DataURL(), Detail: c.cfg.Detail}},
			}},
		},
		MaxTokens: c.cfg.MaxTokens,
	}

	content, err := c.completionContentWithRetry(ctx, payload, "vision analyze")
	if err != nil {
		return nil, err
	}

	record, err := extractJSONPayload(content)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, "vision", "parse response", err.Error(), nil)
	}
	draft, err := catalog.DecodeDraft(record)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, "vision", "parse response",
			fmt.Sprintf("%v (payload snippet: %s)", err, summarizePayloadSnippet(content)), nil)
	}
	return draft, nil
}

// HealthCheck issues a fast ping to verify the API key and model are usable.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return services.Wrap(services.ErrConfiguration, "vision", "health", "api key required", nil)
	}
	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You must respond with JSON only."},
			{Role: "user", Content: "Respond with {\"ok\":true}"},
		},
		MaxTokens: 16,
	}
	content, err := c.completionContentWithRetry(ctx, payload, "vision health")
	if err != nil {
		return err
	}
	record, err := extractJSONPayload(content)
	if err != nil {
		return fmt.Errorf("vision health: parse payload: %w", err)
	}
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(record, &parsed); err != nil {
		return fmt.Errorf("vision health: parse payload: %w", err)
	}
	if !parsed.OK {
		return errors.New("vision health: unexpected response")
	}
	return nil
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role string `json:"role"`
	// Content is a plain string for text-only messages or a []contentPart
	// when the message mixes text and an image.
	Content any `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
		// Some providers return the streaming schema (delta) even when
		// stream=false, so tolerate it as a fallback.
		Delta chatCompletionMessage `json:"delta"`
		// Legacy "text" field (completion-style responses).
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type chatCompletionMessage struct {
	Content string `json:"content"`
	Refusal string `json:"refusal"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("vision request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

type emptyContentError struct {
	Op      string
	Snippet string
}

func (e *emptyContentError) Error() string {
	return fmt.Sprintf("%s: empty content (response_snippet=%s)", e.Op, e.Snippet)
}

func (c *Client) completionContentWithRetry(ctx context.Context, payload chatCompletionRequest, op string) (string, error) {
	attempts := c.cfg.MaxAttempts
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		completion, body, err := c.sendChatRequestOnce(ctx, payload)
		if err == nil {
			content := extractCompletionContent(completion)
			if content == "" {
				err = &emptyContentError{Op: op, Snippet: summarizePayloadSnippet(string(body))}
			} else {
				return content, nil
			}
		}

		delay, retry := c.retryDelay(ctx, err, attempt, attempts)
		if !retry {
			return "", err
		}
		if err := c.sleep(ctx, delay); err != nil {
			return "", err
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("unknown retry failure")
	}
	return "", fmt.Errorf("%s: failed after %d attempts: %w", op, attempts, lastErr)
}

func extractCompletionContent(completion chatCompletionResponse) string {
	for _, choice := range completion.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return content
		}
		if content := strings.TrimSpace(choice.Delta.Content); content != "" {
			return content
		}
		if content := strings.TrimSpace(choice.Text); content != "" {
			return content
		}
	}
	return ""
}

func (c *Client) sendChatRequestOnce(ctx context.Context, payload chatCompletionRequest) (chatCompletionResponse, []byte, error) {
	var completion chatCompletionResponse
	encoded, err := json.Marshal(payload)
	if err != nil {
		return completion, nil, fmt.Errorf("vision request: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return completion, nil, fmt.Errorf("vision request: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return completion, nil, fmt.Errorf("vision request: http error (timeout=%s): %w", c.timeoutDuration(), err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return completion, nil, fmt.Errorf("vision request: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return completion, body, &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: retryAfter,
		}
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return completion, body, fmt.Errorf("vision request: decode response: %w", err)
	}
	if completion.Error != nil {
		return completion, body, fmt.Errorf("vision request: api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	return completion, body, nil
}

func (c *Client) timeoutDuration() time.Duration {
	if c == nil || c.httpClient == nil || c.httpClient.Timeout <= 0 {
		return defaultHTTPTimeout
	}
	return c.httpClient.Timeout
}

func (c *Client) retryDelay(ctx context.Context, err error, attempt, maxAttempts int) (time.Duration, bool) {
	if attempt >= maxAttempts {
		return 0, false
	}
	if err == nil || ctx == nil || ctx.Err() != nil {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= http.StatusInternalServerError:
			if statusErr.RetryAfter > 0 {
				return c.capDelay(statusErr.RetryAfter), true
			}
			return c.backoffDelay(attempt), true
		default:
			return 0, false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return c.backoffDelay(attempt), true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return c.backoffDelay(attempt), true
	}

	// Empty-content responses count as transient model failures.
	var emptyErr *emptyContentError
	if errors.As(err, &emptyErr) {
		return c.backoffDelay(attempt), true
	}

	return 0, false
}

// backoffDelay picks a random delay in [0, min(max, base*2^(attempt-1))],
// matching randomized exponential backoff.
func (c *Client) backoffDelay(attempt int) time.Duration {
	base := c.cfg.RetryBase
	if base <= 0 {
		return 0
	}
	ceiling := base
	for i := 1; i < attempt; i++ {
		if ceiling > c.cfg.RetryMax/2 {
			ceiling = c.cfg.RetryMax
			break
		}
		ceiling *= 2
	}
	ceiling = c.capDelay(ceiling)
	jitter := c.randFloat
	if jitter == nil {
		jitter = rand.Float64
	}
	return time.Duration(jitter() * float64(ceiling))
}

func (c *Client) capDelay(delay time.Duration) time.Duration {
	if delay < 0 {
		return 0
	}
	if c.cfg.RetryMax > 0 && delay > c.cfg.RetryMax {
		return c.cfg.RetryMax
	}
	return delay
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if ctx == nil {
		return errors.New("vision retry: nil context")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if when, err := http.ParseTime(value); err == nil {
		delay := time.Until(when)
		if delay < 0 {
			return 0, false
		}
		return delay, true
	}
	return 0, false
}
