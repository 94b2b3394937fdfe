package vision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"instatory/internal/imaging"
	"instatory/internal/services"
)

const completeRecord = `{
    "name": "Carved Wooden Bowl",
    "description": ["Hand-carved hardwood bowl", "Polished finish"],
    "category": "Bowls",
    "material": "Hardwood",
    "color": "Brown",
    "dimensions": "10x10x4 in",
    "origin_source": "Ghana",
    "import_cost": 12.5,
    "retail_price": 38,
    "key_tags": ["bowl", "wood", "handmade"]
}`

func completionResponse(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{"content": content},
			},
		},
	}
}

func testImage() imaging.EncodedImage {
	return imaging.EncodedImage{Base64: "aGVsbG8=", MIME: "image/jpeg"}
}

func TestAnalyzeProductParsesRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string          `json:"role"`
				Content json.RawMessage `json:"content"`
			} `json:"messages"`
			MaxTokens int `json:"max_tokens"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Model != "demo-model" || payload.MaxTokens != 700 {
			t.Fatalf("unexpected request envelope: %+v", payload)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" {
			t.Fatalf("unexpected messages: %+v", payload.Messages)
		}
		user := string(payload.Messages[1].Content)
		if !strings.Contains(user, "data:image/jpeg;base64,aGVsbG8=") {
			t.Fatalf("image data URL missing from user content: %s", user)
		}
		if !strings.Contains(user, `"detail":"low"`) {
			t.Fatalf("detail hint missing from user content: %s", user)
		}
		if !strings.Contains(user, `\"Home Decor\"`) {
			t.Fatalf("category labels missing from instruction: %s", user)
		}
		if err := json.NewEncoder(w).Encode(completionResponse(completeRecord)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	draft, err := client.AnalyzeProduct(context.Background(), testImage())
	if err != nil {
		t.Fatalf("AnalyzeProduct failed: %v", err)
	}
	if draft.Name != "Carved Wooden Bowl" {
		t.Fatalf("unexpected draft: %+v", draft)
	}
	if err := draft.Validate(); err != nil {
		t.Fatalf("expected complete draft: %v", err)
	}
}

func TestAnalyzeProductRecoversFencedSingleQuotedPayload(t *testing.T) {
	fenced := "```json\n" + strings.ReplaceAll(completeRecord, `"`, `'`) + "\n```"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completionResponse(fenced))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	draft, err := client.AnalyzeProduct(context.Background(), testImage())
	if err != nil {
		t.Fatalf("AnalyzeProduct failed: %v", err)
	}
	if draft.Category != "Bowls" {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestAnalyzeProductPreservesApostrophes(t *testing.T) {
	record := strings.Replace(completeRecord, "Hand-carved hardwood bowl", "Artisan's hand-carved bowl", 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completionResponse(record))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	draft, err := client.AnalyzeProduct(context.Background(), testImage())
	if err != nil {
		t.Fatalf("AnalyzeProduct failed: %v", err)
	}
	if !strings.Contains(draft.Description.Join("\n"), "Artisan's") {
		t.Fatalf("apostrophe corrupted: %q", draft.Description.Join("\n"))
	}
}

func TestAnalyzeProductRetriesUntilCeiling(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 5 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(completionResponse(completeRecord))
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "test", BaseURL: server.URL, Model: "demo"},
		WithSleeper(func(time.Duration) {}),
	)
	if _, err := client.AnalyzeProduct(context.Background(), testImage()); err != nil {
		t.Fatalf("expected success on attempt 6, got %v", err)
	}
	if got := calls.Load(); got != 6 {
		t.Fatalf("expected 6 attempts, got %d", got)
	}
}

func TestAnalyzeProductFailsAfterRetryExhaustion(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "test", BaseURL: server.URL, Model: "demo"},
		WithSleeper(func(time.Duration) {}),
	)
	if _, err := client.AnalyzeProduct(context.Background(), testImage()); err == nil {
		t.Fatal("expected extraction failure after exhausting retries")
	}
	if got := calls.Load(); got != 6 {
		t.Fatalf("expected 6 attempts, got %d", got)
	}
}

func TestAnalyzeProductDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "test", BaseURL: server.URL, Model: "demo"},
		WithSleeper(func(time.Duration) {}),
	)
	if _, err := client.AnalyzeProduct(context.Background(), testImage()); err == nil {
		t.Fatal("expected failure for 400 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected single attempt, got %d", got)
	}
}

func TestAnalyzeProductRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{Model: "demo"})
	_, err := client.AnalyzeProduct(context.Background(), testImage())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestAnalyzeProductReportsUnparseableResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completionResponse("I cannot describe this image."))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	_, err := client.AnalyzeProduct(context.Background(), testImage())
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot describe") {
		t.Fatalf("expected raw snippet in error, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completionResponse(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestBackoffDelayStaysUnderCap(t *testing.T) {
	client := NewClient(
		Config{APIKey: "test", Model: "demo", RetryBase: time.Second, RetryMax: 40 * time.Second},
		WithRandFloat(func() float64 { return 1.0 }),
	)
	var prev time.Duration
	for attempt := 1; attempt <= 10; attempt++ {
		delay := client.backoffDelay(attempt)
		if delay > 40*time.Second {
			t.Fatalf("attempt %d delay %s exceeds cap", attempt, delay)
		}
		if delay < prev && delay != 40*time.Second {
			t.Fatalf("attempt %d delay %s shrank unexpectedly", attempt, delay)
		}
		prev = delay
	}
	if client.backoffDelay(1) != time.Second {
		t.Fatalf("attempt 1 ceiling should equal base, got %s", client.backoffDelay(1))
	}
}

func TestBackoffDelayIsRandomized(t *testing.T) {
	client := NewClient(
		Config{APIKey: "test", Model: "demo", RetryBase: 4 * time.Second},
		WithRandFloat(func() float64 { return 0.5 }),
	)
	if got := client.backoffDelay(1); got != 2*time.Second {
		t.Fatalf("expected jittered half of ceiling, got %s", got)
	}
}
