package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/ResumeAPI/internal/llm"
	"google.golang.org/genai"
)

type capturedRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type capturedCall struct {
	path   string
	apiKey string
	body   capturedRequest
}

func fakeGemini(t *testing.T, status int, body string, captured *capturedCall) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if captured != nil {
			captured.path = r.URL.Path
			captured.apiKey = r.Header.Get("x-goog-api-key")
			raw, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(raw, &captured.body); err != nil {
				t.Errorf("request body is not json: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(t *testing.T, srv *httptest.Server, temperature float64) llm.Provider {
	t.Helper()
	provider, err := NewGeminiClient(context.Background(), llm.Options{
		APIKey:      "test-key",
		Model:       "test-model",
		BaseURL:     srv.URL + "/",
		Temperature: temperature,
	}, srv.Client())
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}
	return provider
}

const replyBody = `{
  "candidates": [{"content": {"role": "model", "parts": [{"text": "He works with Go."}]}, "finishReason": "STOP"}],
  "usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15}
}`

func TestGenerate_SendsPromptAsSingleUserTurn(t *testing.T) {
	var captured capturedCall
	srv := fakeGemini(t, http.StatusOK, replyBody, &captured)
	provider := newTestProvider(t, srv, 0.5)

	got, err := provider.Generate(context.Background(), "the full prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "He works with Go." {
		t.Errorf("Generate = %q", got)
	}
	if captured.apiKey != "test-key" {
		t.Errorf("x-goog-api-key = %q", captured.apiKey)
	}
	if !strings.Contains(captured.path, "test-model") {
		t.Errorf("path %s does not name the model", captured.path)
	}
	if captured.body.GenerationConfig.Temperature != 0.5 {
		t.Errorf("temperature = %v", captured.body.GenerationConfig.Temperature)
	}
	contents := captured.body.Contents
	if len(contents) != 1 || len(contents[0].Parts) != 1 || contents[0].Parts[0].Text != "the full prompt" {
		t.Errorf("contents = %+v, want one text part", contents)
	}
}

func TestGenerate_EmptyCandidate(t *testing.T) {
	srv := fakeGemini(t, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[]},"finishReason":"SAFETY"}]}`, nil)
	provider := newTestProvider(t, srv, 0.5)

	_, err := provider.Generate(context.Background(), "prompt")
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Errorf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	srv := fakeGemini(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"backend failure","status":"INTERNAL"}}`, nil)
	provider := newTestProvider(t, srv, 0.5)

	_, err := provider.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want a wrapped genai.APIError", err)
	}
	if apiErr.Code != http.StatusInternalServerError {
		t.Errorf("code = %d", apiErr.Code)
	}
}
