package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okResponse(content string) GenerateResponse {
	return GenerateResponse{
		ID:      "gen-1",
		Choices: []Choice{{Message: Message{Role: "assistant", Content: content}}},
	}
}

func TestGenerateSuccess(t *testing.T) {
	var gotAuth string
	var gotReq GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(okResponse("The data trends upward."))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("sk-test", 5*time.Second, srv.URL)
	resp, err := c.Generate(context.Background(), GenerateRequest{
		Model:    "openai/gpt-4o-mini",
		Messages: []Message{{Role: "user", Content: "summarize"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text() != "The data trends upward." {
		t.Fatalf("unexpected text: %q", resp.Text())
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("expected bearer credential, got %q", gotAuth)
	}
	if gotReq.Model != "openai/gpt-4o-mini" {
		t.Fatalf("model not forwarded: %q", gotReq.Model)
	}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	c := NewClient("", time.Second)
	_, err := c.Generate(context.Background(), GenerateRequest{Model: "m"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGenerateAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "invalid key"}})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("sk-bad", time.Second, srv.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{Model: "m"})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "invalid key" {
		t.Fatalf("provider message lost: %v", authErr)
	}
}

func TestGenerateDoesNotRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "slow down"}})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("sk", time.Second, srv.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{Model: "m"})
	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("a failed request must not be retried, saw %d calls", calls)
	}
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("sk", time.Second, srv.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{Model: "m"})
	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
}

func TestGenerateEmptyModel(t *testing.T) {
	c := NewClient("sk", time.Second)
	if _, err := c.Generate(context.Background(), GenerateRequest{}); err == nil {
		t.Fatalf("expected an error for an empty model")
	}
}
