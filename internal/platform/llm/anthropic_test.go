package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCompleteSendsExpectedRequest(t *testing.T) {
	var got messagesRequest
	var gotVersion, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "hi "}, {"type": "text", "text": "there"}},
		})
	}))
	defer srv.Close()

	client := NewAnthropic("key-123", "claude-3-7-sonnet-20250219", time.Second)
	client.BaseURL = srv.URL

	reply, err := client.Complete(context.Background(), "hr_chat_u1", "system prompt", "hello")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply != "hi there" {
		t.Fatalf("reply %q", reply)
	}
	if gotKey != "key-123" || gotVersion == "" {
		t.Fatalf("auth headers missing: key=%q version=%q", gotKey, gotVersion)
	}
	if got.System != "system prompt" || got.Model != "claude-3-7-sonnet-20250219" {
		t.Fatalf("request body: %+v", got)
	}
	if got.Metadata == nil || got.Metadata.UserID != "hr_chat_u1" {
		t.Fatalf("session metadata: %+v", got.Metadata)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hello" {
		t.Fatalf("messages: %+v", got.Messages)
	}
}

func TestCompleteFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "provider error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{"type": "rate_limit_error", "message": "quota"},
				})
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "no text content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{}})
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			client := NewAnthropic("key", "model", time.Second)
			client.BaseURL = srv.URL
			if _, err := client.Complete(context.Background(), "s", "sys", "msg"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewAnthropic("key", "model", 20*time.Millisecond)
	client.BaseURL = srv.URL
	if _, err := client.Complete(context.Background(), "s", "sys", "msg"); err == nil {
		t.Fatal("expected timeout error")
	}
}
