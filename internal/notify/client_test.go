package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPushText(t *testing.T) {
	var got struct {
		To       string `json:"to"`
		Messages []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/bot/message/push" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token-123" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"sentMessages":[{"id":"1"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123")
	body, err := client.PushText(context.Background(), "U123", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != `{"sentMessages":[{"id":"1"}]}` {
		t.Fatalf("expected gateway body returned, got %q", body)
	}
	if got.To != "U123" {
		t.Fatalf("expected recipient U123, got %q", got.To)
	}
	if len(got.Messages) != 1 || got.Messages[0].Type != "text" || got.Messages[0].Text != "hello" {
		t.Fatalf("expected exactly one text message, got %+v", got.Messages)
	}
}

func TestPushText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token")
	_, err := client.PushText(context.Background(), "U123", "hello")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Body != `{"message":"invalid token"}` {
		t.Fatalf("expected gateway body preserved, got %q", apiErr.Body)
	}
}

func TestPushText_NoToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.PushText(context.Background(), "U123", "hello")
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if called {
		t.Fatalf("no request must be made without a token")
	}
}

func TestPushText_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable

	client := NewClient(server.URL, "token-123")
	_, err := client.PushText(context.Background(), "U123", "hello")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure must not look like a gateway response")
	}
}
