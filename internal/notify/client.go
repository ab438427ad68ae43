// Package notify wraps the LINE Messaging API push endpoint. Each call is
// one synchronous POST; there is no retry, backoff, or batching.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.line.me"
	pushPath       = "/v2/bot/message/push"
)

// ErrNoToken is returned when the channel access token is not configured.
// The token is checked lazily at first use, not at startup.
var ErrNoToken = errors.New("LINE channel access token is not set")

// APIError is a structured error response from the LINE API; its status and
// body are propagated to the caller as-is.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("line api error %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	httpClient         *http.Client
	baseURL            string
	channelAccessToken string
}

// NewClient builds a LINE client. baseURL may be empty to use the real API;
// tests point it at a local server.
func NewClient(baseURL, channelAccessToken string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:            baseURL,
		channelAccessToken: channelAccessToken,
	}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// PushText sends one text message to one recipient and returns the gateway's
// response body. A non-2xx response becomes an *APIError carrying the
// gateway's status code and body; anything else is a transport error.
func (c *Client) PushText(ctx context.Context, to, text string) (string, error) {
	if c.channelAccessToken == "" {
		return "", ErrNoToken
	}

	body, err := json.Marshal(pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pushPath, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.channelAccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return string(respBody), nil
}
