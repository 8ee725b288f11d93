package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Sender delivers transactional mail.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// StibeeClient wraps interactions with the Stibee transactional mail API.
type StibeeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewStibeeClient constructs a new client.
func NewStibeeClient(baseURL, apiKey string) *StibeeClient {
	return &StibeeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Send posts one message to the transactional endpoint.
func (c *StibeeClient) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(map[string]string{
		"subscriber": to,
		"title":      subject,
		"content":    body,
	})
	if err != nil {
		return fmt.Errorf("encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/auto/mail", c.baseURL), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("AccessToken", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("stibee returned status %d", resp.StatusCode)
	}
	return nil
}
