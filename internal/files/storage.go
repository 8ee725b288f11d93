package files

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Storage is the object store port. PresignUpload returns a URL the browser
// PUTs the object to directly; the backend never proxies file bytes.
type Storage interface {
	PresignUpload(ctx context.Context, key string) (string, error)
	ObjectURL(key string) string
	Delete(ctx context.Context, key string) error
}

// GatewayClient talks to the storage gateway sidecar over HTTP.
type GatewayClient struct {
	baseURL    string
	publicURL  string
	httpClient *http.Client
}

// NewGatewayClient constructs a new client. publicURL is the CDN or bucket
// host objects are served from after upload.
func NewGatewayClient(baseURL, publicURL string) *GatewayClient {
	return &GatewayClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		publicURL: strings.TrimRight(publicURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Ping checks if the storage gateway is available.
func (c *GatewayClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("storage gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// PresignUpload asks the gateway for a signed PUT URL for the key.
func (c *GatewayClient) PresignUpload(ctx context.Context, key string) (string, error) {
	endpoint := fmt.Sprintf("%s/presign?key=%s", c.baseURL, url.QueryEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("presign failed with status %d", resp.StatusCode)
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode presign response: %w", err)
	}
	return out.URL, nil
}

// ObjectURL returns the public URL an uploaded key is served from.
func (c *GatewayClient) ObjectURL(key string) string {
	return c.publicURL + "/" + key
}

// Delete removes the object behind the key. Deleting a missing object is not
// an error.
func (c *GatewayClient) Delete(ctx context.Context, key string) error {
	endpoint := fmt.Sprintf("%s/objects?key=%s", c.baseURL, url.QueryEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete failed with status %d", resp.StatusCode)
	}
	return nil
}
