package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"surveytranslator/types"
)

// BatchClient is a thin HTTP client for the translator API.
type BatchClient struct {
	baseURL string
	client  *http.Client
}

// NewBatchClient creates a client for the given server base URL. The
// timeout covers a full auto-continue invocation, which can run up to
// the server-side aggregate budget.
func NewBatchClient(baseURL string) *BatchClient {
	return &BatchClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 35 * time.Second,
		},
	}
}

// GetProgress fetches the current progress snapshot.
func (c *BatchClient) GetProgress() (*types.ProgressSnapshot, error) {
	resp, err := c.client.Get(c.baseURL + "/api/progress")
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var snap types.ProgressSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &snap, nil
}

// AutoContinue asks the server to drain the live batch chunk by chunk.
func (c *BatchClient) AutoContinue() error {
	return c.post("/api/batch/auto-continue")
}

// Continue advances the live batch by a single chunk.
func (c *BatchClient) Continue() error {
	return c.post("/api/batch/continue")
}

func (c *BatchClient) post(path string) error {
	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
