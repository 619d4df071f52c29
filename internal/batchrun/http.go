package batchrun

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/arena/internal/domain/types"
	"github.com/okian/arena/pkg/logger"
)

const maxErrorBody = 4096

// httpClient wraps http.Client with a timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.client.Do(req)
}

func (c *httpClient) post(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// checkServiceHealth verifies the server is up before submitting work.
func checkServiceHealth(ctx context.Context, c *httpClient, baseURL string) error {
	resp, err := c.get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("connect to service: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	// healthz serves prometheus text, any 200 is healthy
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// runRemote asks the server to play the batch.
func runRemote(ctx context.Context, cfg *Config) (types.BatchReport, error) {
	client := newHTTPClient(cfg.Timeout)
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	if err := checkServiceHealth(ctx, client, baseURL); err != nil {
		return types.BatchReport{}, err
	}
	logger.Get().Info(ctx, "service is healthy", logger.String("baseURL", baseURL))

	resp, err := client.post(ctx, baseURL+"/batch", types.BatchRequest{Games: cfg.Games, Seed: cfg.Seed})
	if err != nil {
		return types.BatchReport{}, fmt.Errorf("submit batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return types.BatchReport{}, fmt.Errorf("batch returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var report types.BatchReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return types.BatchReport{}, fmt.Errorf("decode batch report: %w", err)
	}
	return report, nil
}
