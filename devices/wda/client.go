package wda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

type WdaClient struct {
	baseURL    string
	httpClient *http.Client
	sessionId  string
	mu         sync.Mutex
}

func NewWdaClient(hostPort string) *WdaClient {
	baseURL := hostPort
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &WdaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// BaseURL returns the normalized agent address.
func (c *WdaClient) BaseURL() string {
	return c.baseURL
}

func (c *WdaClient) GetEndpoint(ctx context.Context, endpoint string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *WdaClient) PostEndpoint(ctx context.Context, endpoint string, data interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, endpoint, data)
}

func (c *WdaClient) DeleteEndpoint(ctx context.Context, endpoint string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

func (c *WdaClient) do(ctx context.Context, method, endpoint string, data interface{}) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data: %v", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to %s endpoint %s: %v", strings.ToLower(method), endpoint, err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %v", err)
	}

	if resp.StatusCode >= 400 {
		return result, fmt.Errorf("endpoint %s returned status %d", endpoint, resp.StatusCode)
	}

	return result, nil
}

// GetStatus queries the agent status endpoint.
func (c *WdaClient) GetStatus(ctx context.Context) (map[string]interface{}, error) {
	return c.GetEndpoint(ctx, "status")
}

func (c *WdaClient) CreateSession(ctx context.Context) (string, error) {
	response, err := c.PostEndpoint(ctx, "session", map[string]interface{}{
		"capabilities": map[string]interface{}{
			"alwaysMatch": map[string]interface{}{
				"platformName": "iOS",
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %v", err)
	}

	sessionId, ok := response["sessionId"].(string)
	if !ok || sessionId == "" {
		return "", fmt.Errorf("failed to create session: no sessionId in response")
	}
	return sessionId, nil
}

func (c *WdaClient) DeleteSession(ctx context.Context, sessionId string) error {
	_, err := c.DeleteEndpoint(ctx, fmt.Sprintf("session/%s", sessionId))
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %v", sessionId, err)
	}
	return nil
}

// GetOrCreateSession reuses the cached session, creating one on first use.
func (c *WdaClient) GetOrCreateSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessionId != "" {
		return c.sessionId, nil
	}

	sessionId, err := c.CreateSession(ctx)
	if err != nil {
		return "", err
	}
	c.sessionId = sessionId
	return sessionId, nil
}

// withSession runs fn with the cached session and retries once with a fresh
// session if the agent has dropped the old one.
func (c *WdaClient) withSession(ctx context.Context, fn func(sessionId string) error) error {
	sessionId, err := c.GetOrCreateSession(ctx)
	if err != nil {
		return err
	}

	if err := fn(sessionId); err == nil {
		return nil
	}

	c.mu.Lock()
	if c.sessionId == sessionId {
		c.sessionId = ""
	}
	c.mu.Unlock()

	sessionId, err = c.GetOrCreateSession(ctx)
	if err != nil {
		return err
	}
	return fn(sessionId)
}

// Close deletes the cached session, if any.
func (c *WdaClient) Close(ctx context.Context) error {
	c.mu.Lock()
	sessionId := c.sessionId
	c.sessionId = ""
	c.mu.Unlock()

	if sessionId == "" {
		return nil
	}
	return c.DeleteSession(ctx, sessionId)
}
