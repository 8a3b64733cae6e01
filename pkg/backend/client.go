package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// HTTPClient is the HTTP implementation of Client.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a backend API client. apiKey may be empty.
func NewClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Chat sends a chat request via POST /api/chat.
func (c *HTTPClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.post(ctx, "/api/chat", req, &resp); err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	return &resp, nil
}

// ListServers fetches all MCP servers via GET /api/mcp/servers.
func (c *HTTPClient) ListServers(ctx context.Context) ([]Server, error) {
	var servers []Server
	if err := c.get(ctx, "/api/mcp/servers", &servers); err != nil {
		return nil, fmt.Errorf("list servers failed: %w", err)
	}
	return servers, nil
}

// GetServerTools fetches one server's tool set via GET /api/mcp/servers/{id}.
func (c *HTTPClient) GetServerTools(ctx context.Context, serverID int64) ([]Tool, error) {
	var server ServerWithTools
	if err := c.get(ctx, fmt.Sprintf("/api/mcp/servers/%d", serverID), &server); err != nil {
		return nil, fmt.Errorf("get server tools failed: %w", err)
	}
	return server.Tools, nil
}

// CallTool invokes a tool via POST /api/mcp/call-tool.
func (c *HTTPClient) CallTool(ctx context.Context, req CallToolRequest) (*CallToolResponse, error) {
	var resp CallToolResponse
	if err := c.post(ctx, "/api/mcp/call-tool", req, &resp); err != nil {
		return nil, fmt.Errorf("call tool %s failed: %w", req.ToolName, err)
	}
	return &resp, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(raw))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.setAuth(httpReq)

	return c.do(httpReq, out)
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.setAuth(httpReq)

	return c.do(httpReq, out)
}

func (c *HTTPClient) setAuth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call backend API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend API error %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
