package backend

import "context"

// Client is the backend LLM/tool-orchestration API consumed by the
// orchestrator and the discovery client.
type Client interface {
	// Chat sends a message plus sanitized history to the chat endpoint.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// ListServers returns all MCP servers in the backend's listing order.
	ListServers(ctx context.Context) ([]Server, error)

	// GetServerTools returns the tool set of one server.
	GetServerTools(ctx context.Context, serverID int64) ([]Tool, error)

	// CallTool invokes a named tool on a specific server.
	CallTool(ctx context.Context, req CallToolRequest) (*CallToolResponse, error)
}
