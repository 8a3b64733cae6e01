package backend

// ChatHistoryMessage is one conversation entry as transmitted to the
// backend. Local tool-execution bookkeeping never appears here.
type ChatHistoryMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []ToolCallSpec `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// ToolCallSpec is the wire form of a tool invocation request: identity,
// name, and arguments only.
type ToolCallSpec struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message             string               `json:"message"`
	ConversationHistory []ChatHistoryMessage `json:"conversation_history"`
	LLMConfigID         *int64               `json:"llm_config_id,omitempty"`
	ExcludeTools        bool                 `json:"exclude_tools,omitempty"`
}

// ChatResponse is the backend's answer: assistant text plus zero or more
// tool invocation requests.
type ChatResponse struct {
	Response  string         `json:"response"`
	ToolCalls []ToolCallSpec `json:"tool_calls,omitempty"`
}

// Server describes an MCP server known to the backend.
type Server struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsEnabled bool   `json:"is_enabled"`
	Status    string `json:"status"`
}

// Tool describes one tool hosted by a server.
type Tool struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsEnabled   bool   `json:"is_enabled"`
}

// ServerWithTools is the body of GET /api/mcp/servers/{id}.
type ServerWithTools struct {
	Server
	Tools []Tool `json:"tools"`
}

// CallToolRequest is the body of POST /api/mcp/call-tool.
type CallToolRequest struct {
	ToolName   string         `json:"tool_name"`
	Parameters map[string]any `json:"parameters"`
	ServerID   int64          `json:"server_id"`
}

// CallToolResponse reports a tool invocation outcome. Result may itself
// carry a protocol-level error object even when Success is true; callers
// must classify it before use.
type CallToolResponse struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}
