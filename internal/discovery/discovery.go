package discovery

import (
	"context"
	"fmt"

	"mcp-chat-client/pkg/backend"
)

// Resolve walks the server list in order and returns the first enabled
// server whose enabled tool set contains toolName.
func (c *client) Resolve(ctx context.Context, toolName string) (Resolution, bool, error) {
	servers, err := c.api.ListServers(ctx)
	if err != nil {
		return Resolution{}, false, fmt.Errorf("failed to list servers: %w", err)
	}

	for _, server := range servers {
		if !server.IsEnabled {
			continue
		}
		tools, err := c.serverTools(ctx, server.ID)
		if err != nil {
			// A misbehaving server must not mask tools hosted elsewhere.
			c.l.Warnf(ctx, "failed to fetch tools for server %d (%s): %v", server.ID, server.Name, err)
			continue
		}
		for _, tool := range tools {
			if tool.Name == toolName && tool.IsEnabled {
				return Resolution{ServerID: server.ID, ServerName: server.Name}, true, nil
			}
		}
	}
	return Resolution{}, false, nil
}

func (c *client) serverTools(ctx context.Context, serverID int64) ([]backend.Tool, error) {
	if tools, ok := c.cache.Get(serverID); ok {
		return tools, nil
	}
	tools, err := c.api.GetServerTools(ctx, serverID)
	if err != nil {
		return nil, err
	}
	c.cache.Add(serverID, tools)
	return tools, nil
}
