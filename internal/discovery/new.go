package discovery

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"mcp-chat-client/pkg/backend"
	"mcp-chat-client/pkg/log"
)

const (
	// defaultCacheTTL bounds how long a server's tool set is reused
	// before it is fetched again.
	defaultCacheTTL = 30 * time.Second

	// maxCachedServers caps the per-server tool-set cache.
	maxCachedServers = 128
)

// Client maps a tool name to the backend server that currently hosts it.
type Client interface {
	// Resolve returns the first enabled server hosting the named tool,
	// visiting servers in the backend's listing order. ok is false when
	// no server hosts the tool or every hosting server has it disabled.
	Resolve(ctx context.Context, toolName string) (res Resolution, ok bool, err error)
}

type client struct {
	api   backend.Client
	l     log.Logger
	cache *expirable.LRU[int64, []backend.Tool]
}

// New creates a discovery client backed by the given backend API.
// cacheTTL <= 0 selects the default.
func New(api backend.Client, l log.Logger, cacheTTL time.Duration) Client {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &client{
		api:   api,
		l:     l,
		cache: expirable.NewLRU[int64, []backend.Tool](maxCachedServers, nil, cacheTTL),
	}
}
