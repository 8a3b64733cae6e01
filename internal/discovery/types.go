package discovery

// Resolution is the outcome of mapping a tool name to a hosting server.
type Resolution struct {
	ServerID   int64
	ServerName string
}
