package orchestrator

import "time"

const (
	// finalAttempts bounds the synthesis request. The first failure is
	// retried once after a fixed backoff; the second is terminal.
	finalAttempts = 2

	defaultRetryBackoff    = 2 * time.Second
	defaultToolCallTimeout = 60 * time.Second
	defaultInterToolDelay  = 100 * time.Millisecond

	// maxToolContentChars caps raw payloads rendered into tool messages.
	maxToolContentChars = 2000
	truncationMarker    = "... [truncated]"
)

// Fixed user-visible messages. Keep these stable: the UI and the tests
// match on them verbatim.
const (
	msgAllToolsFailed = "I apologize, but I wasn't able to get useful results from the tools. Please try rephrasing your question."

	msgEmptyFinal = "I gathered the information but couldn't put together a final response. Please try again."

	msgUnexpectedToolCalls = "I gathered the tool results but could not produce a summary."

	msgToolNotFound = "Tool not found or disabled"

	msgToolCancelled = "Cancelled before execution"

	msgChatFailed = "Sorry, something went wrong while contacting the assistant. Please try again."

	msgNetworkFallback = "I'm having trouble reaching the assistant service. Please check your connection and try again."

	msgTimeoutFallback = "The assistant took too long to respond. Please try again."

	msgParseFallback = "I received a response I couldn't understand. Please try again."

	msgGenericFallback = "Something unexpected went wrong while answering. Please try again."

	synthesisInstruction = "Please provide a clear, complete answer to my question using the tool results above."
)
