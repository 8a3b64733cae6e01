package lifecycle

import (
	"context"
	"sync"
	"time"
)

// CancelToken scopes resource ownership to one unit of work, typically
// a conversation turn. Cancelling twice is harmless.
type CancelToken struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Context returns the token's context.
func (t *CancelToken) Context() context.Context { return t.ctx }

// Cancel signals the token. Idempotent.
func (t *CancelToken) Cancel() { t.cancel() }

// Cancelled reports whether the token has been signalled.
func (t *CancelToken) Cancelled() bool { return t.ctx.Err() != nil }

// ManagedCancel creates a cancellation token registered with a cleanup
// action that cancels it if not already cancelled.
func (m *Manager) ManagedCancel(ctx context.Context, description string) *CancelToken {
	tokenCtx, cancel := context.WithCancel(context.Background())
	token := &CancelToken{ctx: tokenCtx, cancel: cancel}

	m.Register(ctx, token, Metadata{
		Type:        ResourceCancellationToken,
		CreatedAt:   time.Now(),
		Description: description,
	}, token.Cancel)
	return token
}

// managedTimer is the registry handle for a timer. A zero-delay timer
// can fire before the arming goroutine has published the *time.Timer,
// so the field is read and written under the mutex.
type managedTimer struct {
	mu    sync.Mutex
	timer *time.Timer
}

func (h *managedTimer) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
	}
}

// ManagedTimer schedules fn after delay and registers the timer with a
// cleanup action that stops it. The raw handle is returned so callers
// can still stop it directly. A fired timer unregisters itself.
func (m *Manager) ManagedTimer(ctx context.Context, delay time.Duration, fn func(), description string) *time.Timer {
	handle := &managedTimer{}
	m.Register(ctx, handle, Metadata{
		Type:        ResourceTimer,
		CreatedAt:   time.Now(),
		Description: description,
	}, handle.stop)

	// The lock is held across arming so a concurrent cleanup cannot
	// observe a nil timer and let fn fire after release.
	handle.mu.Lock()
	handle.timer = time.AfterFunc(delay, func() {
		defer m.Unregister(context.Background(), handle)
		fn()
	})
	timer := handle.timer
	handle.mu.Unlock()
	return timer
}

// trackedTask is the identity handle for a goroutine tracked by TrackGo.
type trackedTask struct {
	description string
}

// TrackGo runs fn on its own goroutine and tracks it for the duration.
// A failure is logged unless ctx was already cancelled (the failure is
// then attributed to cancellation). The outcome is always delivered on
// the returned channel; tracking never swallows it.
func (m *Manager) TrackGo(ctx context.Context, description string, fn func(context.Context) error) <-chan error {
	done := make(chan error, 1)
	handle := &trackedTask{description: description}

	m.Register(ctx, handle, Metadata{
		Type:        ResourceTrackedPromise,
		CreatedAt:   time.Now(),
		Description: description,
	}, nil)

	go func() {
		err := fn(ctx)
		m.Unregister(ctx, handle)
		if err != nil && ctx.Err() == nil {
			m.l.Error(ctx, "tracked task failed",
				"description", description,
				"error", err.Error(),
			)
		}
		done <- err
	}()
	return done
}
