// Package lifecycle tracks every cancellable or ephemeral handle the
// chat client creates (cancellation tokens, timers, tracked goroutines)
// and reclaims them deterministically or under memory pressure.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"mcp-chat-client/pkg/log"
)

// Config tunes the manager.
type Config struct {
	// MaxActiveResources is the registration ceiling. Zero means
	// DefaultMaxActiveResources.
	MaxActiveResources int
	// SampleInterval is the pressure sampling period. Zero means
	// DefaultSampleInterval. Negative disables the sampler.
	SampleInterval time.Duration
}

// Manager is the single source of truth for what is alive. It is safe
// for concurrent use; cleanup actions run outside the internal lock and
// must tolerate at-most-once invocation per registration.
type Manager struct {
	l   log.Logger
	cfg Config

	mu        sync.Mutex
	reg       *registry
	sched     *scheduler
	listeners []PressureListener
	closed    bool
	done      chan struct{}

	// pressure sampling state
	prevUsedMB   float64
	hasPrev      bool
	lastUsage    float64
	lastGrowthMB float64
}

// New constructs a manager and starts its memory sampler. One manager
// per running application; inject it rather than sharing globals.
func New(l log.Logger, cfg Config) *Manager {
	if cfg.MaxActiveResources == 0 {
		cfg.MaxActiveResources = DefaultMaxActiveResources
	}
	if cfg.SampleInterval == 0 {
		cfg.SampleInterval = DefaultSampleInterval
	}

	m := &Manager{
		l:     l,
		cfg:   cfg,
		reg:   newRegistry(),
		sched: newScheduler(),
		done:  make(chan struct{}),
	}
	if cfg.SampleInterval > 0 {
		go m.sampleLoop()
	}
	return m
}

// Register tracks a resource. It never fails: malformed input is logged
// and the resource is returned unchanged. A nil cleanup tracks the
// resource for statistics only. Exceeding the ceiling triggers a
// synchronous low-priority cleanup pass.
func (m *Manager) Register(ctx context.Context, resource any, md Metadata, cleanup func()) any {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return resource
	}
	ok := m.reg.put(resource, md, cleanup)
	over := ok && m.reg.size() > m.cfg.MaxActiveResources
	m.mu.Unlock()

	if !ok {
		m.l.Warn(ctx, "resource registration skipped",
			"type", string(md.Type),
			"description", md.Description,
			"reason", "resource is nil or not comparable",
		)
		return resource
	}
	if over {
		m.l.Info(ctx, "active resource ceiling exceeded, running low-priority cleanup",
			"ceiling", m.cfg.MaxActiveResources,
		)
		m.TriggerCleanup(ctx, PriorityLow)
	}
	return resource
}

// Unregister removes a resource and invokes its cleanup action exactly
// once. Nil or unknown resources are a no-op.
func (m *Manager) Unregister(ctx context.Context, resource any) {
	m.mu.Lock()
	e := m.reg.take(resource)
	m.mu.Unlock()

	if e == nil {
		return
	}
	m.runEntries(ctx, []*entry{e})
}

// CleanupByType reclaims every resource of the given type. A failing
// cleanup action is logged and does not stop the sweep; every removed
// entry counts.
func (m *Manager) CleanupByType(ctx context.Context, t ResourceType) int {
	m.mu.Lock()
	entries := m.reg.takeByType(t)
	m.mu.Unlock()

	m.runEntries(ctx, entries)
	return len(entries)
}

// CleanupOlderThan reclaims every resource older than maxAge.
func (m *Manager) CleanupOlderThan(ctx context.Context, maxAge time.Duration) int {
	m.mu.Lock()
	entries := m.reg.takeOlderThan(maxAge, time.Now())
	m.mu.Unlock()

	m.runEntries(ctx, entries)
	return len(entries)
}

// RegisterCleanupTask appends a task to the prioritized list. There is
// no unregistration; tasks live until Close.
func (m *Manager) RegisterCleanupTask(task CleanupTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.sched.add(task)
}

// TriggerCleanup executes tasks at or above the inclusive priority
// floor, then sweeps resources older than StaleResourceAge.
func (m *Manager) TriggerCleanup(ctx context.Context, min Priority) {
	m.mu.Lock()
	tasks := m.sched.snapshot(min)
	m.mu.Unlock()

	runTasks(ctx, m.l, tasks)
	m.CleanupOlderThan(ctx, StaleResourceAge)
}

// AddPressureListener registers a memory pressure listener.
func (m *Manager) AddPressureListener(listener PressureListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.listeners = append(m.listeners, listener)
}

// Stats returns an aggregate snapshot.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		ActiveResourceCount: m.reg.size(),
		MemoryUsageFraction: m.lastUsage,
		MemoryGrowthRateMB:  m.lastGrowthMB,
		CountsByType:        m.reg.countsByType(),
	}
}

// Close stops the sampler, reclaims every active resource best-effort,
// and clears tasks and listeners. Safe to call multiple times.
func (m *Manager) Close() {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
	entries := m.reg.takeAll()
	m.sched.clear()
	m.listeners = nil
	m.mu.Unlock()

	m.runEntries(context.Background(), entries)
}

// runEntries invokes cleanup actions outside the lock. Panics are
// contained so one bad action cannot poison a sweep.
func (m *Manager) runEntries(ctx context.Context, entries []*entry) {
	for _, e := range entries {
		if e.cleanup == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.l.Warn(ctx, "resource cleanup failed",
						"type", string(e.md.Type),
						"description", e.md.Description,
						"panic", r,
					)
				}
			}()
			e.cleanup()
		}()
	}
}
