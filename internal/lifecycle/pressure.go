package lifecycle

import (
	"context"
	"math"
	"runtime"
	"runtime/debug"
	"time"
)

const bytesPerMB = 1 << 20

// sampleLoop drives periodic pressure detection until Close.
func (m *Manager) sampleLoop() {
	ticker := time.NewTicker(m.cfg.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sample(context.Background())
		}
	}
}

// sample reads heap usage and applies the escalating cleanup tiers.
// Without a configured memory limit there is no usable heap ceiling, so
// pressure detection is skipped entirely and reclamation relies on the
// explicit cleanup paths.
func (m *Manager) sample(ctx context.Context) {
	limit := debug.SetMemoryLimit(-1)
	if limit <= 0 || limit == math.MaxInt64 {
		return
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	usedMB := float64(ms.HeapAlloc) / bytesPerMB
	usage := float64(ms.HeapAlloc) / float64(limit)

	m.mu.Lock()
	var growth float64
	if m.hasPrev {
		growth = usedMB - m.prevUsedMB
	}
	m.prevUsedMB = usedMB
	m.hasPrev = true
	m.lastUsage = usage
	m.lastGrowthMB = growth
	m.mu.Unlock()

	if m.applyTiers(ctx, usage, growth) {
		m.notifyListeners(usage)
	}
}

// notifyListeners fires every listener whose threshold is at or below
// the sampled usage. Level-triggered, once per tick.
func (m *Manager) notifyListeners(usage float64) {
	m.mu.Lock()
	listeners := make([]PressureListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, listener := range listeners {
		if listener.Callback != nil && usage >= listener.Threshold {
			listener.Callback(usage)
		}
	}
}

// applyTiers runs the escalating cleanup responses. Best-effort
// heuristic, not a hard guarantee.
func (m *Manager) applyTiers(ctx context.Context, usage, growth float64) bool {
	fired := false

	switch {
	case usage > EmergencyUsageThreshold:
		m.l.Warn(ctx, "emergency memory pressure, clearing all resources", "usage", usage)
		m.runTasksAtOrAbove(ctx, PriorityLow)
		m.clearAll(ctx)
		fired = true
	case usage > HighUsageThreshold:
		m.l.Warn(ctx, "high memory pressure, clearing timers", "usage", usage)
		m.runTasksAtOrAbove(ctx, PriorityMedium)
		m.CleanupByType(ctx, ResourceTimer)
		fired = true
	case usage > ModerateUsageThreshold:
		m.l.Info(ctx, "moderate memory pressure, sweeping stale resources", "usage", usage)
		m.runTasksAtOrAbove(ctx, PriorityLow)
		m.CleanupOlderThan(ctx, ModerateSweepAge)
		fired = true
	}

	if growth > GrowthThresholdMB {
		m.l.Warn(ctx, "rapid heap growth detected", "growth_mb", growth)
		m.runTasksAtOrAbove(ctx, PriorityMedium)
		fired = true
	}
	return fired
}

func (m *Manager) runTasksAtOrAbove(ctx context.Context, min Priority) {
	m.mu.Lock()
	tasks := m.sched.snapshot(min)
	m.mu.Unlock()
	runTasks(ctx, m.l, tasks)
}

func (m *Manager) clearAll(ctx context.Context) {
	m.mu.Lock()
	entries := m.reg.takeAll()
	m.mu.Unlock()
	m.runEntries(ctx, entries)
}
