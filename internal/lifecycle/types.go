package lifecycle

import (
	"context"
	"time"
)

// ResourceType classifies a tracked resource.
type ResourceType string

const (
	ResourceCancellationToken ResourceType = "cancellation-token"
	ResourceTimer             ResourceType = "timer"
	ResourceTrackedPromise    ResourceType = "tracked-promise"
	ResourceSubscription      ResourceType = "subscription"
	ResourceDOMReference      ResourceType = "dom-reference"
)

// Metadata describes one tracked resource. The resource value itself is
// the identity key; metadata carries everything else.
type Metadata struct {
	Type        ResourceType
	CreatedAt   time.Time
	Description string
}

// Priority orders cleanup tasks. Higher runs first, and a requested
// floor is inclusive: triggering at PriorityLow runs everything,
// triggering at PriorityHigh runs only high tasks.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// CleanupTask is a process-lifetime reclamation hook. Tasks are
// registered once at startup and only discarded by Close.
type CleanupTask struct {
	Priority    Priority
	Description string
	Execute     func(ctx context.Context) error
}

// PressureListener fires whenever sampled heap usage meets its
// threshold. It is level-triggered, once per sampling tick; callers that
// need edge-triggered behavior must debounce themselves.
type PressureListener struct {
	Threshold float64
	Callback  func(usage float64)
}

// Stats is an aggregate snapshot of the manager.
type Stats struct {
	ActiveResourceCount int                  `json:"active_resource_count"`
	MemoryUsageFraction float64              `json:"memory_usage_fraction"`
	MemoryGrowthRateMB  float64              `json:"memory_growth_rate_mb"`
	CountsByType        map[ResourceType]int `json:"counts_by_type"`
}
