package lifecycle

import "time"

// Defaults and tier thresholds.
const (
	// DefaultMaxActiveResources is the registration ceiling; exceeding it
	// triggers a synchronous low-priority cleanup pass.
	DefaultMaxActiveResources = 100

	// DefaultSampleInterval is the memory pressure sampling period.
	DefaultSampleInterval = 5 * time.Second

	// StaleResourceAge is the sweep age applied after every TriggerCleanup.
	StaleResourceAge = 5 * time.Minute

	// ModerateSweepAge is the sweep age at the moderate pressure tier.
	ModerateSweepAge = 60 * time.Second

	// Pressure tiers: sampled heap-used / heap-limit fractions.
	EmergencyUsageThreshold = 0.95
	HighUsageThreshold      = 0.90
	ModerateUsageThreshold  = 0.80

	// GrowthThresholdMB triggers a medium+ pass when heap use grows this
	// much between consecutive samples, regardless of absolute usage.
	GrowthThresholdMB = 50.0
)
