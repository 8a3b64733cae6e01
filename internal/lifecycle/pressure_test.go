package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"mcp-chat-client/pkg/log"
)

func TestApplyTiers_Emergency(t *testing.T) {
	m := newTestManager()
	defer m.Close()
	ctx := context.Background()

	var lowRan, highRan bool
	m.RegisterCleanupTask(CleanupTask{Priority: PriorityLow, Description: "low",
		Execute: func(context.Context) error { lowRan = true; return nil }})
	m.RegisterCleanupTask(CleanupTask{Priority: PriorityHigh, Description: "high",
		Execute: func(context.Context) error { highRan = true; return nil }})

	m.Register(ctx, &handle{name: "anything"}, Metadata{Type: ResourceSubscription}, func() {})

	if fired := m.applyTiers(ctx, 0.96, 0); !fired {
		t.Fatal("emergency tier should fire")
	}
	if !lowRan || !highRan {
		t.Error("emergency tier must run every task regardless of priority")
	}
	if n := m.Stats().ActiveResourceCount; n != 0 {
		t.Errorf("emergency tier must clear all resources, %d left", n)
	}
}

func TestApplyTiers_High(t *testing.T) {
	m := newTestManager()
	defer m.Close()
	ctx := context.Background()

	var lowRan, mediumRan bool
	m.RegisterCleanupTask(CleanupTask{Priority: PriorityLow, Description: "low",
		Execute: func(context.Context) error { lowRan = true; return nil }})
	m.RegisterCleanupTask(CleanupTask{Priority: PriorityMedium, Description: "medium",
		Execute: func(context.Context) error { mediumRan = true; return nil }})

	m.Register(ctx, &handle{name: "t"}, Metadata{Type: ResourceTimer}, func() {})
	m.Register(ctx, &handle{name: "s"}, Metadata{Type: ResourceSubscription}, func() {})

	m.applyTiers(ctx, 0.92, 0)

	if !mediumRan {
		t.Error("high tier runs medium and above")
	}
	if lowRan {
		t.Error("high tier must not run low tasks")
	}
	stats := m.Stats()
	if stats.CountsByType[ResourceTimer] != 0 {
		t.Error("high tier clears timer resources")
	}
	if stats.CountsByType[ResourceSubscription] != 1 {
		t.Error("high tier must leave non-timer resources alone")
	}
}

func TestApplyTiers_Moderate(t *testing.T) {
	m := newTestManager()
	defer m.Close()
	ctx := context.Background()

	m.Register(ctx, &handle{name: "old"}, Metadata{
		Type:      ResourceSubscription,
		CreatedAt: time.Now().Add(-2 * time.Minute),
	}, func() {})
	m.Register(ctx, &handle{name: "fresh"}, Metadata{Type: ResourceSubscription}, func() {})

	m.applyTiers(ctx, 0.85, 0)

	if n := m.Stats().ActiveResourceCount; n != 1 {
		t.Errorf("moderate tier sweeps only resources older than 60s, %d left", n)
	}
}

func TestApplyTiers_GrowthIndependentOfUsage(t *testing.T) {
	m := newTestManager()
	defer m.Close()

	var mediumRan bool
	m.RegisterCleanupTask(CleanupTask{Priority: PriorityMedium, Description: "medium",
		Execute: func(context.Context) error { mediumRan = true; return nil }})

	if fired := m.applyTiers(context.Background(), 0.10, 60); !fired {
		t.Fatal("growth spike should fire even at low usage")
	}
	if !mediumRan {
		t.Error("growth spike runs medium and above")
	}
}

func TestApplyTiers_BelowThresholds(t *testing.T) {
	m := newTestManager()
	defer m.Close()

	if fired := m.applyTiers(context.Background(), 0.5, 10); fired {
		t.Error("no tier should fire below every threshold")
	}
}

func TestTrackGo_DeliversOutcome(t *testing.T) {
	m := newTestManager()
	defer m.Close()

	wantErr := errors.New("task failed")
	done := m.TrackGo(context.Background(), "failing task", func(context.Context) error {
		return wantErr
	})

	select {
	case err := <-done:
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
	case <-time.After(time.Second):
		t.Fatal("outcome never delivered")
	}
}

func TestTrackGo_CancellationSuppressesLogging(t *testing.T) {
	l := &captureLogger{}
	m := New(l, Config{SampleInterval: -1})
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := m.TrackGo(ctx, "cancelled task", func(ctx context.Context) error {
		return ctx.Err()
	})
	if err := <-done; err == nil {
		t.Fatal("expected the cancellation error back")
	}
	if l.has("tracked task failed") {
		t.Error("cancellation-attributed failure should not be logged")
	}
}

func TestTrackGo_FailureIsLogged(t *testing.T) {
	l := &captureLogger{}
	m := New(l, Config{SampleInterval: -1})
	defer m.Close()

	done := m.TrackGo(context.Background(), "broken", func(context.Context) error {
		return errors.New("boom")
	})
	<-done

	if !l.has("tracked task failed") {
		t.Error("failure should be logged when not attributable to cancellation")
	}
}

func TestTrackGo_UntrackedAfterCompletion(t *testing.T) {
	m := New(log.NewNop(), Config{SampleInterval: -1})
	defer m.Close()

	done := m.TrackGo(context.Background(), "quick", func(context.Context) error { return nil })
	<-done

	deadline := time.Now().Add(time.Second)
	for m.Stats().CountsByType[ResourceTrackedPromise] != 0 {
		if time.Now().After(deadline) {
			t.Fatal("completed task still tracked")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPressureListener_LevelTriggered(t *testing.T) {
	m := newTestManager()
	defer m.Close()

	var fired []float64
	m.AddPressureListener(PressureListener{Threshold: 0.8, Callback: func(u float64) {
		fired = append(fired, u)
	}})
	m.AddPressureListener(PressureListener{Threshold: 0.99, Callback: func(u float64) {
		t.Error("listener above usage should not fire")
	}})

	usage := 0.92
	m.notifyListeners(usage)

	if len(fired) != 1 || fired[0] != usage {
		t.Errorf("listener fired %v, want one call at %v", fired, usage)
	}
}
