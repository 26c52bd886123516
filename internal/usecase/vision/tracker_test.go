package vision

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advanceTo(seconds float64) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	c.t = base.Add(time.Duration(seconds * float64(time.Second)))
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTrackerCountsOnceDurationSpansInterval(t *testing.T) {
	clock := newFakeClock()
	tracker := NewTrackerWithClock(clock.now)

	// hand visible from t=1 to t=4
	steps := []struct {
		at   float64
		hand bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{4, false},
	}
	for _, step := range steps {
		clock.advanceTo(step.at)
		tracker.Observe(FrameClassification{HandVisible: step.hand})
	}

	got := tracker.Snapshot()
	if got.HandDetectionCount != 1 {
		t.Errorf("HandDetectionCount = %d, want 1", got.HandDetectionCount)
	}
	if !almostEqual(got.HandDetectionDuration, 3.0) {
		t.Errorf("HandDetectionDuration = %v, want 3.0", got.HandDetectionDuration)
	}
}

func TestTrackerSnapshotDoesNotCloseOpenInterval(t *testing.T) {
	clock := newFakeClock()
	tracker := NewTrackerWithClock(clock.now)

	tracker.Observe(FrameClassification{LookingAway: true})
	clock.advanceTo(5)

	got := tracker.Snapshot()
	if got.LossEyeContactCount != 1 {
		t.Errorf("LossEyeContactCount = %d, want 1", got.LossEyeContactCount)
	}
	if !almostEqual(got.LookingAwayDuration, 0) {
		t.Errorf("LookingAwayDuration = %v, want 0 while interval open", got.LookingAwayDuration)
	}

	// closing the interval folds the elapsed time in
	tracker.Observe(FrameClassification{LookingAway: false})
	got = tracker.Snapshot()
	if !almostEqual(got.LookingAwayDuration, 5.0) {
		t.Errorf("LookingAwayDuration = %v, want 5.0 after close", got.LookingAwayDuration)
	}
}

func TestTrackerStopClosesIntervalsAndIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	tracker := NewTrackerWithClock(clock.now)

	tracker.Observe(FrameClassification{BadPosture: true})
	clock.advanceTo(2)

	first := tracker.Stop()
	if first.BadPostureCount != 1 {
		t.Errorf("BadPostureCount = %d, want 1", first.BadPostureCount)
	}
	if !almostEqual(first.BadPostureDuration, 2.0) {
		t.Errorf("BadPostureDuration = %v, want 2.0", first.BadPostureDuration)
	}

	// later Stop returns the identical snapshot even as the clock moves on
	clock.advanceTo(10)
	second := tracker.Stop()
	if second != first {
		t.Errorf("second Stop = %+v, want %+v", second, first)
	}
}

func TestTrackerObserveAfterStopIsNoOp(t *testing.T) {
	clock := newFakeClock()
	tracker := NewTrackerWithClock(clock.now)

	final := tracker.Stop()

	tracker.Observe(FrameClassification{HandVisible: true, LookingAway: true, BadPosture: true})
	clock.advanceTo(3)
	tracker.Observe(FrameClassification{})

	if got := tracker.Snapshot(); got != final {
		t.Errorf("snapshot after post-stop observes = %+v, want %+v", got, final)
	}
}

func TestTrackerRepeatedIntervals(t *testing.T) {
	clock := newFakeClock()
	tracker := NewTrackerWithClock(clock.now)

	// two separate hand intervals: [1,2] and [3,5]
	for _, step := range []struct {
		at   float64
		hand bool
	}{
		{1, true}, {2, false}, {3, true}, {5, false},
	} {
		clock.advanceTo(step.at)
		tracker.Observe(FrameClassification{HandVisible: step.hand})
	}

	got := tracker.Snapshot()
	if got.HandDetectionCount != 2 {
		t.Errorf("HandDetectionCount = %d, want 2", got.HandDetectionCount)
	}
	if !almostEqual(got.HandDetectionDuration, 3.0) {
		t.Errorf("HandDetectionDuration = %v, want 3.0", got.HandDetectionDuration)
	}
}
