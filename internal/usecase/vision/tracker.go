package vision

import (
	"sync"
	"time"

	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// FrameClassification is the per-frame result of the body-language model:
// which signals are present in the frame right now.
type FrameClassification struct {
	HandVisible bool
	LookingAway bool
	BadPosture  bool
}

// FrameClassifier produces a classification for the current camera frame
type FrameClassifier interface {
	Classify() FrameClassification
}

// Tracker accumulates body-language metrics over the course of an interview.
// Counts increment when a signal turns on; durations accumulate when it turns
// off again. An interval left open is only folded into the totals by Stop.
type Tracker struct {
	mu      sync.Mutex
	now     func() time.Time
	stopped bool

	metrics entities.MetricsSnapshot

	handActive   bool
	handStart    time.Time
	awayActive   bool
	awayStart    time.Time
	postureBad   bool
	postureStart time.Time
}

// NewTracker creates a tracker using the wall clock
func NewTracker() *Tracker {
	return NewTrackerWithClock(time.Now)
}

// NewTrackerWithClock creates a tracker with an injected clock
func NewTrackerWithClock(now func() time.Time) *Tracker {
	return &Tracker{now: now}
}

// Observe folds one frame classification into the metrics. Calls after Stop
// are no-ops.
func (t *Tracker) Observe(c FrameClassification) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	now := t.now()

	if c.HandVisible && !t.handActive {
		t.handActive = true
		t.handStart = now
		t.metrics.HandDetectionCount++
	} else if !c.HandVisible && t.handActive {
		t.handActive = false
		t.metrics.HandDetectionDuration += now.Sub(t.handStart).Seconds()
	}

	if c.LookingAway && !t.awayActive {
		t.awayActive = true
		t.awayStart = now
		t.metrics.LossEyeContactCount++
	} else if !c.LookingAway && t.awayActive {
		t.awayActive = false
		t.metrics.LookingAwayDuration += now.Sub(t.awayStart).Seconds()
	}

	if c.BadPosture && !t.postureBad {
		t.postureBad = true
		t.postureStart = now
		t.metrics.BadPostureCount++
	} else if !c.BadPosture && t.postureBad {
		t.postureBad = false
		t.metrics.BadPostureDuration += now.Sub(t.postureStart).Seconds()
	}
}

// Snapshot returns a copy of the accumulated metrics. Open intervals stay
// open: their elapsed time is not included until the signal ends or the
// tracker stops.
func (t *Tracker) Snapshot() entities.MetricsSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.metrics
}

// Stop closes any open intervals and freezes the metrics. Subsequent calls
// return the same final snapshot.
func (t *Tracker) Stop() entities.MetricsSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return t.metrics
	}
	t.stopped = true

	now := t.now()
	if t.handActive {
		t.handActive = false
		t.metrics.HandDetectionDuration += now.Sub(t.handStart).Seconds()
	}
	if t.awayActive {
		t.awayActive = false
		t.metrics.LookingAwayDuration += now.Sub(t.awayStart).Seconds()
	}
	if t.postureBad {
		t.postureBad = false
		t.metrics.BadPostureDuration += now.Sub(t.postureStart).Seconds()
	}

	return t.metrics
}
