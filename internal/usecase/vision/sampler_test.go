package vision

import (
	"sync/atomic"
	"testing"
	"time"
)

type countingClassifier struct {
	calls atomic.Int64
}

func (c *countingClassifier) Classify() FrameClassification {
	c.calls.Add(1)
	return FrameClassification{}
}

func TestSamplerStopIsSynchronous(t *testing.T) {
	tracker := NewTracker()
	classifier := &countingClassifier{}
	sampler := NewSampler(tracker, classifier, time.Millisecond)

	sampler.Start()
	time.Sleep(20 * time.Millisecond)
	sampler.Stop()

	after := classifier.calls.Load()
	time.Sleep(10 * time.Millisecond)
	if got := classifier.calls.Load(); got != after {
		t.Errorf("classifier called %d times after Stop returned, want 0", got-after)
	}
}

func TestSamplerStopBeforeStart(t *testing.T) {
	sampler := NewSampler(NewTracker(), &countingClassifier{}, time.Millisecond)
	// must not panic or block
	sampler.Stop()
}

func TestSimulatedClassifierIsDeterministicPerSeed(t *testing.T) {
	a := NewSimulatedClassifier(42)
	b := NewSimulatedClassifier(42)

	for i := 0; i < 100; i++ {
		ca, cb := a.Classify(), b.Classify()
		if ca != cb {
			t.Fatalf("classification %d diverged: %+v vs %+v", i, ca, cb)
		}
	}
}
