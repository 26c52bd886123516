package vision

import (
	"context"
	"math/rand"
	"time"
)

// Sampler drives a Tracker from a FrameClassifier on a fixed interval.
// Stop is synchronous: once it returns, no further Observe call will happen.
type Sampler struct {
	tracker    *Tracker
	classifier FrameClassifier
	interval   time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSampler creates a sampler; Start must be called to begin sampling
func NewSampler(tracker *Tracker, classifier FrameClassifier, interval time.Duration) *Sampler {
	return &Sampler{
		tracker:    tracker,
		classifier: classifier,
		interval:   interval,
		done:       make(chan struct{}),
	}
}

// Start launches the sampling loop
func (s *Sampler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tracker.Observe(s.classifier.Classify())
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit. Safe to call more than once.
func (s *Sampler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// SimulatedClassifier produces random classifications for development and
// interface testing, with the same per-tick signal probabilities the real
// vision pipeline was tuned against.
type SimulatedClassifier struct {
	rng *rand.Rand
}

// NewSimulatedClassifier creates a simulator with the given seed
func NewSimulatedClassifier(seed int64) *SimulatedClassifier {
	return &SimulatedClassifier{rng: rand.New(rand.NewSource(seed))}
}

// Classify rolls each signal independently
func (c *SimulatedClassifier) Classify() FrameClassification {
	return FrameClassification{
		HandVisible: c.rng.Float64() < 0.2,
		LookingAway: c.rng.Float64() < 0.15,
		BadPosture:  c.rng.Float64() < 0.1,
	}
}
