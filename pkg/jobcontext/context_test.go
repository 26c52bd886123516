package jobcontext

import (
	"context"
	"testing"
	"time"
)

func TestBeginCarriesJobValues(t *testing.T) {
	ctx, cancel := Begin(context.Background(), "sess-1", "user-1", time.Minute)
	defer cancel()

	if id, ok := SessionID(ctx); !ok || id != "sess-1" {
		t.Errorf("SessionID = %q, %v", id, ok)
	}
	if key, ok := UserKey(ctx); !ok || key != "user-1" {
		t.Errorf("UserKey = %q, %v", key, ok)
	}
	start, ok := StartTime(ctx)
	if !ok || time.Since(start) > time.Second {
		t.Errorf("StartTime = %v, %v", start, ok)
	}
}

func TestBeginSurvivesParentCancellation(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := Begin(parent, "sess-1", "user-1", time.Minute)
	defer cancel()

	cancelParent()

	select {
	case <-ctx.Done():
		t.Fatal("job context must not inherit the parent's cancellation")
	default:
	}
}

func TestGettersOnPlainContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := SessionID(ctx); ok {
		t.Error("SessionID on a plain context must report absent")
	}
	if _, ok := UserKey(ctx); ok {
		t.Error("UserKey on a plain context must report absent")
	}
	if _, ok := StartTime(ctx); ok {
		t.Error("StartTime on a plain context must report absent")
	}
}
