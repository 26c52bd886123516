package interview

import (
	"sync"
	"sync/atomic"
	"testing"

	apperrors "github.com/interview-coach-team/interview-coach/errors"
)

func TestStoreCreateGetRemove(t *testing.T) {
	st := NewStore()
	s := &ActiveSession{}

	if err := st.Create("user-1", s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got, ok := st.Get("user-1"); !ok || got != s {
		t.Error("Get did not return the created session")
	}
	if st.Len() != 1 {
		t.Errorf("Len = %d, want 1", st.Len())
	}

	st.Remove("user-1")
	if _, ok := st.Get("user-1"); ok {
		t.Error("session still present after Remove")
	}
}

func TestStoreSecondCreateConflicts(t *testing.T) {
	st := NewStore()
	if err := st.Create("user-1", &ActiveSession{}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := st.Create("user-1", &ActiveSession{})
	if !apperrors.IsCode(err, apperrors.ErrorCode_SESSION_ALREADY_ACTIVE) {
		t.Errorf("err = %v, want SESSION_ALREADY_ACTIVE", err)
	}
}

func TestStoreConcurrentCreateOneWinner(t *testing.T) {
	st := NewStore()
	const n = 64

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := st.Create("user-1", &ActiveSession{}); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("%d creates won, want exactly 1", wins.Load())
	}
	if st.Len() != 1 {
		t.Errorf("Len = %d, want 1", st.Len())
	}
}

func TestStoreDrainEmptiesStore(t *testing.T) {
	st := NewStore()
	st.Create("a", &ActiveSession{})
	st.Create("b", &ActiveSession{})

	drained := st.Drain()
	if len(drained) != 2 {
		t.Errorf("drained %d sessions, want 2", len(drained))
	}
	if st.Len() != 0 {
		t.Errorf("Len = %d after Drain, want 0", st.Len())
	}
}
