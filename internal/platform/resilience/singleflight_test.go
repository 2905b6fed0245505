package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var sf SingleFlight
	var executions atomic.Int32
	release := make(chan struct{})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]any, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			val, err, _ := sf.Do("teams:first-page", func() (any, error) {
				executions.Add(1)
				<-release
				return "snapshot", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[idx] = val
		}(i)
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected 1 execution, got %d", got)
	}
	for i, val := range results {
		if val != "snapshot" {
			t.Fatalf("caller %d got %v", i, val)
		}
	}
}

func TestSingleFlight_KeyResetsAfterCompletion(t *testing.T) {
	t.Parallel()

	var sf SingleFlight
	var executions atomic.Int32

	for i := 0; i < 3; i++ {
		if _, err, _ := sf.Do("k", func() (any, error) {
			executions.Add(1)
			return nil, nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := executions.Load(); got != 3 {
		t.Fatalf("expected 3 sequential executions, got %d", got)
	}
}
