package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	t.Parallel()

	t.Run("concurrent callers share one execution", func(t *testing.T) {
		t.Parallel()

		var g SingleFlight
		var executions atomic.Int64

		fn := func() (any, error) {
			executions.Add(1)
			time.Sleep(20 * time.Millisecond)
			return "standings:39", nil
		}

		const callers = 20
		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(callers)
		for i := 0; i < callers; i++ {
			go func() {
				defer wg.Done()
				<-start
				val, err, _ := g.Do("standings:39", fn)
				if err != nil {
					t.Errorf("Do: got=%v want=nil", err)
				}
				if val != "standings:39" {
					t.Errorf("Do value: got=%v want=standings:39", val)
				}
			}()
		}
		close(start)
		wg.Wait()

		if got := executions.Load(); got != 1 {
			t.Fatalf("executions: got=%d want=1", got)
		}
	})

	t.Run("sequential calls run independently", func(t *testing.T) {
		t.Parallel()

		var g SingleFlight
		calls := 0
		fn := func() (any, error) {
			calls++
			return calls, nil
		}

		first, err, shared := g.Do("fixtures:2026-08-30", fn)
		if err != nil || shared {
			t.Fatalf("first call: err=%v shared=%v", err, shared)
		}
		second, err, shared := g.Do("fixtures:2026-08-30", fn)
		if err != nil || shared {
			t.Fatalf("second call: err=%v shared=%v", err, shared)
		}
		if first != 1 || second != 2 {
			t.Fatalf("results: got=%v,%v want=1,2", first, second)
		}
	})
}
