package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlight_Do(t *testing.T) {
	var g Flight[string]
	var counter int32
	var sharedCount atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			value, err, shared := g.Do("scorecard:m1:4", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || value != "ok" {
				t.Errorf("flight call failed: value=%q err=%v", value, err)
			}
			if shared {
				sharedCount.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if sharedCount.Load() != workers-1 {
		t.Fatalf("expected %d shared results, got %d", workers-1, sharedCount.Load())
	}
}
