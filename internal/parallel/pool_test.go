package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]Work, 100)
	for i := range work {
		work[i] = func(int) { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if got := counter.Load(); got != 100 {
		t.Errorf("counter = %d, want 100", got)
	}
}

func TestWorkerPool_WorkerIndex(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	// Each worker's slot is only ever touched by that worker, so the
	// unsynchronized counters below must not race.
	counts := make([]int, pool.Workers())
	var bad atomic.Int64
	work := make([]Work, 300)
	for i := range work {
		work[i] = func(w int) {
			if w < 0 || w >= len(counts) {
				bad.Add(1)
				return
			}
			counts[w]++
		}
	}
	pool.ExecuteAll(work)

	if bad.Load() != 0 {
		t.Fatalf("%d items saw an out-of-range worker index", bad.Load())
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != 300 {
		t.Errorf("total = %d, want 300", total)
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]Work{})
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
	if pool.IsRunning() {
		t.Error("pool running after Close")
	}

	ran := false
	pool.ExecuteAll([]Work{func(int) { ran = true }})
	if ran {
		t.Error("work ran on a closed pool")
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Slow items land on worker 0's queue; the rest must still finish
	// promptly because idle workers steal.
	var mu sync.Mutex
	seen := map[int]bool{}
	work := make([]Work, 16)
	for i := range work {
		slow := i%4 == 0
		work[i] = func(w int) {
			if slow {
				time.Sleep(5 * time.Millisecond)
			}
			mu.Lock()
			seen[w] = true
			mu.Unlock()
		}
	}
	pool.ExecuteAll(work)

	if len(seen) == 0 {
		t.Error("no worker ran any work")
	}
}
