// Package parallel runs work items on a fixed set of worker goroutines.
//
// Every item learns the index of the worker running it, so state owned
// by a worker (one assembly context each) is never touched by two
// goroutines at once.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Work is a work item. worker is the index of the goroutine running it,
// in [0, Workers()).
type Work func(worker int)

// WorkerPool is a pool of goroutines with per-worker queues. Workers
// steal from other queues when their own is empty.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan Work
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers. If
// workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan Work, workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan Work, queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drain(id, own)
			return
		case work := <-own:
			work(id)
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen(id)
				continue
			}
			select {
			case <-p.done:
				p.drain(id, own)
				return
			case work := <-own:
				work(id)
			}
		}
	}
}

func (p *WorkerPool) drain(id int, queue chan Work) {
	for {
		select {
		case work := <-queue:
			work(id)
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) Work {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin and waits for every item. It
// does nothing on a closed pool.
func (p *WorkerPool) ExecuteAll(work []Work) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		wrapped := func(worker int) {
			defer wg.Done()
			fn(worker)
		}
		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			wg.Done()
		}
	}
	wg.Wait()
}

// Close stops the pool after the queued work has run. It is safe to call
// more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
