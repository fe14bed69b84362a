package drawpack

import (
	"github.com/gogpu/drawpack/draw"
	"github.com/gogpu/drawpack/internal/parallel"
)

// Job assembles draws on ctx. A job must only touch the Context it is
// given; handles and records it produces belong to that Context.
type Job func(ctx *Context) []draw.Record

// Result is the output of one Job.
type Result struct {
	// Worker is the index of the Context that ran the job.
	Worker  int
	Records []draw.Record
}

// Group assembles jobs in parallel with one Context per worker. Records
// from different workers reference different data stores, so consumers
// group results by Worker before uploading.
type Group struct {
	workers  *parallel.WorkerPool
	contexts []*Context
}

// NewGroup starts a Group with the given number of workers. If workers
// is 0 or negative, GOMAXPROCS is used. Every Context gets opts.
func NewGroup(workers int, opts ...Option) *Group {
	wp := parallel.NewWorkerPool(workers)
	g := &Group{
		workers:  wp,
		contexts: make([]*Context, wp.Workers()),
	}
	for i := range g.contexts {
		g.contexts[i] = NewContext(opts...)
	}
	return g
}

// Workers returns the number of workers.
func (g *Group) Workers() int {
	return len(g.contexts)
}

// Context returns the Context owned by worker i.
func (g *Group) Context(i int) *Context {
	return g.contexts[i]
}

// Assemble runs jobs and returns their results in job order. Which
// worker runs a job is not fixed.
func (g *Group) Assemble(jobs []Job) []Result {
	results := make([]Result, len(jobs))
	work := make([]parallel.Work, len(jobs))
	for i, job := range jobs {
		work[i] = func(worker int) {
			results[i] = Result{Worker: worker, Records: job(g.contexts[worker])}
		}
	}
	g.workers.ExecuteAll(work)
	return results
}

// EndFrame ends the frame on every Context and returns their stats
// indexed by worker.
func (g *Group) EndFrame() []FrameStats {
	stats := make([]FrameStats, len(g.contexts))
	for i, c := range g.contexts {
		stats[i] = c.EndFrame()
	}
	return stats
}

// Close stops the workers. The Group must not be used afterwards.
func (g *Group) Close() {
	g.workers.Close()
}
