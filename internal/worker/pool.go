package worker

import (
	"sync"

	"github.com/suicart/escrow-backend/internal/metrics"
)

type task func()

// Pool runs fire-and-forget jobs on a fixed number of goroutines.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
				job()
			}
		}()
	}
	return p
}

// Submit enqueues f, blocking while the queue is full.
func (p *Pool) Submit(f func()) {
	p.jobs <- f
	metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
}

// Stop drains queued jobs and waits for them to finish. Submit must not be called afterwards.
func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
