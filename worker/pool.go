package worker

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrStopped is returned when a job is enqueued on a pool that is no longer accepting jobs.
var ErrStopped = errors.New("worker pool stopped")

// Pool provides a set of workers for executing functions
type Pool struct {
	jobs       chan func() error
	completion chan struct{}
	workers    int

	mtx     sync.Mutex // guards started, stopped and sends on jobs
	started bool
	stopped bool

	errMtx sync.Mutex
	errs   []error
}

// NewPool creates a pool with the specified number of workers.
// The pool will not begin accepting jobs until Start() is called.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers: workers,
	}
}

// Start initializes the Pool to begin accepting and running jobs.
func (p *Pool) Start() {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	if p.started {
		return
	}
	p.started = true
	p.jobs = make(chan func() error)
	p.completion = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(p.workers)
	for w := 1; w <= p.workers; w++ {
		go p.worker(&wg)
	}

	go func() {
		wg.Wait()
		close(p.completion)
	}()
}

// Enqueue adds a job to the pool, blocking until a worker picks it up.
func (p *Pool) Enqueue(job func() error) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	if !p.started || p.stopped {
		return ErrStopped
	}
	p.jobs <- job
	return nil
}

// Stop prevents this pool from accepting new jobs.
func (p *Pool) Stop() {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	if !p.started || p.stopped {
		return
	}
	p.stopped = true
	close(p.jobs)
}

// Complete returns a channel that will be closed when all workers have finished
func (p *Pool) Complete() <-chan struct{} {
	return p.completion
}

// Errors returns the errors returned by jobs run so far, in completion order.
func (p *Pool) Errors() []error {
	p.errMtx.Lock()
	defer p.errMtx.Unlock()
	return append([]error(nil), p.errs...)
}

func (p *Pool) worker(wg *sync.WaitGroup) {
	defer wg.Done()
	for j := range p.jobs {
		if err := p.run(j); err != nil {
			p.errMtx.Lock()
			p.errs = append(p.errs, err)
			p.errMtx.Unlock()
		}
	}
}

func (p *Pool) run(job func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("job panicked: %v", r)
		}
	}()
	return job()
}
