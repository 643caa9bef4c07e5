// Package workers runs row-oriented pixel work on a fixed set of goroutines.
package workers

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines with one queue each. An idle worker
// steals from the other queues before blocking on its own.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
	next    atomic.Uint32
}

// New starts a pool with the given number of workers. Zero or negative
// means GOMAXPROCS.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.loop(i)
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Running reports whether the pool still accepts work.
func (p *Pool) Running() bool { return p.running.Load() }

func (p *Pool) loop(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
			continue
		default:
		}
		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case fn := <-p.queues[(id+i)%p.workers]:
			return fn
		default:
		}
	}
	return nil
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

// submit queues fn round-robin. It reports false once the pool is closed.
func (p *Pool) submit(fn func()) bool {
	if !p.running.Load() {
		return false
	}
	q := p.queues[int(p.next.Add(1))%p.workers]
	select {
	case q <- fn:
		return true
	case <-p.done:
		return false
	}
}

// Rows calls fn for every row in [0, n) and waits for all of them. Rows are
// handed out in contiguous bands. Once ctx is done no further rows start
// and Rows returns ctx.Err(). A closed pool runs the rows on the caller's
// goroutine.
func (p *Pool) Rows(ctx context.Context, n int, fn func(row int)) error {
	if n <= 0 {
		return ctx.Err()
	}
	bands := min(n, p.workers*4)
	size := (n + bands - 1) / bands

	var wg sync.WaitGroup
	band := func(lo, hi int) {
		defer wg.Done()
		for y := lo; y < hi; y++ {
			if ctx.Err() != nil {
				return
			}
			fn(y)
		}
	}
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		wg.Add(1)
		if !p.submit(func() { band(lo, hi) }) {
			band(lo, hi)
		}
	}
	wg.Wait()
	return ctx.Err()
}

// Close stops the workers after the queued work finishes. It is safe to
// call more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
