// Package loader drives background slab loading: turning a requested
// chunk/slice range into a dispatched batch of per-slab jobs, running
// terrain generation and area discovery off the caller's goroutine, and
// surfacing results and completion events for a caller to drain on its own
// schedule. It deliberately knows nothing about chunk storage or the world
// graph — installing a loaded slab and wiring it into the navigation graph
// is the world package's job, kept out of here to avoid an import cycle
// (world imports loader, chunk, and nav/graph; loader must not import any
// of those back).
package loader

import (
	"context"
	"sync"

	"voxelworld/internal/coords"
	"voxelworld/internal/terrainsource"
)

// Config bounds a Loader's concurrency and backpressure.
type Config struct {
	Workers        int
	MaxQueueDepth  int // 0 means unbounded
	ResultCapacity int // buffer size for the results channel
}

// DefaultConfig matches the teacher's terrain worker pool's default sizing:
// one goroutine per configured worker count, with the count chosen by the
// caller. World does not use it: it builds its Config from
// config.LoaderConfig.
func DefaultConfig(workers int) Config {
	return Config{Workers: workers, MaxQueueDepth: 4096, ResultCapacity: 256}
}

// Loader owns the request queue, batch bookkeeping, and worker pool for
// background slab loading. All public methods are safe for concurrent use.
type Loader struct {
	source    terrainsource.Source
	neighbors NeighborLookup

	mu      sync.Mutex
	queue   *requestQueue
	batches *BatchTracker

	jobs    chan request
	results chan Result
	wake    chan struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoader starts cfg.Workers background goroutines pulling from the
// internal job queue, running source.LoadSlab and area discovery for each
// requested slab, plus one dispatcher goroutine that feeds the queue into
// the workers. Call Close to stop them all.
func NewLoader(ctx context.Context, source terrainsource.Source, neighbors NeighborLookup, cfg Config) *Loader {
	workerCtx, cancel := context.WithCancel(ctx)
	l := &Loader{
		source:    source,
		neighbors: neighbors,
		queue:     newRequestQueue(cfg.MaxQueueDepth),
		batches:   NewBatchTracker(),
		jobs:      make(chan request),
		results:   make(chan Result, cfg.ResultCapacity),
		wake:      make(chan struct{}, 1),
		cancel:    cancel,
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	l.wg.Add(workers + 1)
	for i := 0; i < workers; i++ {
		go func() {
			defer l.wg.Done()
			worker(workerCtx, l.source, l.neighbors, l.jobs, l.results)
		}()
	}
	go func() {
		defer l.wg.Done()
		l.dispatchLoop(workerCtx)
	}()

	return l
}

// dispatchLoop feeds queued requests into the job channel one at a time,
// waking whenever RequestLoad adds new work. It runs on its own goroutine
// so that a send blocked waiting for a free worker never holds l.mu.
func (l *Loader) dispatchLoop(ctx context.Context) {
	for {
		l.mu.Lock()
		req, ok := l.queue.pop()
		l.mu.Unlock()

		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-l.wake:
			}
			continue
		}

		select {
		case l.jobs <- req:
		case <-ctx.Done():
			return
		}
	}
}

// RequestLoad enqueues every slab location in locs as one batch at the
// given priority (higher runs first) and returns its id. Locations already
// pending or in flight are silently folded into the existing work rather
// than duplicated (§8's load idempotence). Returns errBusy if the queue is
// at capacity, the §7 LoaderBusy condition.
func (l *Loader) RequestLoad(locs []coords.SlabLocation, priority int) (BatchID, error) {
	l.mu.Lock()
	id := l.batches.Begin(locs)
	err := l.queue.enqueue(locs, id, priority)
	l.mu.Unlock()

	if err != nil {
		l.mu.Lock()
		l.batches.Cancel(id)
		l.mu.Unlock()
		return 0, err
	}

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return id, nil
}

// Results returns the channel of completed (or failed) slab jobs. The
// world package's finalizer owns draining this channel; installing the
// slab, fixing up occlusion, and updating the navigation graph all happen
// there before ReportSuccess/ReportFailure are called.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// ReportSuccess records that a slab's result has been fully finalized by
// the caller, releasing it from in-flight tracking and returning the
// public events (slab loaded, and batch complete if this was the batch's
// last slab) to surface via PollLoadEvents.
func (l *Loader) ReportSuccess(r Result) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.queue.release(r.Loc)
	events := []Event{{Kind: EventSlabLoaded, Loc: r.Loc, Batch: r.BatchID}}
	if l.batches.Report(r.BatchID, r.Loc) {
		events = append(events, Event{Kind: EventBatchComplete, Batch: r.BatchID})
	}
	return events
}

// ReportFailure records a slab load failure, releasing it from in-flight
// tracking and returning the public events.
func (l *Loader) ReportFailure(r Result) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.queue.release(r.Loc)
	events := []Event{{Kind: EventSlabFailed, Loc: r.Loc, Batch: r.BatchID, Err: r.Err}}
	if l.batches.Report(r.BatchID, r.Loc) {
		events = append(events, Event{Kind: EventBatchComplete, Batch: r.BatchID})
	}
	return events
}

// CancelBatch drops bookkeeping for a batch; any in-flight results for its
// slabs still arrive on Results and must still be finalized and installed,
// they just won't produce an EventBatchComplete for this id.
func (l *Loader) CancelBatch(id BatchID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.batches.Cancel(id)
}

// QueueDepth reports how many requests are pending dispatch.
func (l *Loader) QueueDepth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.len()
}

// Close stops all worker goroutines and waits for in-flight jobs to
// finish. The Loader must not be used afterward.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}
