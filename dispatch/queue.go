package dispatch

import (
	"context"
	"sync"

	"github.com/mobile-next/remotepad/stroke"
	"github.com/mobile-next/remotepad/utils"
)

// DefaultQueueSize bounds how many batches may wait for a slow backend.
const DefaultQueueSize = 32

type batch struct {
	surfaceID string
	strokes   []stroke.Stroke
}

// QueuedInjector decouples the touch thread from a slow injector. Batches are
// delivered in order by one worker; when the queue is full the newest batch is
// dropped, since a late gesture is worse than a missing one.
type QueuedInjector struct {
	next  Injector
	queue chan batch

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewQueuedInjector(next Injector, size int) *QueuedInjector {
	if size <= 0 {
		size = DefaultQueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &QueuedInjector{
		next:   next,
		queue:  make(chan batch, size),
		ctx:    ctx,
		cancel: cancel,
	}

	q.wg.Add(1)
	go q.run()
	return q
}

// Inject enqueues the batch and returns immediately.
func (q *QueuedInjector) Inject(_ context.Context, surfaceID string, strokes []stroke.Stroke) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	select {
	case q.queue <- batch{surfaceID: surfaceID, strokes: strokes}:
	default:
		utils.Verbose("Injection queue full, dropping %d strokes for %s", len(strokes), surfaceID)
	}
	return nil
}

// Close drains pending batches and stops the worker.
func (q *QueuedInjector) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.queue)
	q.mu.Unlock()

	q.wg.Wait()
	q.cancel()
}

func (q *QueuedInjector) run() {
	defer q.wg.Done()

	for b := range q.queue {
		if err := q.next.Inject(q.ctx, b.surfaceID, b.strokes); err != nil {
			utils.Warn("Failed to inject %d strokes on surface %s: %v", len(b.strokes), b.surfaceID, err)
		}
	}
}
