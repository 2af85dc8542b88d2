package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/api/metrics"
	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
	publishTimeout = 5 * time.Second
)

var ErrDispatcherClosed = errors.New("event dispatcher closed")

// Dispatcher decouples request handling from the broker. Events are routed to
// a fixed set of workers using consistent hashing on the aggregate ID, which
// preserves publish order per user or project.
type Dispatcher struct {
	workers []chan domain.Event
	sink    ports.EventPublisher
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Event, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Event, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Close has drained
// their channel.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Publish enqueues evt on the worker responsible for its aggregate. It blocks
// while that worker's channel is full, until ctx is done.
func (d *Dispatcher) Publish(ctx context.Context, evt domain.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.EventsDroppedTotal.WithLabelValues("closed").Inc()
		return ErrDispatcherClosed
	}

	idx := d.shardIndex(evt.AggregateID)
	select {
	case d.workers[idx] <- evt:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-ctx.Done():
		metrics.EventsDroppedTotal.WithLabelValues("timeout").Inc()
		return ctx.Err()
	}
}

// Close stops accepting events and waits until queued events are published
// or ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an aggregate ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(aggregateID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(aggregateID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.Event) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for evt := range ch {
		metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		start := time.Now()
		err := d.sink.Publish(ctx, evt)
		cancel()

		result := "ok"
		if err != nil {
			result = "error"
			d.log.Error().Err(err).
				Str("event_type", evt.Type).
				Str("aggregate_id", evt.AggregateID).
				Int("worker_id", id).
				Msg("event publish failed")
		}
		metrics.EventPublishDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		metrics.EventsPublishedTotal.WithLabelValues(evt.Type, result).Inc()
	}
}
