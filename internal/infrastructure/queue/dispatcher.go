package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zerotrace/smart-facility/internal/api/metrics"
	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher delivers activity events to the activity repository on a fixed
// set of workers. Events for the same entity always land on the same worker,
// so they are written in the order they were recorded.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	repo    ports.ActivityRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers exit when ctx is cancelled or
// after Close has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record queues e for delivery. It never blocks: when the worker channel is
// full, or the dispatcher is closed, the event is dropped and counted.
func (d *Dispatcher) Record(e domain.ActivityEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.ActivityDroppedTotal.Inc()
		return
	}

	idx := d.shardIndex(e.EntityType, e.EntityID)
	select {
	case d.workers[idx] <- e:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().Str("entity", e.EntityType).Uint("entity_id", e.EntityID).Msg("activity queue full, event dropped")
	}
}

// Close stops accepting events and waits until queued events are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps an entity deterministically to a worker index.
func (d *Dispatcher) shardIndex(entityType string, entityID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entityType))
	_, _ = h.Write([]byte(strconv.FormatUint(uint64(entityID), 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(ctx, id, e)
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, workerID int, e domain.ActivityEvent) {
	// Writes during Close run after the serve context is gone.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	start := time.Now()
	err := d.repo.Insert(writeCtx, &e)
	result := "ok"
	if err != nil {
		result = "error"
		d.log.Error().Err(err).
			Str("entity", e.EntityType).
			Uint("entity_id", e.EntityID).
			Int("worker_id", workerID).
			Msg("activity write failed")
	}
	metrics.ActivityWriteDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
