// Package realtime turns change notifications from the pub/sub channel into
// cache invalidations. Notifications are never applied as data; they only
// make the next read recompute.
package realtime

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gatepay/merchant-onboarding/internal/api/metrics"
	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the owner identity, so one identity's notifications are applied
// in order.
type Dispatcher struct {
	workers      []chan domain.ChangeNotification
	invalidators []ports.Invalidator
	log          zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers that
// forward every notification to each invalidator.
func NewDispatcher(numWorkers int, log zerolog.Logger, invalidators ...ports.Invalidator) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:      make([]chan domain.ChangeNotification, numWorkers),
		invalidators: invalidators,
		log:          log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ChangeNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands n to the worker responsible for its owner. It blocks once that
// worker's buffer is full.
func (d *Dispatcher) Enqueue(n domain.ChangeNotification) {
	idx := d.shardIndex(n.OwnerIdentityID)
	d.workers[idx] <- n
	metrics.InvalidationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an owner id deterministically to a worker index.
// Collection-wide notifications (empty owner) always land on worker 0.
func (d *Dispatcher) shardIndex(ownerID string) int {
	if ownerID == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ChangeNotification) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.InvalidationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			metrics.RealtimeNotificationsTotal.WithLabelValues(n.Collection).Inc()
			for _, inv := range d.invalidators {
				inv.Invalidate(n)
			}
			d.log.Debug().
				Str("collection", n.Collection).
				Str("owner_identity_id", n.OwnerIdentityID).
				Int("worker_id", id).
				Msg("cache invalidated")
		}
	}
}
