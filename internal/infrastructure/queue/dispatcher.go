package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/updates-app/updates-backend/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrDispatcherStopped is returned by Notify once the workers have shut
// down.
var ErrDispatcherStopped = errors.New("queue: dispatcher stopped")

// Dispatcher delivers password-reset notifications asynchronously through a
// fixed set of workers. Notifications are sharded by email, so multiple
// notifications for the same account are delivered in order.
type Dispatcher struct {
	workers  []chan ports.ResetNotification
	notifier ports.ResetNotifier
	log      zerolog.Logger
	done     chan struct{}
	stop     sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.ResetNotifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.ResetNotification, numWorkers),
		notifier: notifier,
		log:      log,
		done:     make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ResetNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is
// cancelled, after which Notify fails fast instead of blocking on a
// channel nobody drains.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		d.stop.Do(func() { close(d.done) })
	}()
}

// Notify enqueues a notification for asynchronous delivery, satisfying
// ports.ResetNotifier so the dispatcher can sit directly behind the
// password-reset service. Returns ErrDispatcherStopped after shutdown.
func (d *Dispatcher) Notify(_ context.Context, n ports.ResetNotification) error {
	select {
	case <-d.done:
		return ErrDispatcherStopped
	case d.workers[d.shardIndex(n.Email)] <- n:
		return nil
	}
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ResetNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.notifier.Notify(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("email", n.Email).
					Int("worker_id", id).
					Msg("reset notification delivery failed")
			}
		}
	}
}
