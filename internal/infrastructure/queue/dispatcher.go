package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/platformkit/identity-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes login-activity records to a fixed set of workers using
// consistent hashing on the user id, guaranteeing per-identity ordering of
// last-login writes while keeping the login path non-blocking.
type Dispatcher struct {
	workers []chan ports.LoginActivity
	sink    ports.ActivitySink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.ActivitySink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.LoginActivity, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.LoginActivity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an activity record to the worker responsible for its user.
// When the worker's buffer is full the record is dropped with a warning;
// activity is best-effort bookkeeping and must never stall a login.
func (d *Dispatcher) Enqueue(activity ports.LoginActivity) {
	select {
	case d.workers[d.shardIndex(activity.UserID)] <- activity:
	default:
		d.log.Warn().Str("user_id", activity.UserID).Msg("activity buffer full, record dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.LoginActivity) {
	for {
		select {
		case <-ctx.Done():
			return
		case activity, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Record(ctx, activity); err != nil {
				d.log.Error().Err(err).
					Int("worker_id", id).
					Str("user_id", activity.UserID).
					Msg("login activity record failed")
			}
		}
	}
}
