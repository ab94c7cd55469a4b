package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultQueueSize       = 64
	defaultDeliveryTimeout = 2 * time.Second
)

type DispatcherOptions struct {
	QueueSize       int
	DeliveryTimeout time.Duration
	Metrics         *Metrics
}

// Dispatcher fans completions out to its sinks from a single worker.
// Publish never blocks: a full queue or a closed dispatcher drops the event.
type Dispatcher struct {
	log     *zap.Logger
	sinks   []Sink
	timeout time.Duration
	metrics *Metrics

	mu     sync.RWMutex
	closed bool
	queue  chan Completion
	done   chan struct{}
}

func NewDispatcher(log *zap.Logger, opts DispatcherOptions, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = defaultDeliveryTimeout
	}

	d := &Dispatcher{
		log:     log,
		sinks:   sinks,
		timeout: opts.DeliveryTimeout,
		metrics: opts.Metrics,
		queue:   make(chan Completion, opts.QueueSize),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Publish(c Completion) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(c, "closed")
		return
	}

	select {
	case d.queue <- c:
	default:
		d.drop(c, "queue full")
	}
}

// Close stops accepting events, delivers what is queued and waits for the
// worker to exit. Safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) drop(c Completion, reason string) {
	d.metrics.observe("queue", resultDropped)
	d.log.Warn("completion dropped",
		zap.String("reason", reason),
		zap.String("session_id", c.SessionID),
	)
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for c := range d.queue {
		for _, s := range d.sinks {
			d.deliver(s, c)
		}
	}
}

func (d *Dispatcher) deliver(s Sink, c Completion) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	err := safeDeliver(ctx, s, c)
	if err != nil {
		d.metrics.observe(s.Name(), resultFailed)
		d.log.Warn("completion delivery failed",
			zap.String("sink", s.Name()),
			zap.String("session_id", c.SessionID),
			zap.Error(err),
		)
		return
	}

	d.metrics.observe(s.Name(), resultDelivered)
	d.log.Debug("completion delivered",
		zap.String("sink", s.Name()),
		zap.String("session_id", c.SessionID),
	)
}

func safeDeliver(ctx context.Context, s Sink, c Completion) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink %s panicked: %v", s.Name(), r)
		}
	}()
	return s.Deliver(ctx, c)
}
