// Package analytics ingests funnel events asynchronously and aggregates them
// into the onboarding funnel report.
package analytics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/model"
)

var (
	eventsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealth_funnel_events_total",
		Help: "Funnel events accepted by the dispatcher, by event type.",
	}, []string{"event_type"})

	eventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wealth_funnel_events_dropped_total",
		Help: "Funnel events dropped because the dispatch buffer was full.",
	})

	eventsFlushed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wealth_funnel_events_flushed_total",
		Help: "Funnel events written to the store.",
	})
)

// Sink persists a batch of funnel events. Satisfied by store.Store.
type Sink interface {
	InsertFunnelEvents(ctx context.Context, events []model.FunnelEvent) (int64, error)
}

const (
	defaultBufferSize    = 4096
	defaultBatchSize     = 100
	defaultFlushInterval = 2 * time.Second
	flushTimeout         = 10 * time.Second
)

// Dispatcher accepts events without blocking the request path and flushes
// them to the sink in batches. Events are best effort: a full buffer drops,
// and sink failures are logged and swallowed, never surfaced to callers.
type Dispatcher struct {
	sink          Sink
	ch            chan model.FunnelEvent
	done          chan struct{}
	batchSize     int
	flushInterval time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithBufferSize sets the in-memory event buffer capacity.
func WithBufferSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.ch = make(chan model.FunnelEvent, n)
		}
	}
}

// WithBatchSize sets the max events per flush.
func WithBatchSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.batchSize = n
		}
	}
}

// WithFlushInterval sets how often a partial batch is flushed.
func WithFlushInterval(interval time.Duration) Option {
	return func(d *Dispatcher) {
		if interval > 0 {
			d.flushInterval = interval
		}
	}
}

// NewDispatcher starts the background flusher. Call Close to drain.
func NewDispatcher(sink Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sink:          sink,
		ch:            make(chan model.FunnelEvent, defaultBufferSize),
		done:          make(chan struct{}),
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	go d.run()
	return d
}

// Emit enqueues an event, dropping it when the buffer is full. Implements
// onboarding.Emitter.
func (d *Dispatcher) Emit(ev model.FunnelEvent) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	select {
	case d.ch <- ev:
		eventsIngested.WithLabelValues(string(ev.Type)).Inc()
	default:
		eventsDropped.Inc()
	}
}

// Close flushes buffered events and stops the flusher.
func (d *Dispatcher) Close() {
	close(d.ch)
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	ticker := time.NewTicker(d.flushInterval)
	defer ticker.Stop()

	batch := make([]model.FunnelEvent, 0, d.batchSize)
	for {
		select {
		case ev, ok := <-d.ch:
			if !ok {
				d.flush(batch)
				return
			}
			batch = append(batch, ev)
			if len(batch) >= d.batchSize {
				d.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				d.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (d *Dispatcher) flush(batch []model.FunnelEvent) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	n, err := d.sink.InsertFunnelEvents(ctx, batch)
	if err != nil {
		// Analytics is best effort. Losing a batch is acceptable.
		zap.L().Debug("analytics: flush failed",
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
		return
	}
	eventsFlushed.Add(float64(n))
}
