package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultAsyncBufferSize   = 1024
	defaultAsyncFlushTimeout = 5 * time.Second
)

// AsyncOptions configures the async log pipeline.
type AsyncOptions struct {
	BufferSize   int
	FlushTimeout time.Duration
}

// AsyncHandler wraps a slog.Handler and dispatches records on a background
// goroutine so remote log shipping never blocks message processing.
// Records are dropped, not queued unboundedly, when the buffer is full.
type AsyncHandler struct {
	handler      slog.Handler
	ch           chan queuedRecord
	flushTimeout time.Duration
	closed       *atomic.Bool
	wg           *sync.WaitGroup
	dropped      *atomic.Uint64
}

// queuedRecord carries its own handler so WithAttrs/WithGroup clones
// that share the worker still deliver to the right destination.
type queuedRecord struct {
	ctx     context.Context
	record  slog.Record
	handler slog.Handler
}

// NewAsyncHandler creates an AsyncHandler and starts its worker goroutine.
func NewAsyncHandler(handler slog.Handler, opts AsyncOptions) *AsyncHandler {
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaultAsyncBufferSize
	}
	if opts.FlushTimeout <= 0 {
		opts.FlushTimeout = defaultAsyncFlushTimeout
	}

	h := &AsyncHandler{
		handler:      handler,
		ch:           make(chan queuedRecord, opts.BufferSize),
		flushTimeout: opts.FlushTimeout,
		closed:       &atomic.Bool{},
		wg:           &sync.WaitGroup{},
		dropped:      &atomic.Uint64{},
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *AsyncHandler) run() {
	defer h.wg.Done()
	for q := range h.ch {
		_ = q.handler.Handle(q.ctx, q.record)
	}
}

// Enabled delegates to the wrapped handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle enqueues the record for background processing.
func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.closed.Load() || !h.handler.Enabled(ctx, r.Level) {
		return nil
	}
	select {
	case h.ch <- queuedRecord{ctx: context.WithoutCancel(ctx), record: r.Clone(), handler: h.handler}:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// WithAttrs returns a handler sharing the same worker with attributes applied.
func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.handler = h.handler.WithAttrs(attrs)
	return &clone
}

// WithGroup returns a handler sharing the same worker with the group applied.
func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.handler = h.handler.WithGroup(name)
	return &clone
}

// Dropped reports how many records were discarded due to a full buffer.
func (h *AsyncHandler) Dropped() uint64 {
	return h.dropped.Load()
}

// Shutdown stops accepting records and waits for pending ones to flush,
// bounded by the configured flush timeout when ctx has no deadline.
func (h *AsyncHandler) Shutdown(ctx context.Context) error {
	if h == nil || h.closed.Swap(true) {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.flushTimeout)
		defer cancel()
	}
	close(h.ch)
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
