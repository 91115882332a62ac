package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// OpEvent describes one completed service operation against a board view.
type OpEvent struct {
	Op   string
	View string
	Took time.Duration
	Err  error
	// Extra holds alternating slog key/value pairs specific to the
	// operation, e.g. project and row counts for a board computation.
	Extra []any
}

// OpObserver receives an OpEvent after each instrumented service call,
// whether it succeeded or failed.
type OpObserver interface {
	ObserveOp(ctx context.Context, event OpEvent)
}

// NoopOpObserver discards all events.
type NoopOpObserver struct{}

func (NoopOpObserver) ObserveOp(context.Context, OpEvent) {}

type logOpObserver struct {
	logger *slog.Logger
}

// NewLogOpObserver writes operation events to w as slog text lines.
func NewLogOpObserver(w io.Writer) OpObserver {
	if w == nil {
		return NoopOpObserver{}
	}
	return &logOpObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logOpObserver) ObserveOp(ctx context.Context, event OpEvent) {
	attrs := make([]any, 0, 8+len(event.Extra))
	attrs = append(attrs,
		"op", event.Op,
		"view", event.View,
		"took_ms", event.Took.Milliseconds(),
	)
	attrs = append(attrs, event.Extra...)
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "board_op", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "board_op", attrs...)
}

func opObserverOrNoop(observers []OpObserver) OpObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopOpObserver{}
}
