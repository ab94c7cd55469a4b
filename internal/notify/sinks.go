package notify

import (
	"context"

	"go.uber.org/zap"
)

type funcSink struct {
	name string
	fn   func(ctx context.Context, c Completion) error
}

// Func adapts a callback into a Sink.
func Func(name string, fn func(ctx context.Context, c Completion) error) Sink {
	return funcSink{name: name, fn: fn}
}

func (s funcSink) Name() string { return s.name }

func (s funcSink) Deliver(ctx context.Context, c Completion) error {
	return s.fn(ctx, c)
}

// ChanSink sends completions to a channel, giving up when ctx expires.
type ChanSink struct {
	ch chan<- Completion
}

func NewChanSink(ch chan<- Completion) *ChanSink {
	return &ChanSink{ch: ch}
}

func (s *ChanSink) Name() string { return "chan" }

func (s *ChanSink) Deliver(ctx context.Context, c Completion) error {
	select {
	case s.ch <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) Name() string { return "log" }

func (s LogSink) Deliver(_ context.Context, c Completion) error {
	s.Log.Info("block completion",
		zap.String("type", c.Type),
		zap.String("block_id", c.BlockID),
		zap.Bool("completed", c.Completed),
		zap.String("first_purchase", c.Data.FirstPurchase),
		zap.String("session_id", c.SessionID),
		zap.Time("at", c.At),
	)
	return nil
}
