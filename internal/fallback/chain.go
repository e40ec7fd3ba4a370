// Package fallback runs an ordered list of strategies until one answers,
// then falls through to a terminal function that always does.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrDeclined is returned by a strategy that has no answer for the input.
var ErrDeclined = errors.New("fallback: declined")

// Strategy is one tier of a chain.
type Strategy[I, O any] interface {
	Name() string
	Attempt(ctx context.Context, in I) (O, error)
}

// Func adapts a function to a Strategy.
type Func[I, O any] struct {
	Label string
	Fn    func(ctx context.Context, in I) (O, error)
}

func (f Func[I, O]) Name() string { return f.Label }

func (f Func[I, O]) Attempt(ctx context.Context, in I) (O, error) { return f.Fn(ctx, in) }

// Local is implemented by strategies that answer from memory. They are
// still attempted after ctx is done.
type Local interface {
	Local() bool
}

func isLocal(s any) bool {
	l, ok := s.(Local)
	return ok && l.Local()
}

// Chain tries each strategy in order. Any error or panic from a strategy is
// treated as a decline; the terminal function answers when all decline.
type Chain[I, O any] struct {
	strategies []Strategy[I, O]
	final      func(I) O
	timeout    time.Duration
	logger     *log.Logger
}

// Option configures a Chain.
type Option func(*options)

type options struct {
	timeout time.Duration
	logger  *log.Logger
}

// WithTimeout bounds each strategy attempt. Zero means no bound beyond ctx.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger logs each declined strategy.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds a chain. final must never fail.
func New[I, O any](final func(I) O, strategies []Strategy[I, O], opts ...Option) *Chain[I, O] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Chain[I, O]{
		strategies: strategies,
		final:      final,
		timeout:    o.timeout,
		logger:     o.logger,
	}
}

// Names lists the strategies in order.
func (c *Chain[I, O]) Names() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Run returns the first strategy answer, or final(in). The second result is
// the name of the strategy that answered, or "" for the terminal function.
// Once ctx is done only Local strategies are attempted.
func (c *Chain[I, O]) Run(ctx context.Context, in I) (O, string) {
	for _, s := range c.strategies {
		if ctx.Err() != nil && !isLocal(s) {
			continue
		}
		out, err := c.attempt(ctx, s, in)
		if err == nil {
			return out, s.Name()
		}
		if c.logger != nil && !errors.Is(err, ErrDeclined) {
			c.logger.Printf("%s tier declined: %v", s.Name(), err)
		}
	}
	return c.final(in), ""
}

func (c *Chain[I, O]) attempt(ctx context.Context, s Strategy[I, O], in I) (out O, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero O
			out, err = zero, fmt.Errorf("fallback: %s panicked: %v", s.Name(), r)
		}
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return s.Attempt(ctx, in)
}
