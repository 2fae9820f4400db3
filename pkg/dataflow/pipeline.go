package dataflow

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Stream is a read-only channel of messages.
// interface{} keeps the package usable on Go 1.17.
type Stream <-chan interface{}

// From creates a stream from a slice of data.
func From(ctx context.Context, items ...interface{}) Stream {
	out := make(chan interface{}, len(items))
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
		}
	}()
	return out
}

// New wraps an existing channel into a Stream.
func New(c <-chan interface{}) Stream {
	return Stream(c)
}

// Map transforms the stream using the provided function. Items whose
// transform still fails after the configured retries are dropped, after
// passing the error to the handler if one is set. Output order follows
// completion order when running with multiple workers.
func Map(ctx context.Context, input Stream, fn func(interface{}) (interface{}, error), opts ...Option) Stream {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	out := make(chan interface{}, cfg.bufferSize)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}

				var res interface{}
				err := runWithRetry(ctx, cfg, func() error {
					var ferr error
					res, ferr = fn(msg)
					return ferr
				})
				if err != nil {
					if cfg.errorHandler != nil {
						cfg.errorHandler(err)
					}
					continue
				}

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Filter keeps items where fn returns true.
func Filter(ctx context.Context, input Stream, fn func(interface{}) bool, opts ...Option) Stream {
	return Map(ctx, input, func(msg interface{}) (interface{}, error) {
		if fn(msg) {
			return msg, nil
		}
		return nil, errSkip
	}, append(opts, WithErrorHandler(func(err error) bool {
		return errors.Is(err, errSkip)
	}))...)
}

var errSkip = errors.New("skip item")

// ForEach executes an action for every item in the stream. It blocks until
// the stream is exhausted or the context is cancelled, returning the first
// unhandled error.
func ForEach(ctx context.Context, input Stream, fn func(interface{}) error, opts ...Option) error {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}

				err := runWithRetry(ctx, cfg, func() error {
					return fn(msg)
				})
				if err != nil {
					if cfg.errorHandler != nil && cfg.errorHandler(err) {
						continue
					}
					errOnce.Do(func() {
						firstErr = err
					})
				}
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return firstErr
}

// Collect drains the stream into a slice. It blocks until the stream closes
// or the context is cancelled.
func Collect(ctx context.Context, input Stream) []interface{} {
	var items []interface{}
	for {
		select {
		case <-ctx.Done():
			return items
		case msg, ok := <-input:
			if !ok {
				return items
			}
			items = append(items, msg)
		}
	}
}

// runWithRetry runs op, retrying per the stage configuration. The context
// bounds the backoff waits.
func runWithRetry(ctx context.Context, cfg *config, op func() error) error {
	err := op()
	for attempt := 1; err != nil && attempt <= cfg.maxRetries; attempt++ {
		if cfg.backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.backoff(attempt)):
			}
		}
		err = op()
	}
	return err
}
