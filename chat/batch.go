package chat

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Answer is the outcome of one question in a batch.
type Answer struct {
	Question string
	Reply    string
	Err      error
}

// Batch answers many independent questions concurrently on a worker pool.
type Batch struct {
	handler  *Handler
	pool     *ants.Pool
	progress io.Writer
	logger   *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch) error

// WithPoolSize sets the number of concurrent workers.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) BatchOption {
	return func(b *Batch) error {
		if size < 1 {
			size = 1
		}

		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithProgress writes progress to w as questions are answered.
func WithProgress(w io.Writer) BatchOption {
	return func(b *Batch) error {
		b.progress = w
		return nil
	}
}

// WithBatchLogger sets a custom logger.
// Default is slog.Default().
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBatch creates a batch answerer backed by handler.
// Call Release when done.
func NewBatch(handler *Handler, opts ...BatchOption) (*Batch, error) {
	if handler == nil {
		return nil, ErrHandlerRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Batch{
		handler: handler,
		pool:    pool,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}
	b.logger = b.logger.With("component", "batch")

	return b, nil
}

// Answer responds to every question. Answers are returned in input order.
// A failure answering one question is recorded in its Answer and does not
// affect the others.
func (b *Batch) Answer(ctx context.Context, questions []string) []Answer {
	answers := make([]Answer, len(questions))
	if len(questions) == 0 {
		return answers
	}

	var tracker *ProgressTracker
	if b.progress != nil {
		tracker = NewProgressTracker(b.progress, len(questions), 1)
		tracker.Start()
	}

	var wg sync.WaitGroup
	for i, question := range questions {
		answers[i].Question = question
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			reply, err := b.handler.Respond(ctx, question, nil)
			answers[i].Reply = reply
			answers[i].Err = err
			if err != nil {
				b.logger.Error("error answering question", "index", i, "err", err)
			}
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if err != nil {
			answers[i].Err = err
			wg.Done()
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
		b.logger.Debug("batch answered", "questions", len(questions), "elapsed", tracker.Elapsed())
	}
	return answers
}

// Release releases the worker pool. The batch should not be used afterwards.
func (b *Batch) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
