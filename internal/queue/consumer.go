package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"eurekastreams-backend/internal/domain"
	"eurekastreams-backend/internal/logger"
)

type Source interface {
	Dequeue(ctx context.Context) (*domain.NotificationRequest, error)
}

// Handler processes one request. It is the signature of
// NotificationService.CreateNotifications.
type Handler func(ctx context.Context, req *domain.NotificationRequest) (bool, error)

// Consumer feeds queued requests to a handler from a fixed number of goroutines.
type Consumer struct {
	source  Source
	handle  Handler
	workers int
	backoff time.Duration
}

func NewConsumer(source Source, handle Handler, workers int) *Consumer {
	if workers < 1 {
		workers = 1
	}
	return &Consumer{source: source, handle: handle, workers: workers, backoff: time.Second}
}

// Run blocks until ctx is cancelled and every worker has returned.
func (c *Consumer) Run(ctx context.Context) {
	logger.Info("Notification consumer started", "workers", c.workers)
	var wg sync.WaitGroup
	for i := range c.workers {
		wg.Go(func() { c.work(ctx, i) })
	}
	wg.Wait()
	logger.Info("Notification consumer stopped")
}

func (c *Consumer) work(ctx context.Context, worker int) {
	for ctx.Err() == nil {
		req, err := c.source.Dequeue(ctx)
		switch {
		case ctx.Err() != nil:
			return
		case errors.Is(err, ErrMalformed):
			logger.Error("Dropping notification request", "worker", worker, "error", err)
			continue
		case err != nil:
			logger.Error("Failed to read notification queue", "worker", worker, "error", err)
			c.sleep(ctx)
			continue
		case req == nil:
			continue
		}
		c.process(ctx, worker, req)
	}
}

// process runs the handler and keeps a panic in one request from stopping the
// worker.
func (c *Consumer) process(ctx context.Context, worker int, req *domain.NotificationRequest) {
	ctx = logger.WithFields(ctx, "worker", worker, "request_type", req.Type, "attempt_id", uuid.NewString())
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Notification request panicked", "panic", r)
		}
	}()

	enabled, err := c.handle(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create notifications", "error", err)
		return
	}
	logger.DebugContext(ctx, "Notification request processed", "enabled", enabled)
}

func (c *Consumer) sleep(ctx context.Context) {
	t := time.NewTimer(c.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
