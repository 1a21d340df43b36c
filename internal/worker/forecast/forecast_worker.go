package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/usecase"
	"github.com/coverage-analytics/internal/worker"
)

// ErrConsumerClosed is returned by Start when the stream consumer ends while
// the worker was still expected to run.
var ErrConsumerClosed = errors.New("stream consumer closed")

const publishBackoff = 200 * time.Millisecond

// ClaimMinIdle is how long a job must sit unacknowledged before a starting
// worker takes it over.
const ClaimMinIdle = time.Minute

// Worker consumes forecast jobs, runs them and publishes the outcome to the
// done stream.
type Worker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	runner     usecase.ForecastRunner
	maxRetries int
}

func NewWorker(
	streamRepo repository.StreamRepository,
	runner usecase.ForecastRunner,
	consumerGroup string,
	consumerName string,
	maxRetries int,
	logger *zap.Logger,
) *Worker {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Worker{
		BaseWorker: worker.NewBaseWorker("forecast", domain.StreamForecastRequest, consumerGroup, consumerName, logger),
		streamRepo: streamRepo,
		runner:     runner,
		maxRetries: maxRetries,
	}
}

// Start consumes until ctx is cancelled or Stop is called. A job already
// being processed is finished against ctx, not the stop signal.
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting forecast worker",
		zap.String("stream", w.Stream()),
		zap.String("consumer_group", w.ConsumerGroup()))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.reclaim(ctx)

	consumeCtx, cancel := w.RunContext(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, w.Stream(), w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				select {
				case <-w.StopChan():
					return nil
				default:
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return ErrConsumerClosed
			}
			w.handle(ctx, msg)
		}
	}
}

// reclaim replays jobs a previous consumer read but never acknowledged,
// including those whose result could not be published.
func (w *Worker) reclaim(ctx context.Context) {
	pending, err := w.streamRepo.ClaimPending(ctx, w.Stream(), w.ConsumerGroup(), w.ConsumerName(), ClaimMinIdle)
	if err != nil {
		w.Logger().Warn("Skipping pending jobs", zap.Error(err))
		return
	}

	for _, msg := range pending {
		if ctx.Err() != nil {
			return
		}
		select {
		case <-w.StopChan():
			return
		default:
		}
		w.handle(ctx, msg)
	}
}

func (w *Worker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	event, err := parseMessage(msg)
	if err != nil {
		logger.Warn("Skipping malformed forecast job", zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	start := time.Now()
	done := w.runner.RunForecastJob(ctx, event)

	if err := w.publish(ctx, done); err != nil {
		// stays pending; the next worker start reclaims it
		logger.Error("Failed to publish forecast result",
			zap.String("job_id", event.JobID.String()),
			zap.Error(err))
		return
	}
	w.ack(ctx, msg.ID)

	logger.Info("Forecast job processed",
		zap.String("job_id", event.JobID.String()),
		zap.Bool("failed", done.Error != ""),
		zap.Duration("duration", time.Since(start)))
}

func parseMessage(msg domain.StreamMessage) (*domain.ForecastJobEvent, error) {
	if msg.Data == "" {
		return nil, errors.New("message has no data field")
	}
	var event domain.ForecastJobEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	if !event.Validate() {
		return nil, fmt.Errorf("incomplete job: %+v", event)
	}
	return &event, nil
}

func (w *Worker) publish(ctx context.Context, done *domain.ForecastDoneEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.streamRepo.PublishToStream(ctx, domain.StreamForecastDone, done); err == nil {
			return nil
		}
		if attempt == w.maxRetries {
			break
		}
		w.Logger().Warn("Publish failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(publishBackoff * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("after %d attempts: %w", w.maxRetries, err)
}

func (w *Worker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, w.Stream(), w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}
