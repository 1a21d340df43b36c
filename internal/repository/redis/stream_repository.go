package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
)

const (
	defaultBatchSize = 10
	defaultBlock     = time.Second
	readErrorBackoff = time.Second
	payloadField     = "data"
)

// StreamOptions tunes XREADGROUP. Zero values fall back to 10 messages per
// read and a one second block.
type StreamOptions struct {
	BatchSize int
	Block     time.Duration
}

type streamRepository struct {
	client *redis.Client
	opts   StreamOptions
	logger *zap.Logger
}

func NewStreamRepository(client *redis.Client, opts StreamOptions, logger *zap.Logger) repository.StreamRepository {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Block <= 0 {
		opts.Block = defaultBlock
	}
	return &streamRepository{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// CreateConsumerGroup creates the group reading new entries only, creating the
// stream on the way. An existing group is not an error.
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("create consumer group %s on %s: %w", group, stream, err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream delivers undelivered entries of the group on the returned
// channel. The channel is closed once ctx is done.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	out := make(chan domain.StreamMessage, r.opts.BatchSize)

	go func() {
		defer close(out)

		for {
			if ctx.Err() != nil {
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			}

			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    int64(r.opts.BatchSize),
				Block:    r.opts.Block,
			}).Result()
			if err != nil {
				if stderrors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				select {
				case <-time.After(readErrorBackoff):
				case <-ctx.Done():
					return
				}
				continue
			}

			for _, s := range result {
				for _, msg := range s.Messages {
					select {
					case out <- r.toMessage(msg):
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out, nil
}

// ClaimPending walks the group's pending list with XAUTOCLAIM, one batch at a
// time, until the cursor wraps around.
func (r *streamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration) ([]domain.StreamMessage, error) {
	var claimed []domain.StreamMessage
	start := "0-0"
	for {
		messages, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   stream,
			Group:    group,
			Consumer: consumer,
			MinIdle:  minIdle,
			Start:    start,
			Count:    int64(r.opts.BatchSize),
		}).Result()
		if err != nil {
			r.logger.Error("Failed to claim pending messages",
				zap.String("stream", stream),
				zap.String("group", group),
				zap.Error(err))
			return nil, fmt.Errorf("claim pending on %s: %w", stream, err)
		}

		for _, msg := range messages {
			claimed = append(claimed, r.toMessage(msg))
		}
		if next == "0-0" || next == "" || len(messages) == 0 {
			break
		}
		start = next
	}

	if len(claimed) > 0 {
		r.logger.Info("Claimed pending messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Int("count", len(claimed)))
	}
	return claimed, nil
}

// toMessage extracts the payload. Entries without one yield empty Data.
func (r *streamRepository) toMessage(msg redis.XMessage) domain.StreamMessage {
	data, ok := msg.Values[payloadField].(string)
	if !ok {
		r.logger.Warn("Message has no data field",
			zap.String("message_id", msg.ID))
	}
	return domain.StreamMessage{ID: msg.ID, Data: data}
}

func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("ack %s on %s: %w", messageID, stream, err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// PublishToStream appends data as JSON under the "data" field.
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode stream payload: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{payloadField: string(payload)},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("publish to %s: %w", stream, err)
	}

	r.logger.Debug("Message published",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
