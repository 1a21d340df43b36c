package repository

import (
	"context"
	"time"

	"github.com/coverage-analytics/internal/domain"
)

// StreamRepository abstracts Redis Streams.
type StreamRepository interface {
	// ConsumeStream reads messages of a consumer group until ctx is done
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// ClaimPending moves to consumer every entry of the group left
	// unacknowledged for at least minIdle and returns them
	ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration) ([]domain.StreamMessage, error)

	// CreateConsumerGroup creates the group (and stream) if missing
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream publishes a JSON-encoded payload
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
