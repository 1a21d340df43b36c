package worker

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// BaseWorker holds what every stream consumer shares: its identity in the
// consumer group and the stop signal.
type BaseWorker struct {
	name          string
	stream        string
	consumerGroup string
	consumerName  string
	logger        *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewBaseWorker builds a BaseWorker. An empty consumerName defaults to
// hostname-pid so replicas never share a pending entries list.
func NewBaseWorker(name, stream, consumerGroup, consumerName string, logger *zap.Logger) *BaseWorker {
	if consumerName == "" {
		consumerName = DefaultConsumerName()
	}
	return &BaseWorker{
		name:          name,
		stream:        stream,
		consumerGroup: consumerGroup,
		consumerName:  consumerName,
		logger: logger.With(
			zap.String("worker", name),
			zap.String("consumer", consumerName),
		),
		stopChan: make(chan struct{}),
	}
}

// DefaultConsumerName returns hostname-pid.
func DefaultConsumerName() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "worker"
	}
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}

func (w *BaseWorker) Name() string {
	return w.name
}

func (w *BaseWorker) Stream() string {
	return w.stream
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

func (w *BaseWorker) ConsumerName() string {
	return w.consumerName
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// Stop signals the worker loop to return. Safe to call more than once.
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopChan)
	})
	return nil
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// RunContext derives a context that is cancelled by Stop as well as by the
// parent.
func (w *BaseWorker) RunContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-w.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
