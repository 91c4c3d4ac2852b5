package messaging

import (
	"context"
	"encoding/json"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/domain/event"
	applog "jobboard/internal/pkg/logger"

	kgo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventHandler is satisfied by the Notifier.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev event.Event) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kgo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

type Consumer struct {
	reader  messageReader
	handler EventHandler
	logger  *zap.Logger
	backoff time.Duration
}

func NewConsumer(cfg config.KafkaConfig, h EventHandler, logger *zap.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	r := kgo.NewReader(kgo.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
	return newConsumer(r, h, logger), nil
}

func newConsumer(r messageReader, h EventHandler, logger *zap.Logger) *Consumer {
	return &Consumer{reader: r, handler: h, logger: applog.OrNop(logger), backoff: time.Second}
}

// Run handles messages until ctx is done. Every message is committed after
// one attempt; a failed event is logged and not retried.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		_ = c.reader.Close()
	}()

	c.logger.Info("kafka consumer started")
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("kafka consumer shutting down")
				return nil
			}
			c.logger.Warn("kafka fetch failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}

		c.handle(ctx, m)

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Warn("kafka commit failed", zap.Int64("offset", m.Offset), zap.Error(err))
		}
	}
}

func (c *Consumer) handle(ctx context.Context, m kgo.Message) {
	var ev event.Event
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		c.logger.Warn("dropping undecodable event",
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
			zap.String("value", applog.Truncate(string(m.Value), 200)),
			zap.Error(err),
		)
		return
	}
	if err := c.handler.HandleEvent(ctx, ev); err != nil {
		c.logger.Error("event handling failed",
			zap.String("action", string(ev.Action)),
			zap.Int64("offset", m.Offset),
			zap.Error(err),
		)
	}
}
