package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/domain/event"

	kgo "github.com/segmentio/kafka-go"
)

var ErrNoBrokers = errors.New("kafka: no brokers configured")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

// Producer publishes notification events to the events topic. It is an
// event emitter for deployments where the Notifier runs as a consumer.
type Producer struct {
	w messageWriter
}

func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	w := &kgo.Writer{
		Addr:         kgo.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kgo.Hash{},
		RequiredAcks: kgo.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Producer{w: w}, nil
}

// Emit writes ev synchronously. Events for the same recipient share a key
// and land on the same partition.
func (p *Producer) Emit(ctx context.Context, ev event.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kgo.Message{
		Key:   []byte(partitionKey(ev)),
		Value: b,
		Time:  time.Now(),
		Headers: []kgo.Header{
			{Key: "action", Value: []byte(ev.Action)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *Producer) Close() error { return p.w.Close() }

func partitionKey(ev event.Event) string {
	switch ev.Action {
	case event.ActionJobMatch:
		var d event.JobMatchData
		if ev.Decode(&d) == nil && d.CandidateID != "" {
			return d.CandidateID
		}
	case event.ActionApplicationUpdate:
		var d event.ApplicationUpdateData
		if ev.Decode(&d) == nil && d.CandidateID != "" {
			return d.CandidateID
		}
	case event.ActionJobApplication:
		var d event.JobApplicationData
		if ev.Decode(&d) == nil && d.JobID != "" {
			return d.JobID
		}
	}
	return string(ev.Action)
}
