package ws

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"jobboard/internal/domain/notification"
	"jobboard/internal/infrastructure/cache"
	applog "jobboard/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	channelPrefix  = "notifications:"
	channelPattern = channelPrefix + "*"
)

// ChannelFor is the pub/sub channel carrying userID's notifications.
func ChannelFor(userID string) string {
	return channelPrefix + userID
}

func userFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, channelPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(channel, channelPrefix)
	return id, id != ""
}

// NotificationMessage is what a websocket client receives.
type NotificationMessage struct {
	Type         string                    `json:"type"`
	Notification notification.Notification `json:"notification"`
	Timestamp    string                    `json:"timestamp"`
}

func encodeNotification(n notification.Notification) ([]byte, error) {
	return json.Marshal(NotificationMessage{
		Type:         "notification",
		Notification: n,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

type pubsub interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Publisher fans a created notification out through Redis so every server
// instance can reach the recipient. Without Redis it delivers to the local
// hub only.
type Publisher struct {
	bus    pubsub
	hub    *Hub
	logger *zap.Logger
}

func NewPublisher(bus pubsub, hub *Hub, logger *zap.Logger) *Publisher {
	return &Publisher{bus: bus, hub: hub, logger: applog.OrNop(logger)}
}

func (p *Publisher) PublishNotification(ctx context.Context, n notification.Notification) error {
	payload, err := encodeNotification(n)
	if err != nil {
		return err
	}

	if p.bus != nil {
		err = p.bus.Publish(ctx, ChannelFor(n.UserID), payload)
		if err == nil {
			return nil
		}
		if !errors.Is(err, cache.ErrUnavailable) {
			return err
		}
	}

	if p.hub != nil {
		p.hub.SendToUser(n.UserID, payload)
	}
	return nil
}

type patternSubscriber interface {
	PSubscribe(ctx context.Context, pattern string) (*redis.PubSub, error)
}

// Relay forwards messages from the Redis notification channels to the
// local hub.
type Relay struct {
	sub    patternSubscriber
	hub    *Hub
	logger *zap.Logger
}

func NewRelay(sub patternSubscriber, hub *Hub, logger *zap.Logger) *Relay {
	return &Relay{sub: sub, hub: hub, logger: applog.OrNop(logger)}
}

// Run blocks until ctx is done. With Redis down it returns at once and the
// Publisher falls back to local delivery.
func (r *Relay) Run(ctx context.Context) error {
	ps, err := r.sub.PSubscribe(ctx, channelPattern)
	if err != nil {
		if errors.Is(err, cache.ErrUnavailable) {
			r.logger.Info("live relay disabled, redis unavailable")
			return nil
		}
		return err
	}
	defer ps.Close()

	r.logger.Info("live relay subscribed", zap.String("pattern", channelPattern))
	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.forward(msg.Channel, []byte(msg.Payload))
		}
	}
}

func (r *Relay) forward(channel string, payload []byte) {
	userID, ok := userFromChannel(channel)
	if !ok {
		return
	}
	if !r.hub.Connected(userID) {
		return
	}
	r.hub.SendToUser(userID, payload)
}
