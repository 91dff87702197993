package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookwise/models"

	"github.com/go-redis/redis/v8"
)

// Channel is the shared stream other services listen to for booking changes.
const Channel = "booking_event"

// Publisher emits booking lifecycle events. Delivery is fire-and-forget.
type Publisher interface {
	Publish(ctx context.Context, event string, data any) error
}

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes {event, data, timestamp} envelopes on Channel.
type RedisPublisher struct {
	client  redisPublisher
	channel string
	now     func() time.Time
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, channel: Channel, now: time.Now}
}

func (p *RedisPublisher) Publish(ctx context.Context, event string, data any) error {
	body, err := json.Marshal(models.BookingEvent{Event: event, Data: data, Timestamp: p.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event, err)
	}
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", event, err)
	}
	return nil
}
