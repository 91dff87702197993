package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

type capture struct {
	channel string
	body    []byte
}

func (c *capture) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	c.channel = channel
	c.body, _ = message.([]byte)
	return redis.NewIntResult(0, nil)
}

func TestRedisPublisherEnvelope(t *testing.T) {
	c := &capture{}
	at := time.Date(2026, 2, 2, 8, 30, 0, 0, time.UTC)
	p := &RedisPublisher{client: c, channel: Channel, now: func() time.Time { return at }}

	if err := p.Publish(context.Background(), "booking.deleted", map[string]string{"id": "b1"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if c.channel != "booking_event" {
		t.Errorf("channel = %v, want %v", c.channel, "booking_event")
	}

	var got map[string]any
	if err := json.Unmarshal(c.body, &got); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if got["event"] != "booking.deleted" {
		t.Errorf("event = %v, want %v", got["event"], "booking.deleted")
	}
	if got["timestamp"] != "2026-02-02T08:30:00Z" {
		t.Errorf("timestamp = %v, want %v", got["timestamp"], "2026-02-02T08:30:00Z")
	}
	if data, _ := got["data"].(map[string]any); data["id"] != "b1" {
		t.Errorf("data = %v, want id b1", got["data"])
	}
}
