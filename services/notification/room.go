package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookwise/models"
	"bookwise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RoomChannel publishes pushes on the Redis pub/sub room of the user. Every API
// instance serving a stream for that user is subscribed to the room.
type RoomChannel struct {
	pub    publisher
	client *redis.Client
	now    func() time.Time
}

func NewRoomChannel(client *redis.Client) *RoomChannel {
	return &RoomChannel{pub: client, client: client, now: time.Now}
}

func (c *RoomChannel) PushToUser(ctx context.Context, userID, event string, payload any) error {
	msg := models.PushMessage{Type: event, Data: payload, Timestamp: c.now().UTC()}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode push %s: %w", event, err)
	}
	if err := c.pub.Publish(ctx, RoomName(userID), body).Err(); err != nil {
		return fmt.Errorf("publish push %s to %s: %w", event, RoomName(userID), err)
	}
	return nil
}

// Subscribe joins the user's room. Messages arrive on the returned channel until
// ctx is done, after which the channel is closed.
func (c *RoomChannel) Subscribe(ctx context.Context, userID string) (<-chan models.PushMessage, error) {
	if c.client == nil {
		return nil, fmt.Errorf("room subscriptions need a redis client")
	}
	sub := c.client.Subscribe(ctx, RoomName(userID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", RoomName(userID), err)
	}

	out := make(chan models.PushMessage, 16)
	go func() {
		defer close(out)
		defer sub.Close()

		in := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-in:
				if !ok {
					return
				}
				var msg models.PushMessage
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					utils.GetLogger().Warn("Dropping malformed push", zap.String("room", raw.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
