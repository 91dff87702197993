package notification

import (
	"context"
	"fmt"

	"bookwise/models"

	"firebase.google.com/go/v4/messaging"
)

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DeviceLookup resolves the user whose registered device should get the push.
type DeviceLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// FCMChannel sends mobile pushes for a fixed set of events. Other events and users
// without a registered device are skipped silently.
type FCMChannel struct {
	client messagingClient
	users  DeviceLookup
	titles map[string]string
}

func NewFCMChannel(client messagingClient, users DeviceLookup) *FCMChannel {
	return &FCMChannel{
		client: client,
		users:  users,
		titles: map[string]string{
			models.EventBookingReminder: "Upcoming booking",
		},
	}
}

func (c *FCMChannel) PushToUser(ctx context.Context, userID, event string, payload any) error {
	title, ok := c.titles[event]
	if !ok {
		return nil
	}
	u, err := c.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("fcm: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return nil
	}

	data := map[string]string{"type": event}
	body := title
	if p, ok := payload.(map[string]any); ok {
		for k, v := range p {
			data[k] = fmt.Sprint(v)
		}
		if m, ok := p["message"].(string); ok {
			body = m
		}
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "booking_reminders",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
	if _, err := c.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm: failed to send %s to user %s: %w", event, userID, err)
	}
	return nil
}
