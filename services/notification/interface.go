package notification

import (
	"context"
	"errors"
	"fmt"
)

// NotificationChannel delivers a best-effort push to every live session of a user.
// There is no acknowledgement; a nil error only means the message was handed off.
type NotificationChannel interface {
	PushToUser(ctx context.Context, userID, event string, payload any) error
}

// RoomName is the per-user room every session of userID joins.
func RoomName(userID string) string {
	return fmt.Sprintf("user-%s", userID)
}

// MultiChannel fans a push out to several channels and joins their errors.
type MultiChannel []NotificationChannel

func (m MultiChannel) PushToUser(ctx context.Context, userID, event string, payload any) error {
	var errs []error
	for _, ch := range m {
		if ch == nil {
			continue
		}
		if err := ch.PushToUser(ctx, userID, event, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
