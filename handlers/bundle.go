package handlers

import (
	"bookwise/middleware"
	"bookwise/utils"
)

// HandlerBundle groups the handlers the router mounts along with what the auth
// middleware needs.
type HandlerBundle struct {
	Users     middleware.UserLookup
	Blacklist utils.TokenBlacklist

	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	BookingHandler      *BookingHandler
	JobHandler          *JobHandler
	NotificationHandler *NotificationHandler
}
