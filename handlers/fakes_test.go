package handlers

import (
	"context"
	"time"

	"bookwise/middleware"
	"bookwise/models"

	"github.com/gin-gonic/gin"
)

// asUser stands in for JWTAuthMiddleware.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextAccessToken, "token-"+id)
		c.Next()
	}
}

type fakeBookings struct {
	err     error
	booking *models.Booking

	owner      string
	page, size int
	limit      int
	from, to   time.Time
	status     models.BookingStatus
	created    models.CreateBookingInput
}

func (f *fakeBookings) CreateBooking(_ context.Context, in models.CreateBookingInput, owner string) (*models.Booking, error) {
	f.created, f.owner = in, owner
	return f.booking, f.err
}

func (f *fakeBookings) UpdateBooking(_ context.Context, _ string, owner string, _ models.UpdateBookingInput) (*models.Booking, error) {
	f.owner = owner
	return f.booking, f.err
}

func (f *fakeBookings) UpdateStatus(_ context.Context, _ string, owner string, status models.BookingStatus) (*models.Booking, error) {
	f.owner, f.status = owner, status
	return f.booking, f.err
}

func (f *fakeBookings) DeleteBooking(_ context.Context, _ string, owner string) error {
	f.owner = owner
	return f.err
}

func (f *fakeBookings) GetBooking(_ context.Context, _ string, owner string) (*models.Booking, error) {
	f.owner = owner
	return f.booking, f.err
}

func (f *fakeBookings) ListUpcoming(_ context.Context, owner string, limit int) ([]models.Booking, error) {
	f.owner, f.limit = owner, limit
	return nil, f.err
}

func (f *fakeBookings) ListPast(_ context.Context, owner string, limit int) ([]models.Booking, error) {
	f.owner, f.limit = owner, limit
	return nil, f.err
}

func (f *fakeBookings) ListAll(_ context.Context, owner string, page, size int) (models.Page[models.Booking], error) {
	f.owner, f.page, f.size = owner, page, size
	return models.NewPage([]models.Booking{}, size, page, 0), f.err
}

func (f *fakeBookings) ListByDateRange(_ context.Context, owner string, from, to time.Time) ([]models.Booking, error) {
	f.owner, f.from, f.to = owner, from, to
	return nil, f.err
}

type fakeUsers struct {
	err        error
	user       *models.User
	loggedOut  string
	logoutWith string
	refreshed  string
	device     string
}

func (f *fakeUsers) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: "u-new", Email: req.Email}, nil
}

func (f *fakeUsers) Login(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AuthResponse{User: f.user, AccessToken: "a", RefreshToken: "r"}, nil
}

func (f *fakeUsers) Refresh(_ context.Context, token string) (*models.AuthResponse, error) {
	f.refreshed = token
	if f.err != nil {
		return nil, f.err
	}
	return &models.AuthResponse{User: f.user, AccessToken: "a2", RefreshToken: "r2"}, nil
}

func (f *fakeUsers) Logout(_ context.Context, userID, accessToken string) error {
	f.loggedOut, f.logoutWith = userID, accessToken
	return f.err
}

func (f *fakeUsers) Me(context.Context, string) (*models.User, error) { return f.user, f.err }

func (f *fakeUsers) UpdateProfile(context.Context, string, models.UpdateProfileRequest) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeUsers) UpdatePassword(context.Context, string, models.UpdatePasswordRequest) error {
	return f.err
}

func (f *fakeUsers) DeleteAccount(context.Context, string, models.DeleteAccountRequest) error {
	return f.err
}

func (f *fakeUsers) RegisterDevice(_ context.Context, _ string, token string) error {
	f.device = token
	return f.err
}

type fakeMonitor struct {
	err       error
	olderThan time.Duration
}

func (f *fakeMonitor) Stats(context.Context) (models.QueueStats, error) {
	return models.QueueStats{Delayed: 2, Total: 2}, f.err
}

func (f *fakeMonitor) Metrics(context.Context) (models.JobMetrics, error) {
	return models.JobMetrics{}, f.err
}

func (f *fakeMonitor) Cleanup(_ context.Context, olderThan time.Duration) (models.CleanupResult, error) {
	f.olderThan = olderThan
	return models.CleanupResult{Success: true, Removed: 3}, f.err
}

func (f *fakeMonitor) Health(context.Context) (map[string]any, error) {
	return map[string]any{"status": "healthy"}, f.err
}

type fakeRooms struct {
	msgs []models.PushMessage
	err  error
}

func (f *fakeRooms) Subscribe(context.Context, string) (<-chan models.PushMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan models.PushMessage, len(f.msgs))
	for _, m := range f.msgs {
		ch <- m
	}
	close(ch)
	return ch, nil
}
