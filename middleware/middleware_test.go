package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bookwise/config"
	"bookwise/models"
	"bookwise/utils"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
	os.Exit(m.Run())
}

type users map[string]*models.User

func (u users) GetByID(_ context.Context, id string) (*models.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, errors.New("not found")
}

type blacklist map[string]bool

func (b blacklist) Revoke(context.Context, string, time.Duration) error { return nil }

func (b blacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	return b[token], nil
}

func newAuthRouter(u UserLookup, bl utils.TokenBlacklist, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(u, bl)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	r.GET("/me", handlers...)
	return r
}

func token(t *testing.T, subject, typ string) string {
	t.Helper()
	tok, _, err := utils.GenerateToken(subject, subject+"@example.com", typ, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func get(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	u := users{
		"u1":        {ID: "u1", Status: models.UserActive, Role: models.RoleUser},
		"suspended": {ID: "suspended", Status: models.UserSuspended},
	}
	good := token(t, "u1", utils.TokenTypeAccess)
	revoked := token(t, "u1", utils.TokenTypeAccess)
	r := newAuthRouter(u, blacklist{revoked: true})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + good, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"refresh token", "Bearer " + token(t, "u1", utils.TokenTypeRefresh), http.StatusUnauthorized},
		{"revoked", "Bearer " + revoked, http.StatusUnauthorized},
		{"unknown user", "Bearer " + token(t, "ghost", utils.TokenTypeAccess), http.StatusUnauthorized},
		{"suspended user", "Bearer " + token(t, "suspended", utils.TokenTypeAccess), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.header)
			if w.Code != tt.want {
				t.Errorf("status = %v, want %v", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && w.Body.String() != "u1" {
				t.Errorf("body = %q, want %q", w.Body.String(), "u1")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	u := users{
		"admin": {ID: "admin", Status: models.UserActive, Role: models.RoleAdmin},
		"plain": {ID: "plain", Status: models.UserActive, Role: models.RoleUser},
	}
	r := newAuthRouter(u, blacklist{}, RequireRole(models.RoleAdmin))

	if w := get(r, "Bearer "+token(t, "admin", utils.TokenTypeAccess)); w.Code != http.StatusOK {
		t.Errorf("admin status = %v, want %v", w.Code, http.StatusOK)
	}
	if w := get(r, "Bearer "+token(t, "plain", utils.TokenTypeAccess)); w.Code != http.StatusForbidden {
		t.Errorf("user status = %v, want %v", w.Code, http.StatusForbidden)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("other client status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1"}, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"remote addr", nil, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			if got := getClientIP(c); got != tt.want {
				t.Errorf("getClientIP() = %v, want %v", got, tt.want)
			}
		})
	}
}
