package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookwise/handlers"
	"bookwise/models"

	"github.com/gin-gonic/gin"
)

type idleMonitor struct{}

func (idleMonitor) Stats(context.Context) (models.QueueStats, error) { return models.QueueStats{}, nil }
func (idleMonitor) Metrics(context.Context) (models.JobMetrics, error) {
	return models.JobMetrics{}, nil
}
func (idleMonitor) Cleanup(context.Context, time.Duration) (models.CleanupResult, error) {
	return models.CleanupResult{Success: true}, nil
}
func (idleMonitor) Health(context.Context) (map[string]any, error) {
	return map[string]any{"status": "healthy"}, nil
}

func newWorkerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterWorkerRoutes(r, &handlers.HandlerBundle{JobHandler: handlers.NewJobHandler(idleMonitor{})})
	return r
}

func TestJobRoutes(t *testing.T) {
	r := newWorkerRouter()
	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/job", http.StatusOK},
		{http.MethodGet, "/job/health", http.StatusOK},
		{http.MethodGet, "/job/queue/stats", http.StatusOK},
		{http.MethodGet, "/job/metrics", http.StatusOK},
		{http.MethodPost, "/job/cleanup", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != tt.want {
			t.Errorf("%s %s = %v, want %v", tt.method, tt.path, w.Code, tt.want)
		}
	}
}

func TestHealthReportsUnavailableBeforeFirstCheck(t *testing.T) {
	w := httptest.NewRecorder()
	newWorkerRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %v, want %v", w.Code, http.StatusServiceUnavailable)
	}
}
