package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/senceapptr/SenceApp-sub004/internal/logger"
)

func TestRequestLoggerCarriesRequestID(t *testing.T) {
	var got interface{}
	handler := middleware.RequestID(requestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logger.FromContext(r.Context()).Data["request_id"]
	})))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "req-42" {
		t.Fatalf("expected request_id req-42 on the context logger, got %v", got)
	}
}
