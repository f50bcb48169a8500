package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/senceapptr/SenceApp-sub004/internal/app"
	"github.com/senceapptr/SenceApp-sub004/internal/logger"
)

// NewRouter wires the health check, the category listing and the websocket endpoint.
func NewRouter(service *app.TriviaService) http.Handler {
	ws := NewWSHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		categories, err := service.Categories(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).WithError(err).Error("list categories")
			http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"categories": categories})
	})
	r.Get("/ws", ws.ServeWS)
	return r
}

// requestLogger stores a logrus entry tagged with the chi request ID in the request context.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := logger.Default().WithField("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(logger.NewContext(r.Context(), entry)))
	})
}
