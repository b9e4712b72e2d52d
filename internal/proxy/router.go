package proxy

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts the gateway routes on a chi router.
func NewRouter(h *Handler, log *logrus.Entry) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"openai-gateway"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/completions", h.HandleCompletion)
		r.Post("/edits", h.HandleEdit)
		r.Post("/chat/completions", h.HandleChat)
		r.Post("/images/generations", h.HandleImage)
		r.Post("/embeddings", h.HandleEmbedding)
		r.Get("/usage", h.HandleUsage)
	})

	return r
}

func requestLogger(log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"latency_ms": time.Since(start).Milliseconds(),
				"request_id": chimiddleware.GetReqID(r.Context()),
			}).Info("request handled")
		})
	}
}
