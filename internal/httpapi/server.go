package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chatbotd/internal/manager"
	"chatbotd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Chat(ctx context.Context, message string) (string, error)
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the router: /, /chatbot, /status, /healthz, /readyz, /metrics.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// CORS for all origins on all routes, per the public contract.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	r.Get("/", serveIndex)

	r.Post("/chatbot", func(w http.ResponseWriter, r *http.Request) {
		// Availability is checked before the body is touched: an unloaded
		// model answers 503 no matter what the client sent.
		if !svc.Ready() {
			writeJSON(w, http.StatusServiceUnavailable, types.ChatResponse{Response: msgUnavailable})
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}
		message := strings.TrimSpace(req.Message)
		if message == "" {
			writeJSONError(w, http.StatusBadRequest, msgNoMessage)
			return
		}

		start := time.Now()
		if zlog != nil {
			z := zlog.Info().Str("path", r.URL.Path)
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("chat start")
		}
		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		text, err := svc.Chat(joinedCtx, message)
		if err != nil {
			// Client gone: nothing useful to write. A shutdown-canceled base
			// context is not enough to skip the response; the client is
			// still connected and must get the contracted JSON payload.
			if r.Context().Err() != nil {
				return
			}
			status := http.StatusInternalServerError
			body := types.ChatResponse{Response: msgInternal}
			if manager.IsUnavailable(err) {
				status = http.StatusServiceUnavailable
				body = types.ChatResponse{Response: msgUnavailable}
			}
			// The typed error detail stays in server logs; the client sees
			// only the fixed message.
			writeJSON(w, status, body)
			if zlog != nil {
				z := zlog.Info().Int("status", status).Dur("dur", time.Since(start))
				if rid := middleware.GetReqID(r.Context()); rid != "" {
					z = z.Str("request_id", rid)
				}
				z.Err(err).Msg("chat end")
			}
			return
		}
		writeJSON(w, http.StatusOK, types.ChatResponse{Response: text})
		if zlog != nil {
			z := zlog.Info().Int("status", http.StatusOK).Dur("dur", time.Since(start))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("chat end")
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unavailable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}
