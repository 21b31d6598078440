package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweetpotato0/deadchat/message"
)

// LivenessMessage is served on GET /.
const LivenessMessage = "Gemini proxy server is running"

// Relayer is the relay operation the HTTP layer exposes.
type Relayer interface {
	Relay(ctx context.Context, req message.GenerationRequest) (string, error)
}

// Options tune the router.
type Options struct {
	Logger *slog.Logger
	// Gatherer backs /metrics; the route is omitted when nil.
	Gatherer prometheus.Gatherer
	// AllowedOrigins defaults to every origin.
	AllowedOrigins []string
}

// NewRouter builds the relay HTTP handler.
func NewRouter(rl Relayer, opts Options) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	for _, m := range middlewareChain(logger) {
		r.Use(m)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(LivenessMessage))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Post("/api/gemini", GenerateHandler(rl))
	return r
}

func middlewareChain(logger *slog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		requestLogger(logger),
		chiMiddleware.Recoverer,
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chiMiddleware.GetReqID(r.Context())
			logger.Debug("request", "request_id", reqID, "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
