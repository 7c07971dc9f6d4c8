package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	applog "fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/ports"
	appweb "fintrack/web"
)

// maxBodyBytes bounds form and JSON request bodies.
const maxBodyBytes = 1 << 20

// Options tunes the server. Zero values fall back to defaults.
type Options struct {
	Logger             *applog.Logger
	RateLimitPerMinute int
	AllowedOrigins     []string
}

type Server struct {
	http.Server
	store     ports.TransactionStore
	templates *template.Template
	logger    *applog.Logger
	events    *applog.StructuredLogger

	rateLimiter     *ratelimit.Limiter
	traceMiddleware *trace.Middleware
	appMetrics      *appMetrics

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server backed by store.
func NewServer(addr string, store ports.TransactionStore, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	ips := security.NewClientIPResolver()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		store:           store,
		logger:          logger,
		events:          applog.NewStructuredLogger(logger),
		rateLimiter:     ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		traceMiddleware: trace.NewMiddleware(logger, ips.ClientIP),
		appMetrics:      newAppMetrics(),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.PathPrefix("/static/").Handler(security.StaticAssetMiddleware(3600)(static)).Methods(http.MethodGet, http.MethodHead)
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	r.HandleFunc("/add_transaction", s.handleAddTransaction).Methods(http.MethodPost)
	r.HandleFunc("/get_transactions", s.handleGetTransactions).Methods(http.MethodGet)
	r.HandleFunc("/get_summary", s.handleGetSummary).Methods(http.MethodGet)
	r.HandleFunc("/update_transaction/{id:[0-9]+}", s.handleUpdateTransaction).Methods(http.MethodPut)
	r.HandleFunc("/delete_transaction/{id:[0-9]+}", s.handleDeleteTransaction).Methods(http.MethodDelete)

	// Outermost first: panics are recovered around everything, the trace id
	// is assigned before the request logger picks it up.
	var h http.Handler = r
	h = s.rateLimiter.Middleware(ips.ClientIP, ratelimit.MutatingMethods, s.handleRateLimited)(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = applog.RequestIDMiddleware(trace.RequestIDFromRequest)(h)
	h = applog.Middleware(logger)(h)
	h = s.traceMiddleware.Middleware(h)
	h = handlers.CompressHandler(h)
	if len(opts.AllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(opts.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(h)
	}
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(logger), handlers.PrintRecoveryStack(false))(h)
	s.Handler = h

	return s
}

// Shutdown stops the rate limiter and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).
		WarnContext(r.Context(), "Rate limit exceeded", applog.FieldMethod, r.Method, applog.FieldPath, r.URL.Path)
	ErrorJSON(http.StatusTooManyRequests, "rate limit exceeded, try again later").Write(w)
}
