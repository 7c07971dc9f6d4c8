package http

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/ports"
)

type appMetrics struct {
	uptime              time.Time
	transactionsWritten int64
	failedRequests      int64
}

func newAppMetrics() *appMetrics {
	return &appMetrics{uptime: time.Now()}
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Payload(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	}).Write(w)
}

// handleReady checks templates and pings the store.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if p, ok := s.store.(ports.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			checks["store"] = fmt.Sprintf("failed: %v", err)
			status, httpStatus = "not_ready", http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
		}
	} else {
		checks["store"] = "ok"
	}

	NewJSONResponse().Status(httpStatus).Payload(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// handleMetrics provides application metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	traceMetrics := s.traceMiddleware.GetMetrics()
	limitMetrics := s.rateLimiter.GetMetrics()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_failed_requests_total Requests answered with a 5xx status\n")
	fmt.Fprintf(w, "# TYPE http_failed_requests_total counter\n")
	fmt.Fprintf(w, "http_failed_requests_total %d\n\n", atomic.LoadInt64(&s.appMetrics.failedRequests))

	fmt.Fprintf(w, "# HELP transactions_written_total Successful creates, updates and deletes\n")
	fmt.Fprintf(w, "# TYPE transactions_written_total counter\n")
	fmt.Fprintf(w, "transactions_written_total %d\n\n", atomic.LoadInt64(&s.appMetrics.transactionsWritten))

	fmt.Fprintf(w, "# HELP rate_limit_rejections_total Requests rejected by the rate limiter\n")
	fmt.Fprintf(w, "# TYPE rate_limit_rejections_total counter\n")
	fmt.Fprintf(w, "rate_limit_rejections_total %d\n\n", limitMetrics.Rejected)

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", limitMetrics.ClientCount)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", time.Since(s.appMetrics.uptime).Seconds())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		InternalServerError("templates not loaded").Write(w)
		return
	}

	data := struct {
		Today             string
		MaxCategoryLength int
		Types             []core.TransactionType
	}{
		Today:             core.Today().String(),
		MaxCategoryLength: core.MaxCategoryLength,
		Types:             []core.TransactionType{core.Expense, core.Income},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		applog.FromContext(r.Context()).WithComponent(applog.ComponentTemplate).ErrorContext(r.Context(),
			"Index template execution failed", applog.FieldError, err, applog.FieldOperation, applog.OpRender)
	}
}

// writeError logs failures the client did not cause and answers with the
// mapped status and a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusForError(err)
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	switch status {
	case http.StatusInternalServerError:
		atomic.AddInt64(&s.appMetrics.failedRequests, 1)
		applog.NewStructuredLogger(logger).LogError(ctx, "Transaction request failed", err,
			applog.ComponentTransaction, op, applog.NewFields().WithErrorType(applog.ErrorTypeDatabase))
		InternalServerError("internal server error").Write(w)
		return
	case http.StatusNotFound:
		logger.DebugContext(ctx, "Transaction not found", applog.FieldOperation, op, applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeNotFound)
	default:
		logger.DebugContext(ctx, "Rejected transaction input", applog.FieldOperation, op, applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeValidation)
	}
	ErrorJSON(status, err.Error()).Write(w)
}
