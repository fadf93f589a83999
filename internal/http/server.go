// Package http exposes the tracker over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"spendtrack/internal/core"
	applog "spendtrack/internal/log"

	"github.com/google/uuid"
)

// Tracker is what the handlers need from the service layer.
type Tracker interface {
	Ingest(ctx context.Context, userID, rawText, emotion string) (core.Transaction, error)
	List(ctx context.Context, userID string, w core.Window) ([]core.Transaction, error)
	Summarize(ctx context.Context, userID string, w core.Window) (core.Summary, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type Server struct {
	tracker     Tracker
	defaultUser string
	httpServer  *http.Server
}

func NewServer(addr string, tracker Tracker, defaultUser string) *Server {
	s := &Server{tracker: tracker, defaultUser: defaultUser}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleIngest))
	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleList))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDelete))
	mux.HandleFunc("GET /api/summary", s.withMiddleware(s.handleSummary))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type contextKey string

const requestIDKey contextKey = "request_id"

// withMiddleware stamps a request id, sets security headers and logs
// start/completion of every API request.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", requestID)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

// responseWriter captures the status code for the completion log line.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
