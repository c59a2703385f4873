package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/repurpose"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// DefaultAddr is the address the API server listens on.
const DefaultAddr = "127.0.0.1:5000"

// RequestIDHeader carries the request ID in requests and responses.
const RequestIDHeader = "X-Request-ID"

// maxRequestBytes caps JSON request bodies.
const maxRequestBytes = 1 << 20

// Server is the JSON API in front of a Repurposer.
type Server struct {
	server *http.Server
	router chi.Router

	// Addr is the bind address. Defaults to DefaultAddr.
	Addr string

	// Services used by the handlers.
	Scraper    repurpose.Scraper
	Repurposer repurpose.Repurposer

	// Ping, if set, is checked by GET /health.
	Ping func(ctx context.Context) error

	Logger *slog.Logger
}

// NewServer returns a Server with routes registered.
func NewServer() *Server {
	s := &Server{
		Addr:   DefaultAddr,
		Logger: slog.New(slog.DiscardHandler),
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/scrape", s.handleScrape)
		r.Post("/generate", s.handleGenerate)
		r.Post("/repurpose", s.handleRepurpose)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, repurpose.Errorf(repurpose.ENOTFOUND, "no route for %s %s", r.Method, r.URL.Path))
	})

	s.router = r
	s.server = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ServeHTTP routes a request. It lets tests drive the server without a
// listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe binds Addr and serves until Close is called.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.Logger.Info("listening", "addr", ln.Addr().String())
	if err := s.server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ScrapeRequest is the body of POST /api/scrape.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// GenerateResponse is the body returned by POST /api/generate.
type GenerateResponse struct {
	Posts repurpose.VariationSet `json:"posts"`
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Ping != nil {
		if err := s.Ping(r.Context()); err != nil {
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  repurpose.ErrorMessage(err),
			})
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.writeError(w, r, repurpose.Errorf(repurpose.EINVALID, "URL required"))
		return
	}

	// Failed scrapes are still 200: the result carries the diagnostic.
	result, err := s.Scraper.Scrape(r.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req repurpose.GenerationRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	posts, err := s.Repurposer.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, GenerateResponse{Posts: posts})
}

func (s *Server) handleRepurpose(w http.ResponseWriter, r *http.Request) {
	var src repurpose.Source
	if err := decode(w, r, &src); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.Repurposer.Repurpose(r.Context(), src)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return repurpose.Errorf(repurpose.EINVALID, "invalid JSON body: %v", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := repurpose.ErrorCode(err)
	status := StatusCode(code)
	if status == http.StatusInternalServerError {
		s.Logger.ErrorContext(r.Context(), "request failed",
			"request_id", w.Header().Get(RequestIDHeader),
			"err", err,
		)
	}
	s.writeJSON(w, status, ErrorResponse{Error: repurpose.ErrorMessage(err), Code: code})
}

// StatusCode maps an application error code to an HTTP status.
func StatusCode(code string) int {
	switch code {
	case repurpose.EINVALID, repurpose.EUNSUPPORTED:
		return http.StatusBadRequest
	case repurpose.ENOTFOUND:
		return http.StatusNotFound
	case repurpose.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case repurpose.EUNPROCESSABLE:
		return http.StatusUnprocessableEntity
	case repurpose.ETIMEOUT:
		return http.StatusGatewayTimeout
	case repurpose.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requestID tags each request with the caller's X-Request-ID or a new UUID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.Logger.InfoContext(r.Context(), "request",
				"request_id", ww.Header().Get(RequestIDHeader),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}
