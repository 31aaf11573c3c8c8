// Package server exposes message generation and parsing over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"fjacquet/iso20022-gen/internal/assembler"
	"fjacquet/iso20022-gen/internal/fileutils"
	"fjacquet/iso20022-gen/internal/logging"

	"github.com/gorilla/mux"
)

// Generator produces enveloped messages.
type Generator interface {
	Generate(ctx context.Context, req assembler.Request) (assembler.Result, error)
}

// PayloadParser reads a message back into its payload.
type PayloadParser interface {
	Parse(r io.Reader, messageCode string) (any, error)
}

// Options configures a Server.
type Options struct {
	Host string
	Port int
	// StorageDir receives generated documents served by /download.
	StorageDir string
	// MaxUploadBytes bounds request bodies.
	MaxUploadBytes int64
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Server is the HTTP front end.
type Server struct {
	opts      Options
	generator Generator
	parser    PayloadParser
	logger    logging.Logger
	now       func() time.Time
}

// NewServer validates opts and creates a Server.
func NewServer(opts Options, generator Generator, parser PayloadParser, logger logging.Logger) (*Server, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if opts.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if opts.StorageDir == "" {
		opts.StorageDir = os.TempDir()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 16 << 20
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if generator == nil || parser == nil {
		return nil, fmt.Errorf("generator and parser are required")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if err := fileutils.EnsureDirectoryExists(opts.StorageDir); err != nil {
		return nil, err
	}
	return &Server{
		opts:      opts,
		generator: generator,
		parser:    parser,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Addr returns host:port.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	router.HandleFunc("/generate", handleError(s.logger, s.generate)).Methods(http.MethodPost)
	router.HandleFunc("/parse", handleError(s.logger, s.parse)).Methods(http.MethodPost)
	router.HandleFunc("/download/{filename}", handleError(s.logger, s.download)).Methods(http.MethodGet)
	router.Use(s.limitBody, s.logRequests)
	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 30 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       10 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logging.F("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Handled request",
			logging.F("method", r.Method),
			logging.F(logging.FieldPath, r.URL.Path),
			logging.F(logging.FieldRemoteAddr, r.RemoteAddr),
			logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	})
}
