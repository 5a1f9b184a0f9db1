// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server serves rendered Markdown over HTTP.
//
// Routes:
//
//	POST /render     render the request body
//	GET  /metrics    Prometheus metrics
//	GET  /{path}.md  render a file below the root directory
package server

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"mdwiki.dev/markdown"
	"mdwiki.dev/markdown/internal/metrics"
)

// maxBody bounds the size of a POST /render request.
const maxBody = 4 << 20

const requestIDHeader = "X-Request-Id"

// A Server renders Markdown for HTTP clients.
type Server struct {
	root    fs.FS
	opts    []markdown.Option
	logger  *slog.Logger
	reg     *prom.Registry
	metrics *metrics.Recorder
	mux     *http.ServeMux
}

// New returns a Server that renders files from root with opts.
// The metrics in rec are served from reg.
func New(root fs.FS, reg *prom.Registry, rec *metrics.Recorder, logger *slog.Logger, opts ...markdown.Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		root:    root,
		opts:    opts,
		logger:  logger,
		reg:     reg,
		metrics: rec,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /render", s.handleRender)
	s.mux.Handle("GET /metrics", metrics.HTTPHandler(reg))
	s.mux.HandleFunc("GET /{path...}", s.handleFile)
	return s
}

// NewDir is like New with root set to the directory dir.
func NewDir(dir string, reg *prom.Registry, rec *metrics.Recorder, logger *slog.Logger, opts ...markdown.Option) *Server {
	return New(os.DirFS(dir), reg, rec, logger, opts...)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	start := time.Now()
	s.mux.ServeHTTP(w, r.WithContext(withLogger(r.Context(), s.logger.With("request_id", id))))
	s.logger.Debug("HTTP request", "request_id", id, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
}

// ListenAndServe serves on addr until ctx is done,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("Serving", "addr", addr)
	select {
	case err := <-errc:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "read request body", http.StatusBadRequest)
		return
	}
	s.render(w, r, string(data))
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("path")
	if name == "" {
		name = "README.md"
	}
	name = path.Clean(name)
	if !strings.HasSuffix(name, ".md") || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}
	data, err := fs.ReadFile(s.root, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		loggerFrom(r.Context()).Error("Read failed", "file", name, "error", err)
		http.Error(w, "read file", http.StatusInternalServerError)
		return
	}
	s.render(w, r, string(data))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, src string) {
	log := loggerFrom(r.Context())
	start := time.Now()
	html, err := markdown.RenderContext(r.Context(), src, s.opts...)
	s.metrics.ObserveRender("http", len(src), time.Since(start), err)
	if err != nil {
		log.Error("Render failed", "error", err)
		http.Error(w, "render failed", http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
