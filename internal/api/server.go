// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
	"github.com/tfctl/awssso/internal/service"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8000"

const shutdownTimeout = 5 * time.Second

// Backend is the part of *service.Service the server reads from.
type Backend interface {
	CallerIdentity(ctx context.Context) (service.Identity, error)
	ListBuckets(ctx context.Context) ([]string, error)
	ListObjects(ctx context.Context, bucket, prefix string, maxKeys int32) ([]service.Object, error)
	ListTables(ctx context.Context) ([]string, error)
}

var _ Backend = (*service.Service)(nil)

// Server routes HTTP requests to a Backend.
type Server struct {
	backend   Backend
	collector *Collector
	router    *mux.Router
}

// NewServer builds the router. collector is registered on reg, which is
// also what /metrics exposes.
func NewServer(backend Backend, collector *Collector, reg *prometheus.Registry) (*Server, error) {
	if err := reg.Register(collector); err != nil {
		return nil, err
	}

	s := &Server{
		backend:   backend,
		collector: collector,
		router:    mux.NewRouter(),
	}

	s.router.Use(s.countRequests)
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/buckets", s.buckets).Methods(http.MethodGet)
	s.router.HandleFunc("/buckets/{bucket}/objects", s.objects).Methods(http.MethodGet)
	s.router.HandleFunc("/tables", s.tables).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return s, nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("listening: addr=%s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Infof("shutting down: addr=%s", ln.Addr())
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	id, err := s.backend.CallerIdentity(r.Context())
	if err != nil {
		writeError(w, err, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"aws_account": id.AccountID,
		"user":        id.UserARN,
	})
}

func (s *Server) buckets(w http.ResponseWriter, r *http.Request) {
	names, err := s.backend.ListBuckets(r.Context())
	if err != nil {
		writeError(w, err, http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) objects(w http.ResponseWriter, r *http.Request) {
	bucket := mux.Vars(r)["bucket"]
	q := r.URL.Query()

	var maxKeys int64
	if v := q.Get("max_keys"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "max_keys must be a positive integer"})
			return
		}
		maxKeys = n
	}

	objects, err := s.backend.ListObjects(r.Context(), bucket, q.Get("prefix"), int32(maxKeys))
	if err != nil {
		writeError(w, err, http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bucket":  bucket,
		"objects": objects,
	})
}

func (s *Server) tables(w http.ResponseWriter, r *http.Request) {
	names, err := s.backend.ListTables(r.Context())
	if err != nil {
		writeError(w, err, http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// writeError answers with credStatus for credential failures and 500 for
// anything else.
func writeError(w http.ResponseWriter, err error, credStatus int) {
	status := http.StatusInternalServerError
	if errors.Is(err, credguard.ErrCredentials) {
		status = credStatus
	}
	log.Errorf("request failed: status=%d, err=%v", status, err)
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debugf("response encode failed: err=%v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.collector.countRequest(route, rec.status)
		log.Debugf("request: method=%s, route=%s, status=%d", r.Method, route, rec.status)
	})
}
