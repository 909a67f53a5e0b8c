// Package api serves the embedded control page and the JSON API that lets
// devices on the local network trigger power and volume actions.
package api

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mfulz/powergeist/internal/action"
	"github.com/mfulz/powergeist/internal/config"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/mfulz/powergeist/internal/metrics"
	"github.com/mfulz/powergeist/internal/netinfo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Server is the HTTP front end.
type Server struct {
	cfg     config.HTTPConfig
	router  *mux.Router
	cors    *cors.Cors
	actions *action.Dispatcher
	hub     *Hub
	step    int
	localIP func(ctx context.Context) (string, error)
}

// Options carries the optional collaborators of a Server.
type Options struct {
	// Step is the volume change of increase/decrease without an amount.
	Step int
	// Hub receives /api/events subscribers. Required when cfg.Events is set.
	Hub *Hub
	// LocalIP defaults to netinfo.LocalIP.
	LocalIP func(ctx context.Context) (string, error)
}

// NewServer builds the router for cfg on top of d.
func NewServer(cfg config.HTTPConfig, d *action.Dispatcher, opts Options) *Server {
	if opts.Step <= 0 {
		opts.Step = 2
	}
	if opts.LocalIP == nil {
		opts.LocalIP = netinfo.LocalIP
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
		cors: cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Accept", "Origin", "X-Requested-With", requestIDHeader},
		}),
		actions: d,
		hub:     opts.Hub,
		step:    opts.Step,
		localIP: opts.LocalIP,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.instrument)

	api := s.router.PathPrefix("/api").Subrouter()

	// Power routes
	api.HandleFunc("/shutdown", s.simple(action.Shutdown)).Methods(http.MethodPost)
	api.HandleFunc("/restart", s.simple(action.Restart)).Methods(http.MethodPost)
	api.HandleFunc("/cancel", s.simple(action.CancelShutdown)).Methods(http.MethodPost)
	api.HandleFunc("/sleep", s.simple(action.Sleep)).Methods(http.MethodPost)

	// Volume routes
	api.HandleFunc("/volume/increase", s.adjust(1)).Methods(http.MethodPost)
	api.HandleFunc("/volume/decrease", s.adjust(-1)).Methods(http.MethodPost)
	api.HandleFunc("/volume/get", s.getVolume).Methods(http.MethodGet)
	api.HandleFunc("/volume/set", s.setVolume).Methods(http.MethodPost)

	// Network routes
	api.HandleFunc("/network/ip", s.getLocalIP).Methods(http.MethodGet)

	if s.cfg.Events && s.hub != nil {
		api.Handle("/events", s.hub).Methods(http.MethodGet)
	}
	if s.cfg.Metrics {
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	s.router.HandleFunc("/", serveIndex).Methods(http.MethodGet)
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return s.cors.Handler(s.router)
}

// Run listens on the configured address until ctx is done, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("HTTP listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Log.Infof("[http] listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown: %w", err)
		}
		<-errCh
		logging.Log.Infof("[http] stopped")
		return nil
	}
}

// statusRecorder captures the status code for metrics. It keeps the
// websocket upgrade working by passing Hijack through.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijacking not supported")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		logging.Log.Debugf("[http] %s %s -> %d (%s) from %s", r.Method, r.URL.Path, rec.status, time.Since(start), r.RemoteAddr)
	})
}
