// Package control provides the server-side daemon logic to accept powerctl
// commands via a Unix or TCP socket. Every connection carries a sequence of
// line-delimited protocol.Request values, each answered by one Response.
package control

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/mfulz/powergeist/dispatch"
	"github.com/mfulz/powergeist/internal/action"
	"github.com/mfulz/powergeist/internal/config"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/mfulz/powergeist/internal/metrics"
	"github.com/mfulz/powergeist/protocol"
)

// unknownType is the metrics label of requests for unregistered commands.
const unknownType = "unknown"

// Server is one control socket listener.
type Server struct {
	cfg      config.ControlConfig
	dispatch *dispatch.Dispatcher

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
}

// NewServer returns a Server for cfg that answers requests with d.
func NewServer(cfg config.ControlConfig, d *dispatch.Dispatcher) *Server {
	return &Server{
		cfg:      cfg,
		dispatch: d,
		conns:    make(map[net.Conn]struct{}),
	}
}

// Listen binds the configured socket. A stale unix socket file is removed.
func (s *Server) Listen() error {
	var (
		ln  net.Listener
		err error
	)
	switch s.cfg.Mode {
	case "unix":
		if _, statErr := os.Stat(s.cfg.Listen); statErr == nil {
			_ = os.Remove(s.cfg.Listen)
		}
		ln, err = net.Listen("unix", s.cfg.Listen)
	case "tcp":
		ln, err = net.Listen("tcp", s.cfg.Listen)
	default:
		return fmt.Errorf("unsupported control mode: %q", s.cfg.Mode)
	}
	if err != nil {
		return fmt.Errorf("failed to bind %s socket: %w", s.cfg.Mode, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	logging.Log.Infof("[control] listening on %s socket: %s", s.cfg.Mode, ln.Addr())
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until ctx is done, then closes the listener and
// every open connection and waits for their handlers.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return errors.New("control server is not listening")
	}

	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
		s.mu.Lock()
		for c := range s.conns {
			_ = c.Close()
		}
		s.mu.Unlock()
	})
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			logging.Log.Warnf("[control] accept error: %v", err)
			continue
		}

		s.mu.Lock()
		if ctx.Err() != nil {
			s.mu.Unlock()
			_ = conn.Close()
			break
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}

	s.wg.Wait()
	if s.cfg.Mode == "unix" {
		_ = os.Remove(s.cfg.Listen)
	}
	logging.Log.Infof("[control] stopped")
	return nil
}

// Run is Listen followed by Serve.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// metricType maps unregistered command types to one label value.
func (s *Server) metricType(command string) string {
	if s.dispatch.Has(command) {
		return command
	}
	return unknownType
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()

	reader := bufio.NewReader(conn)
	for {
		req, err := protocol.ReadRequest(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				logging.Log.Debugf("[control] failed to read request: %v", err)
				_ = protocol.WriteResponse(conn, &protocol.Response{Status: protocol.StatusError, Error: err.Error()})
			}
			return
		}

		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}
		resp := s.dispatch.Dispatch(action.WithRequestID(ctx, id), req)
		metrics.ControlRequestsTotal.WithLabelValues(s.metricType(req.Type), resp.Status).Inc()

		if err := protocol.WriteResponse(conn, resp); err != nil {
			logging.Log.Debugf("[control] failed to write response: %v", err)
			return
		}
	}
}
