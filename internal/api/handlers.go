package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/mfulz/powergeist/internal/action"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/mfulz/powergeist/internal/netinfo"
)

const requestIDHeader = "X-Request-ID"

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 4 << 10

//go:embed web/index.html
var indexHTML []byte

// ActionResponse is the body of every power and volume change route.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VolumeResponse is the body of a successful GET /api/volume/get.
type VolumeResponse struct {
	Volume int `json:"volume"`
}

// IPResponse is the body of GET /api/network/ip.
type IPResponse struct {
	IP string `json:"ip"`
}

// SetVolumeRequest is the body of POST /api/volume/set.
type SetVolumeRequest struct {
	Volume *int `json:"volume"`
}

// AmountRequest is the optional body of the increase and decrease routes.
type AmountRequest struct {
	Amount int `json:"amount"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Log.Debugf("[http] failed to write response: %v", err)
	}
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusBadRequest, ActionResponse{Message: fmt.Sprintf(format, args...)})
}

// requestContext carries the client supplied request id, or a fresh one.
func requestContext(w http.ResponseWriter, r *http.Request) context.Context {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	return action.WithRequestID(r.Context(), id)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, req action.Request) {
	out := s.actions.Dispatch(requestContext(w, r), req)
	status := http.StatusOK
	if !out.Succeeded {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, ActionResponse{Success: out.Succeeded, Message: out.Message})
}

func (s *Server) simple(build func() action.Request) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.dispatch(w, r, build())
	}
}

// decodeBody reads an optional JSON body into v. An empty body is not an error.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) adjust(sign int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body AmountRequest
		if err := decodeBody(r, &body); err != nil {
			badRequest(w, "Invalid request body: %v", err)
			return
		}
		if body.Amount < 0 {
			badRequest(w, "Invalid request body: amount must not be negative")
			return
		}
		amount := body.Amount
		if amount == 0 {
			amount = s.step
		}
		s.dispatch(w, r, action.VolumeAdjust(sign*amount))
	}
}

func (s *Server) setVolume(w http.ResponseWriter, r *http.Request) {
	var body SetVolumeRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "Invalid request body: %v", err)
		return
	}
	if body.Volume == nil {
		badRequest(w, "Invalid request body: volume is required")
		return
	}
	s.dispatch(w, r, action.VolumeSet(*body.Volume))
}

func (s *Server) getVolume(w http.ResponseWriter, r *http.Request) {
	out := s.actions.Dispatch(requestContext(w, r), action.VolumeGet())
	if !out.Succeeded || out.Value == nil {
		writeJSON(w, http.StatusInternalServerError, ActionResponse{Message: out.Message})
		return
	}
	writeJSON(w, http.StatusOK, VolumeResponse{Volume: *out.Value})
}

func (s *Server) getLocalIP(w http.ResponseWriter, r *http.Request) {
	ip, err := s.localIP(r.Context())
	if err != nil {
		logging.Log.Warnf("[http] local ip lookup failed: %v", err)
		ip = netinfo.Unknown
	}
	writeJSON(w, http.StatusOK, IPResponse{IP: ip})
}

func serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}
