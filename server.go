package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"i4.energy/across/cmdgw/handler"
)

// Server handles incoming HTTP requests for interacting with the command
// handler running on the serial line
type Server struct {
	Logger  *slog.Logger
	Handler *handler.Handler
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /inject", s.handleInject)
	mux.HandleFunc("POST /send", s.handleSend)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

// loopError maps errors from the handler loop to a status code
func (s *Server) loopError(w http.ResponseWriter, err error) {
	if errors.Is(err, handler.ErrLoopStopped) {
		s.sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.sendError(w, err.Error(), http.StatusInternalServerError)
}

// handleInject feeds a line into the command handler as if it had been
// received on the serial port
func (s *Server) handleInject(w http.ResponseWriter, r *http.Request) {
	type InjectRequest struct {
		Line string `json:"line"`
	}

	var req InjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Line == "" {
		s.sendError(w, "'line' field is required", http.StatusBadRequest)
		return
	}

	// Injected and serial input share one line buffer, a partial line
	// would be completed by whatever arrives on the port next.
	if term := s.Handler.Terminator(); req.Line[len(req.Line)-1] != term {
		s.sendError(w, fmt.Sprintf("'line' must end with the terminator %q", term), http.StatusBadRequest)
		return
	}

	if err := s.Handler.Submit(r.Context(), req.Line); err != nil {
		s.Logger.Error("Failed to inject line", "error", err)
		s.loopError(w, err)
		return
	}

	s.Logger.Info("Line injected", "length", len(req.Line))
	w.WriteHeader(http.StatusAccepted)
}

// handleSend composes a command from the given fields and writes it to
// the serial port
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	type SendRequest struct {
		Fields []string `json:"fields"`
	}
	type SendResponse struct {
		Message string `json:"message"`
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Fields) == 0 {
		s.sendError(w, "'fields' must not be empty", http.StatusBadRequest)
		return
	}

	reserved := s.Handler.Delimiters() + string(s.Handler.Terminator())
	for _, f := range req.Fields {
		if strings.ContainsAny(f, reserved) {
			s.sendError(w, "fields must not contain delimiter or terminator characters", http.StatusBadRequest)
			return
		}
	}

	var sent string
	var tooLong bool
	var sendErr error
	err := s.Handler.Do(r.Context(), func(h *handler.Handler) {
		c := h.Composer()
		c.Begin()
		for i, f := range req.Fields {
			if i > 0 {
				c.AppendDelimiter()
			}
			c.AppendString(f)
		}
		c.AppendTerminator()
		if c.Len() > h.BufferSize() {
			tooLong = true
			return
		}
		sent = c.Message()
		sendErr = c.Send()
	})
	if err == nil {
		err = sendErr
	}
	if tooLong {
		s.sendError(w, fmt.Sprintf("composed command exceeds %d bytes", s.Handler.BufferSize()), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.Logger.Error("Failed to send command", "error", err)
		s.loopError(w, err)
		return
	}

	s.Logger.Info("Command sent", "message", sent)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SendResponse{Message: sent})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
