// Package server exposes the parse pipeline over HTTP for the web client.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/debatelab/argclinic/internal/llm"
	"github.com/debatelab/argclinic/internal/model"
	"github.com/debatelab/argclinic/internal/pipeline"
)

// Server routes API requests to the parse pipeline
type Server struct {
	parser *pipeline.Parser
	router *mux.Router
}

// New creates a server around the given parser
func New(parser *pipeline.Parser) *Server {
	s := &Server{
		parser: parser,
		router: mux.NewRouter(),
	}

	s.router.Use(logMiddleware)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/parse", s.handleParse).Methods(http.MethodPost)

	return s
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.router
}

// parseRequest is the inbound JSON body for /api/parse
type parseRequest struct {
	Text       string `json:"text"`
	Format     string `json:"format"`
	Resolution string `json:"resolution"`
	DateRange  string `json:"dateRange,omitempty"`
}

// errorResponse is the error payload; Field scopes form-level errors
type errorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

type parseResponse struct {
	Arguments []model.Argument `json:"arguments"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	format, _ := model.ParseFormat(req.Format)
	result, err := s.parser.Parse(r.Context(), pipeline.Request{
		Text:       req.Text,
		Format:     format,
		Resolution: req.Resolution,
		DateRange:  req.DateRange,
	})
	if err != nil {
		s.writeParseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{Arguments: result.Arguments})
}

// writeParseError maps pipeline failures to HTTP statuses. Remote-response
// failures surface as a generic retry message; detail stays in the logs.
func (s *Server) writeParseError(w http.ResponseWriter, err error) {
	var fieldErr *pipeline.FieldError
	if errors.As(err, &fieldErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fieldErr.Message,
			Field: fieldErr.Field,
		})
		return
	}

	if errors.Is(err, pipeline.ErrNoArguments) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   pipeline.NoArgumentsGuidance,
			Field:   "text",
			Details: "Arguments should have clear assertions, reasoning, and be relevant to the resolution.",
		})
		return
	}

	log.Printf("parse error: %v", err)

	if errors.Is(err, llm.ErrConfiguration) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "The AI service is not configured. Please contact the administrator.",
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "Failed to analyze arguments. Please try again.",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
