package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/arrange/pkg/buildinfo"
	"github.com/matzehuels/arrange/pkg/diagram"
	"github.com/matzehuels/arrange/pkg/layout"
	"github.com/matzehuels/arrange/pkg/pipeline"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// =============================================================================
// Wire Types
// =============================================================================

// Request is the body of every pipeline endpoint.
type Request struct {
	Diagram *diagram.Diagram `json:"diagram"`
	Options pipeline.Options `json:"options"`
}

// Response is returned by the pipeline endpoints. Artifacts are base64
// encoded by encoding/json.
type Response struct {
	Diagram    *diagram.Diagram  `json:"diagram,omitempty"`
	Layout     *layout.Result    `json:"layout,omitempty"`
	Components [][]string        `json:"components,omitempty"`
	Artifacts  map[string][]byte `json:"artifacts,omitempty"`
	Stats      *Stats            `json:"stats,omitempty"`
}

// Stats mirrors [pipeline.Stats] with durations in milliseconds.
type Stats struct {
	Shapes       int     `json:"shapes"`
	Connections  int     `json:"connections"`
	RoutePoints  int     `json:"route_points"`
	LayoutMillis float64 `json:"layout_ms"`
	RouteMillis  float64 `json:"route_ms"`
	RenderMillis float64 `json:"render_ms"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// contentTypes maps render formats to the media type of their raw output.
var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatGraphviz: "image/svg+xml",
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	result, err := s.runner.Arrange(ctx, req.Diagram, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Diagram:    result.Diagram,
		Layout:     &result.Layout,
		Components: result.Components,
		Artifacts:  nonEmpty(result.Artifacts),
		Stats:      newStats(result.Stats),
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	result, err := s.runner.Reroute(ctx, req.Diagram, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Diagram: result.Diagram,
		Stats:   newStats(result.Stats),
	})
}

// handleRender returns the artifacts as JSON, or the raw bytes of a single
// format when ?format= is given.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	raw := r.URL.Query().Get("format")
	if raw != "" {
		if err := pipeline.ValidateFormat(raw); err != nil {
			s.writeError(w, r, err)
			return
		}
		req.Options.Formats = []string{raw}
	}
	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	artifacts, err := s.runner.Render(ctx, req.Diagram, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if raw != "" {
		w.Header().Set("Content-Type", contentTypes[raw])
		w.WriteHeader(http.StatusOK)
		w.Write(artifacts[raw])
		return
	}
	writeJSON(w, http.StatusOK, Response{Artifacts: artifacts})
}

// =============================================================================
// Helpers
// =============================================================================

// decode reads a Request over the server's default options. It writes the
// error reply itself and reports whether the handler should continue.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*Request, bool) {
	req := &Request{Options: s.cfg.Defaults}
	req.Options.Formats = nil

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeErrorStatus(w, r, http.StatusRequestEntityTooLarge, apperrors.ErrCodeInvalidInput,
				"request body exceeds limit")
			return nil, false
		}
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request"))
		return nil, false
	}
	if req.Diagram == nil {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "request has no diagram"))
		return nil, false
	}
	req.Diagram.AssignIDs()
	return req, true
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

// writeError maps err to its HTTP status and writes the error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	status := apperrors.HTTPStatus(code)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	s.writeErrorStatus(w, r, status, code, apperrors.UserMessage(err))
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, code apperrors.Code, msg string) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "code", code, "err", msg)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", code, "err", msg)
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:      string(code),
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newStats(st pipeline.Stats) *Stats {
	return &Stats{
		Shapes:       st.Shapes,
		Connections:  st.Connections,
		RoutePoints:  st.RoutePoints,
		LayoutMillis: float64(st.LayoutTime.Microseconds()) / 1000,
		RouteMillis:  float64(st.RouteTime.Microseconds()) / 1000,
		RenderMillis: float64(st.RenderTime.Microseconds()) / 1000,
	}
}

func nonEmpty(m map[string][]byte) map[string][]byte {
	if len(m) == 0 {
		return nil
	}
	return m
}
