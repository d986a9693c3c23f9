package server

import (
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ontoview/pkg/buildinfo"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/pipeline"
)

// RenderResponse is the body of a successful POST /v1/render.
type RenderResponse struct {
	RequestID string `json:"request_id"`

	// Artifacts maps each format to its output. Text formats are returned
	// verbatim, PNG is base64-encoded.
	Artifacts map[string]string `json:"artifacts"`

	Stats  StatsResponse `json:"stats"`
	Cached []string      `json:"cached,omitempty"`
}

// StatsResponse reports the work done for one render.
type StatsResponse struct {
	Nodes        int     `json:"nodes"`
	Triples      int     `json:"triples"`
	ParseMillis  float64 `json:"parse_ms"`
	RenderMillis float64 `json:"render_ms"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	RequestID string      `json:"request_id"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// FormatsResponse is the body of GET /v1/formats.
type FormatsResponse struct {
	Formats  []string `json:"formats"`
	Defaults []string `json:"defaults"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FormatsResponse{
		Formats:  pipeline.SupportedFormats,
		Defaults: pipeline.DefaultFormats,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var opts pipeline.Options
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body exceeds limit")
			return
		}
		writeError(w, r, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid request body: "+err.Error())
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}

	artifacts := make(map[string]string, len(result.Artifacts))
	for format, data := range result.Artifacts {
		if format == pipeline.FormatPNG {
			artifacts[format] = base64.StdEncoding.EncodeToString(data)
			continue
		}
		artifacts[format] = string(data)
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		RequestID: middleware.GetReqID(r.Context()),
		Artifacts: artifacts,
		Stats: StatsResponse{
			Nodes:        result.Stats.NodeCount,
			Triples:      result.Stats.TripleCount,
			ParseMillis:  float64(result.Stats.ParseTime.Microseconds()) / 1000,
			RenderMillis: float64(result.Stats.RenderTime.Microseconds()) / 1000,
		},
		Cached: result.CacheInfo.Hits,
	})
}

func (s *Server) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "err", err, "request_id", middleware.GetReqID(r.Context()))
	}

	detail := ErrorDetail{Code: string(errors.ErrCodeInternal), Message: "internal error"}
	var e *errors.Error
	if stderrors.As(err, &e) {
		detail.Code = string(e.Code)
		detail.Path = e.Path
		if status < http.StatusInternalServerError {
			detail.Message = e.Message
			if e.Cause != nil {
				detail.Message += ": " + e.Cause.Error()
			}
		}
	}
	writeJSON(w, status, ErrorResponse{
		RequestID: middleware.GetReqID(r.Context()),
		Error:     detail,
	})
}

// statusFor maps error codes to HTTP statuses. Malformed contexts and
// documents are well-formed requests that cannot be processed.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidContext, errors.ErrCodeInvalidNode:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
