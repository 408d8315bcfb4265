package api

import (
	"encoding/json"
	"net/http"
	"time"

	seaterrors "github.com/tablewright/seatplan/pkg/errors"
	"github.com/tablewright/seatplan/pkg/observability"
)

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger logs each request and forwards it to the HTTP hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.Host, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.Host, r.URL.Path, rec.status, duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", duration)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Code:    string(seaterrors.GetCode(err)),
		Message: seaterrors.UserMessage(err),
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch seaterrors.GetCode(err) {
	case seaterrors.ErrCodeNotFound, seaterrors.ErrCodePlanNotFound,
		seaterrors.ErrCodeTableNotFound, seaterrors.ErrCodeSeatNotFound,
		seaterrors.ErrCodeGuestNotFound:
		return http.StatusNotFound
	case seaterrors.ErrCodeConfigInvalid:
		return http.StatusBadRequest
	case seaterrors.ErrCodeLockedSeat, seaterrors.ErrCodeModeViolation:
		return http.StatusUnprocessableEntity
	case seaterrors.ErrCodeStorage:
		return http.StatusBadGateway
	case seaterrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
