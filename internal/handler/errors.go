package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"conversa/internal/domain"
	"conversa/internal/httputil"
)

const internalErrorDetail = "internal server error"

// errorWriter converts domain errors to problem responses. Client errors
// always carry their message; server errors carry it only in debug mode.
type errorWriter struct {
	logger *slog.Logger
	debug  bool
}

func (e errorWriter) handleError(w http.ResponseWriter, r *http.Request, err error) {
	problem := httputil.ProblemDetail{
		Instance:  r.URL.Path,
		RequestID: httputil.GetRequestID(r),
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		problem.Status = http.StatusBadRequest
		problem.Detail = err.Error()
	case errors.Is(err, httputil.ErrBodyTooLarge):
		problem.Status = http.StatusRequestEntityTooLarge
		problem.Detail = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		problem.Status = http.StatusNotFound
		problem.Detail = err.Error()
	default:
		problem.Status = http.StatusInternalServerError
		problem.Detail = internalErrorDetail
		if e.debug {
			problem.Detail = err.Error()
		}
		e.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", problem.RequestID,
			"kind", errorKind(err),
			"error", err,
		)
	}

	httputil.RespondProblem(w, problem)
}

// errorKind names the taxonomy bucket for logs
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrStorage):
		return "storage"
	case errors.Is(err, domain.ErrModelProvider):
		return "model"
	case errors.Is(err, domain.ErrConfiguration):
		return "configuration"
	default:
		return "internal"
	}
}

// badRequest wraps a body parsing failure so handleError answers 400 (or 413)
func badRequest(err error) error {
	if errors.Is(err, httputil.ErrBodyTooLarge) {
		return err
	}
	return &domain.ValidationError{Message: err.Error()}
}
