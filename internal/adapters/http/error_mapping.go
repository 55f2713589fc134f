package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

// errorBody is the uniform failure shape: a machine-checkable category plus
// a human-readable detail. Internal errors never expose their cause.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func mapErrorToHTTPStatus(err error) (int, string) {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case domain.IsKind(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthenticated"
	case domain.IsKind(err, domain.ErrMultiOrgClaim), domain.IsKind(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case domain.IsKind(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable, "temporary"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, category := mapErrorToHTTPStatus(err)
	detail := err.Error()
	if status >= http.StatusInternalServerError {
		slog.Error("request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		detail = "internal error"
	}
	writeJSON(w, status, errorBody{Error: category, Detail: detail})
}

func writeErrorMessage(w http.ResponseWriter, status int, category, detail string) {
	writeJSON(w, status, errorBody{Error: category, Detail: detail})
}
