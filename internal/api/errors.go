package api

import (
	"net/http"

	"github.com/matzehuels/depdot/pkg/errors"
)

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as JSON. Uncoded errors are reported as
// INTERNAL_ERROR without their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{
		Code:      errors.GetCode(err),
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	}
	status := statusFor(err)
	if resp.Code == "" || status == http.StatusInternalServerError {
		resp.Code = errors.ErrCodeInternal
		resp.Message = "internal error"
	}
	writeJSON(w, status, resp)
}
