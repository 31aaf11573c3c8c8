package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"fjacquet/iso20022-gen/internal/logging"
	"fjacquet/iso20022-gen/internal/msgerror"
)

type httpErrorFunc func(w http.ResponseWriter, r *http.Request) error

// requestError is a problem with the request itself.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(msg string) error {
	return &requestError{status: http.StatusBadRequest, msg: msg}
}

func notFound(msg string) error {
	return &requestError{status: http.StatusNotFound, msg: msg}
}

// statusFor maps an error to an HTTP status: caller input problems are
// 400, rejected fragments 422, anything else 500.
func statusFor(err error) int {
	var re *requestError
	if errors.As(err, &re) {
		return re.status
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	switch {
	case errors.Is(err, msgerror.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, msgerror.ErrSchemaParse),
		errors.Is(err, msgerror.ErrMissingTargetNamespace),
		errors.Is(err, msgerror.ErrInsufficientTopLevelElements),
		errors.Is(err, msgerror.ErrMessageCodeNotFound),
		errors.Is(err, msgerror.ErrRequiredFieldMissing),
		errors.Is(err, msgerror.ErrUnsupportedMessage),
		errors.Is(err, msgerror.ErrDataExtraction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func handleError(logger logging.Logger, handler httpErrorFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			return
		}
		status := statusFor(err)
		entry := logger.WithError(err).WithFields(
			logging.F(logging.FieldPath, r.URL.Path),
			logging.F(logging.FieldStatus, status))
		if status >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Warn("Request rejected")
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
