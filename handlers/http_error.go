package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

// HTTPError is a failure with a message safe to show the client. Err keeps the
// underlying cause for the logs.
type HTTPError struct {
	Message string
	Code    int
	Err     error
}

func NewHTTPError(message string, code int, err error) *HTTPError {
	return &HTTPError{Message: message, Code: code, Err: err}
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// HandlerFunc is an http.HandlerFunc that returns its failure instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorWrapper adapts a HandlerFunc, writing returned errors as {"message": ...}.
// Errors that are not an *HTTPError become a 500.
func ErrorWrapper(handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			return
		}

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) {
			httpErr = NewHTTPError("An unknown error occurred!", http.StatusInternalServerError, err)
		}
		if httpErr.Code == 0 {
			httpErr.Code = http.StatusInternalServerError
		}

		l := hlog.FromRequest(r)
		if httpErr.Code >= http.StatusInternalServerError {
			l.Error().Err(httpErr.Err).Int("status", httpErr.Code).Msg(httpErr.Message)
		} else {
			l.Warn().Err(httpErr.Err).Int("status", httpErr.Code).Msg(httpErr.Message)
		}

		writeJSON(w, httpErr.Code, map[string]string{"message": httpErr.Message})
	}
}
