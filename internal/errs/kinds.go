package errs

import (
	"errors"
	"net/http"
)

// StatusCode returns the HTTP status carried by the first *HTTPError in
// err's chain, or 500 when there is none. A nil error maps to 200.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}

	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a 404 HTTPError.
func IsNotFound(err error) bool {
	return errors.Is(err, &HTTPError{Status: http.StatusNotFound})
}

// IsBadRequest reports whether err is a 400 HTTPError.
func IsBadRequest(err error) bool {
	return errors.Is(err, &HTTPError{Status: http.StatusBadRequest})
}

// IsUnauthorized reports whether err is a 401 HTTPError.
func IsUnauthorized(err error) bool {
	return errors.Is(err, &HTTPError{Status: http.StatusUnauthorized})
}
