package httpx

import (
	"net/http"

	"github.com/codecafelab/content-service/internal/errx"
)

// StatusOf maps an errx.Kind to an HTTP status code.
func StatusOf(kind errx.Kind) int {
	switch kind {
	case errx.NotFound:
		return http.StatusNotFound
	case errx.Conflict:
		return http.StatusConflict
	case errx.Invalid:
		return http.StatusBadRequest
	case errx.Unauthorized:
		return http.StatusUnauthorized
	case errx.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf maps an errx.Kind to the stable error code used in JSON bodies.
func CodeOf(kind errx.Kind) string {
	switch kind {
	case errx.NotFound:
		return "not_found"
	case errx.Conflict:
		return "conflict"
	case errx.Invalid:
		return "invalid_input"
	case errx.Unauthorized:
		return "unauthorized"
	case errx.Unavailable:
		return "unavailable"
	default:
		return "internal_error"
	}
}
