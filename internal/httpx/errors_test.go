package httpx

import (
	"net/http"
	"testing"

	"github.com/codecafelab/content-service/internal/errx"
)

func TestStatusOf(t *testing.T) {
	cases := map[errx.Kind]int{
		errx.NotFound:     http.StatusNotFound,
		errx.Conflict:     http.StatusConflict,
		errx.Invalid:      http.StatusBadRequest,
		errx.Unauthorized: http.StatusUnauthorized,
		errx.Unavailable:  http.StatusServiceUnavailable,
		errx.Internal:     http.StatusInternalServerError,
		errx.Unknown:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := StatusOf(kind); got != want {
			t.Errorf("StatusOf(%v) = %d, want %d", kind, got, want)
		}
	}
}

func TestCodeOf(t *testing.T) {
	cases := map[errx.Kind]string{
		errx.NotFound:     "not_found",
		errx.Conflict:     "conflict",
		errx.Invalid:      "invalid_input",
		errx.Unauthorized: "unauthorized",
		errx.Unavailable:  "unavailable",
		errx.Internal:     "internal_error",
		errx.Unknown:      "internal_error",
	}
	for kind, want := range cases {
		if got := CodeOf(kind); got != want {
			t.Errorf("CodeOf(%v) = %q, want %q", kind, got, want)
		}
	}
}
