package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), jerr)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("register: %w", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrInvalidCredentials, http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrProfileNotFound, http.StatusNotFound},
		{fmt.Errorf("get project: %w", domain.ErrProjectNotFound), http.StatusNotFound},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if msg != tc.err.Error() {
			t.Errorf("%v: unexpected message %q", tc.err, msg)
		}
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing token"))

	if code != http.StatusUnauthorized || msg != "missing token" {
		t.Fatalf("unexpected response %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsHidden(t *testing.T) {
	code, msg := renderError(t, errors.New("E11000 duplicate key error collection: sb_works.users"))

	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("raw error leaked to client: %q", msg)
	}
}
