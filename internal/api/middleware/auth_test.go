package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sbworks/marketplace/internal/core/domain"
)

type stubAuthenticator struct {
	session domain.Session
	err     error
	got     string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, raw string) (domain.Session, error) {
	s.got = raw
	return s.session, s.err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	stub := &stubAuthenticator{session: domain.Session{UserID: "u1", Usertype: domain.UsertypeAdmin, Username: "alice"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		s, ok := c.Get(SessionKey).(domain.Session)
		if !ok || s.UserID != "u1" || s.Usertype != domain.UsertypeAdmin {
			t.Fatalf("session not set: %+v", c.Get(SessionKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if stub.got != "abc.def" {
		t.Fatalf("expected raw token to be forwarded, got %q", stub.got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(&stubAuthenticator{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	for _, header := range []string{"Token abc", "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Auth(&stubAuthenticator{})(func(c echo.Context) error {
			t.Fatalf("should not reach next for %q", header)
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(&stubAuthenticator{err: domain.ErrUnauthorized})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
