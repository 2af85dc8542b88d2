package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

func aliceResult(usertype domain.Usertype) *ports.AuthResult {
	return &ports.AuthResult{
		User:  &domain.User{ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: "$2a$10$hash", Usertype: usertype},
		Token: "jwt-token",
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Username != "alice" || in.Email != "a@x.com" || in.Password != "pw123" || in.Usertype != "freelancer" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return aliceResult(domain.UsertypeFreelancer), nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","email":"a@x.com","password":"pw123","usertype":"freelancer"}`)
	c, rec := newTestContext(http.MethodPost, "/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["username"] != "alice" || resp["usertype"] != "freelancer" || resp["token"] != "jwt-token" {
		t.Fatalf("unexpected response %v", resp)
	}
	if strings.Contains(rec.Body.String(), "hash") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Invalid(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	for _, body := range []string{
		`{"username":"alice","email":"a@x.com","password":"pw","usertype":"guest"}`,
		`{"username":"alice","email":"not-an-email","password":"pw","usertype":"client"}`,
		`{"email":"a@x.com","password":"pw","usertype":"client"}`,
	} {
		c, _ := newTestContext(http.MethodPost, "/register", strings.NewReader(body))
		if err := h.Register(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrEmailTaken
		},
	})

	body := strings.NewReader(`{"username":"alice","email":"a@x.com","password":"pw","usertype":"client"}`)
	c, _ := newTestContext(http.MethodPost, "/register", body)
	if err := h.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "a@x.com" || password != "pw123" {
				t.Fatalf("unexpected credentials %s/%s", email, password)
			}
			return aliceResult(domain.UsertypeClient), nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"pw123"}`))
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "jwt-token" || resp.Usertype != "client" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	cases := map[error]string{
		domain.ErrUserNotFound:       "User does not exist",
		domain.ErrInvalidCredentials: "Invalid credentials",
	}
	for svcErr, want := range cases {
		h := NewAuthHandler(&stubAuthService{
			loginFn: func(context.Context, string, string) (*ports.AuthResult, error) { return nil, svcErr },
		})

		c, rec := newTestContext(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"nope"}`))
		if err := h.Login(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", svcErr, rec.Code)
		}
		var resp loginFailure
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Msg != want {
			t.Fatalf("%v: expected msg %q, got %q", svcErr, want, resp.Msg)
		}
	}
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	cases := map[string]string{
		`{"email":"","password":"pw"}`: "Email and password are required",
		`{"email":"a@x.com"}`:          "Email and password are required",
		`{"email":`:                    "Invalid request body",
	}
	for body, want := range cases {
		h := NewAuthHandler(&stubAuthService{
			loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		})

		c, rec := newTestContext(http.MethodPost, "/login", strings.NewReader(body))
		if err := h.Login(c); err != nil {
			t.Fatalf("%s: handler error: %v", body, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
		var resp loginFailure
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Msg != want {
			t.Fatalf("%s: expected msg %q, got %q", body, want, resp.Msg)
		}
	}
}

func TestAuthHandler_Login_UnexpectedError(t *testing.T) {
	boom := errors.New("mongo down")
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) { return nil, boom },
	})

	c, _ := newTestContext(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"pw"}`))
	if err := h.Login(c); !errors.Is(err, boom) {
		t.Fatalf("expected the error to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var got domain.Session
	h := NewAuthHandler(&stubAuthService{
		logoutFn: func(_ context.Context, s domain.Session) error {
			got = s
			return nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/logout", nil)
	withSession(c, domain.Session{UserID: "u1", TokenID: "jti-1"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got.TokenID != "jti-1" {
		t.Fatalf("expected session to be revoked, got %+v", got)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(http.MethodGet, "/me", nil)
	withSession(c, domain.Session{UserID: "u1", Usertype: domain.UsertypeAdmin, Username: "root"})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.UserID != "u1" || resp.Usertype != "admin" || resp.Username != "root" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAuthHandler_Me_NoSession(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodGet, "/me", nil)
	if err := h.Me(c); err == nil {
		t.Fatalf("expected an error without a session")
	}
}
