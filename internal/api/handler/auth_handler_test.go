package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, id domain.Identity) error
	meFn       func(ctx context.Context, id domain.Identity) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, id domain.Identity) error {
	return s.logoutFn(ctx, id)
}

func (s *stubAuthService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.meFn(ctx, id)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Password != "s3cretpass" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 42, Name: in.Name, Email: in.Email, Role: domain.RoleUser, Active: true}, nil
		},
	}
	handler := NewAuthHandler(stub)

	// A role in the body is ignored; the DTO has no field for it.
	req := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"s3cretpass","role":"ADMIN"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != "USER" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if _, leaked := resp["passwordHash"]; leaked {
		t.Fatalf("password hash must not be rendered")
	}
}

func TestAuthHandler_Register_ValidationFails(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	req := jsonRequest(http.MethodPost, "/api/auth/register", `{"name":"Bob","email":"not-an-email","password":"short"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	msg := he.Message.(string)
	if !strings.Contains(msg, "email must be a valid email") || !strings.Contains(msg, "password must be at least 8") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	req := jsonRequest(http.MethodPost, "/api/auth/register", `{"name":"Bob","email":"bob@example.com","password":"longenough"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "tok", User: &domain.User{ID: 42}}, nil
		},
	})

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"s3cretpass"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "tok" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
}

func TestAuthHandler_Login_FailuresPassThrough(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrAccountInactive} {
		e := newTestEcho()
		handler := NewAuthHandler(&stubAuthService{
			loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
				return nil, want
			},
		})

		req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
		c := e.NewContext(req, httptest.NewRecorder())

		if err := handler.Login(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestLoginOutcome(t *testing.T) {
	cases := map[string]error{
		"success":             nil,
		"invalid_credentials": domain.ErrInvalidCredentials,
		"inactive":            domain.ErrAccountInactive,
		"error":               errors.New("db down"),
	}
	for want, err := range cases {
		if got := loginOutcome(err); got != want {
			t.Fatalf("loginOutcome(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestAuthHandler_Logout_UsesContextIdentity(t *testing.T) {
	e := newTestEcho()
	var got domain.Identity
	handler := NewAuthHandler(&stubAuthService{
		logoutFn: func(ctx context.Context, id domain.Identity) error {
			got = id
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	want := domain.Identity{UserID: 42, Role: domain.RoleUser, TokenID: "jti-1"}
	req = req.WithContext(domain.WithIdentity(req.Context(), want))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got != want {
		t.Fatalf("logout got identity %+v", got)
	}
}

func TestAuthHandler_Me_WithoutIdentity(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), httptest.NewRecorder())
	if err := handler.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
