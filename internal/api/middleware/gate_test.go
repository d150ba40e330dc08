package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

func runGate(t *testing.T, policy domain.RoutePolicy, id *domain.Identity) (called bool, err error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id != nil {
		req = req.WithContext(domain.WithIdentity(req.Context(), *id))
	}
	c := e.NewContext(req, httptest.NewRecorder())

	err = Gate(policy)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestGate_Allows(t *testing.T) {
	user := &domain.Identity{UserID: 42, Role: domain.RoleUser}
	admin := &domain.Identity{UserID: 7, Role: domain.RoleAdmin}

	cases := []struct {
		name   string
		policy domain.RoutePolicy
		id     *domain.Identity
	}{
		{"anonymous on public", domain.Public(), nil},
		{"user on authenticated", domain.AuthenticatedOnly(), user},
		{"admin on authenticated", domain.AuthenticatedOnly(), admin},
		{"admin on admin route", domain.RequiresRole(domain.RoleAdmin), admin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called, err := runGate(t, tc.policy, tc.id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !called {
				t.Fatalf("next handler not called")
			}
		})
	}
}

func TestGate_Forbids(t *testing.T) {
	user := &domain.Identity{UserID: 42, Role: domain.RoleUser}

	cases := []struct {
		name   string
		policy domain.RoutePolicy
		id     *domain.Identity
		want   error
	}{
		{"anonymous on authenticated", domain.AuthenticatedOnly(), nil, domain.ErrUnauthenticated},
		{"anonymous on admin route", domain.RequiresRole(domain.RoleAdmin), nil, domain.ErrUnauthenticated},
		{"user on admin route", domain.RequiresRole(domain.RoleAdmin), user, domain.ErrInsufficientRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called, err := runGate(t, tc.policy, tc.id)
			if called {
				t.Fatalf("should not reach next handler")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
