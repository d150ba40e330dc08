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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrInsufficientRole, http.StatusForbidden, "insufficient role"},
		{fmt.Errorf("booking 7: %w", domain.ErrNotOwner), http.StatusForbidden, "access denied"},
		{domain.ErrAccountInactive, http.StatusForbidden, "account is inactive"},
		{domain.ErrBookingNotFound, http.StatusNotFound, "booking not found"},
		{domain.ErrFavoriteExists, http.StatusConflict, "destination already in favorites"},
		{domain.ErrDestinationInUse, http.StatusConflict, "destination has bookings"},
		{fmt.Errorf("%w: travelers must be positive", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: travelers must be positive"},
		{echo.NewHTTPError(http.StatusUnprocessableEntity, "email is required"), http.StatusUnprocessableEntity, "email is required"},
		{errors.New("connection reset by peer"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			require.Equal(t, tc.wantCode, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMsg, body.Error)
		})
	}
}
