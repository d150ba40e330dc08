package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
}

func toDestinationInput(req destinationRequest) ports.DestinationInput {
	return ports.DestinationInput{
		Name:        req.Name,
		Country:     req.Country,
		City:        req.City,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
	}
}

func toBookingInput(req createBookingRequest) (ports.CreateBookingInput, error) {
	start, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return ports.CreateBookingInput{}, fmt.Errorf("%w: startDate must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	end, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		return ports.CreateBookingInput{}, fmt.Errorf("%w: endDate must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return ports.CreateBookingInput{
		DestinationID: req.DestinationID,
		StartDate:     start,
		EndDate:       end,
		Travelers:     req.Travelers,
	}, nil
}

// toDestinationFilter reads the catalogue query parameters. Unknown sort
// values are left for the service to reject.
func toDestinationFilter(c echo.Context) (ports.DestinationFilter, error) {
	f := ports.DestinationFilter{
		Search:    strings.TrimSpace(c.QueryParam("search")),
		Country:   strings.TrimSpace(c.QueryParam("country")),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	var err error
	if f.MinPrice, err = optionalFloat(c.QueryParam("minPrice"), "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = optionalFloat(c.QueryParam("maxPrice"), "maxPrice"); err != nil {
		return f, err
	}
	return f, nil
}

func optionalFloat(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, name)
	}
	return &v, nil
}

// paramID parses a positive numeric path parameter.
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, name)
	}
	return id, nil
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func toDestinationResponse(d *domain.Destination) *destinationResponse {
	if d == nil {
		return nil
	}
	return &destinationResponse{
		ID:          d.ID,
		Name:        d.Name,
		Country:     d.Country,
		City:        d.City,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Price:       d.Price,
	}
}

func toDestinationList(items []*domain.Destination) []*destinationResponse {
	out := make([]*destinationResponse, len(items))
	for i, d := range items {
		out[i] = toDestinationResponse(d)
	}
	return out
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		Destination: toDestinationResponse(b.Destination),
		StartDate:   b.StartDate.UTC().Format(domain.DateLayout),
		EndDate:     b.EndDate.UTC().Format(domain.DateLayout),
		Travelers:   b.Travelers,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.UTC(),
	}
}

func toBookingList(items []*domain.Booking) []bookingResponse {
	out := make([]bookingResponse, len(items))
	for i, b := range items {
		out[i] = toBookingResponse(b)
	}
	return out
}

func toFavoriteResponse(f *domain.Favorite) favoriteResponse {
	return favoriteResponse{
		ID:          f.ID,
		UserID:      f.UserID,
		Destination: toDestinationResponse(f.Destination),
	}
}

func toFavoriteList(items []*domain.Favorite) []favoriteResponse {
	out := make([]favoriteResponse, len(items))
	for i, f := range items {
		out[i] = toFavoriteResponse(f)
	}
	return out
}
