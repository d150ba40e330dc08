package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// --- Destinations ---

type destinationRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Country     string  `json:"country"`
	City        string  `json:"city"`
	Description string  `json:"description" validate:"max=2000"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"       validate:"gte=0"`
}

type destinationResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	City        string  `json:"city"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
}

// --- Bookings ---

// createBookingRequest carries no owner field; the owner is always the caller.
type createBookingRequest struct {
	DestinationID int64  `json:"destinationId" validate:"required,gt=0"`
	StartDate     string `json:"startDate"     validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"endDate"       validate:"required,datetime=2006-01-02"`
	Travelers     int    `json:"travelers"     validate:"required,gt=0"`
}

type bookingResponse struct {
	ID          int64                `json:"id"`
	Destination *destinationResponse `json:"destination"`
	StartDate   string               `json:"startDate"`
	EndDate     string               `json:"endDate"`
	Travelers   int                  `json:"travelers"`
	Status      string               `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// --- Favorites ---

type addFavoriteRequest struct {
	DestinationID int64 `json:"destinationId" validate:"required,gt=0"`
}

type favoriteResponse struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"userId"`
	Destination *destinationResponse `json:"destination"`
}
