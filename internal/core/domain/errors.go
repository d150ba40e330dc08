package domain

import "errors"

// Token verification failures. They never leave the identity resolver.
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenRevoked = errors.New("token revoked")
var ErrNoCredentials = errors.New("no bearer credentials")

// Authorization failures.
var ErrUnauthenticated = errors.New("authentication required")
var ErrInsufficientRole = errors.New("insufficient role")
var ErrNotOwner = errors.New("access denied")

// Login failures.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountInactive = errors.New("account is inactive")

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrDestinationNotFound = errors.New("destination not found")
var ErrDestinationInUse = errors.New("destination has bookings")
var ErrBookingNotFound = errors.New("booking not found")
var ErrFavoriteNotFound = errors.New("favorite not found")
var ErrFavoriteExists = errors.New("destination already in favorites")
var ErrInvalidInput = errors.New("invalid input")
