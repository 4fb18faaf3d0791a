// Package v1 provides the marketplace business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors for the expected failures of each
// operation. They are wrapped with context using fmt.Errorf("%w") when
// returned; request payload problems are reported as *domain.ValidationError.
//
// Error Checking (in handlers):
//
//	var verr *domain.ValidationError
//	switch {
//	case errors.As(err, &verr):
//	    c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "details": verr.Fields})
//	case errors.Is(err, logicv1.ErrInvalidCredentials):
//	    c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
//	}
package v1

import "errors"

// Sentinel errors for marketplace operations.
var (
	// ErrDuplicateEmail indicates a user with the email is already registered.
	// HTTP Status: 400 Bad Request
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// hash, so callers cannot tell which accounts exist.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSellerNotFound indicates the listing's seller_email matches no user.
	// HTTP Status: 400 Bad Request
	ErrSellerNotFound = errors.New("seller not found")

	// ErrMalformedID indicates the identifier is not a valid store identifier.
	// HTTP Status: 400 Bad Request
	ErrMalformedID = errors.New("invalid id")

	// ErrNotFound indicates no listing matches a well-formed identifier.
	// HTTP Status: 404 Not Found
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates the store did not answer.
	// Reported only by the diagnostics endpoint.
	ErrStoreUnavailable = errors.New("store unavailable")
)
