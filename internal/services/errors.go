package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrDuplicateEmail     = errors.New("email is already taken")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("email address is invalid")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidPhone    = errors.New("phone number is invalid")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrTooManyAttempts = errors.New("too many verification attempts")

	ErrCategoryNotFound    = errors.New("category not found")
	ErrFoodNotFound        = errors.New("food not found")
	ErrFoodUnavailable     = errors.New("food is not available")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrAddressRequired     = errors.New("delivery address is required")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrWishlistItemMissing = errors.New("wishlist item not found")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// Error codes carried in registration failures. Clients match on them.
const (
	CodeDuplicateEmail   = "DuplicateEmail"
	CodePasswordTooShort = "PasswordTooShort"
	CodeInvalidEmail     = "InvalidEmail"
)

func RegistrationCode(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return CodeDuplicateEmail
	case errors.Is(err, ErrPasswordTooShort):
		return CodePasswordTooShort
	case errors.Is(err, ErrInvalidEmail):
		return CodeInvalidEmail
	default:
		return ""
	}
}
