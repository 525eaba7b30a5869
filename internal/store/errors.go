package store

import "errors"

var (
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation failed")
	// ErrAuthRequired marks an operation attempted without the required
	// session.
	ErrAuthRequired = errors.New("authentication required")

	ErrProductNotFound = errors.New("product not found")
	// ErrSuperseded is returned by a navigation fetch whose result was
	// discarded because a newer fetch of the same kind started.
	ErrSuperseded = errors.New("request superseded by a newer navigation")
)

// UserError carries the message shown in the error slot. It unwraps to
// ErrValidation or ErrAuthRequired.
type UserError struct {
	kind error
	msg  string
}

func (e *UserError) Error() string { return e.msg }

func (e *UserError) Unwrap() error { return e.kind }

func validation(msg string) *UserError {
	return &UserError{kind: ErrValidation, msg: msg}
}

func authRequired(msg string) *UserError {
	return &UserError{kind: ErrAuthRequired, msg: msg}
}

var (
	ErrEmptyCart               = validation("Cart is empty")
	ErrDeliveryAddressRequired = validation("Please enter a delivery address")
	ErrEmailRequired           = validation("Please enter your email address")
	ErrPasswordRequired        = validation("Please enter your password")
	ErrGoogleProfileRequired   = validation("Google sign-in did not return a profile")
	ErrPhoneRequired           = validation("Please enter your phone number")
	ErrCodeRequired            = validation("Please enter the verification code")
	ErrPhoneSessionRequired    = validation("Please request a verification code first")
	ErrInvalidRating           = validation("Rating must be between 1 and 5")
	ErrUnknownPage             = validation("Unknown page")

	ErrLoginForWishlist = authRequired("Please login to add items to wishlist")
	ErrLoginForOrder    = authRequired("Please login to place an order")
	ErrLoginForReview   = authRequired("Please login to write a review")
	ErrAdminRequired    = authRequired("Admin access required")
)
