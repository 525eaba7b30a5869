package apiclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// User-facing messages. The container shows these verbatim.
const (
	MsgAuthRequired       = "Authentication required. Please log in again."
	MsgInvalidCredentials = "Invalid email or password. Please check your credentials and try again."
	MsgCheckInformation   = "Please check your information and try again."
	MsgInvalidRequest     = "Invalid request. Please check your information and try again."
	MsgAccessDenied       = "Access denied. You do not have permission to perform this action."
	MsgNotFound           = "The requested resource was not found."
	MsgConflict           = "Conflict: This item already exists or there was a conflict with your request."
	MsgServerError        = "Server error. Please try again later."
	MsgUnknown            = "Something went wrong. Please try again."
	MsgInvalidResponse    = "Invalid response format from server"
	MsgInvalidCode        = "Invalid or expired verification code. Please request a new code."

	MsgEmailRegistered   = "This email address is already registered. Please use a different email or try logging in."
	MsgPasswordTooShort  = "Password must be at least 6 characters long."
	MsgInvalidEmail      = "Please enter a valid email address."
	MsgRegistrationError = "Registration failed. Please try again later."
)

var (
	// ErrTransport wraps failures to reach the API at all: DNS, refused
	// connections, timeouts.
	ErrTransport       = errors.New("apiclient: transport failure")
	ErrInvalidResponse = errors.New("apiclient: invalid response format")
)

// APIError is a non-2xx reply. Message is safe to show to a shopper; Body keeps
// the raw reply for logs.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return e.Message
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// UserMessage converts any error returned by the client into display text.
func UserMessage(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return MsgServerError
	case errors.Is(err, ErrTransport):
		return MsgServerError
	case errors.Is(err, ErrInvalidResponse):
		return MsgInvalidResponse
	default:
		return err.Error()
	}
}

// classifyStatus picks the generic message for a failed reply.
func classifyStatus(status int, body string) string {
	switch {
	case status == 401:
		return MsgAuthRequired
	case status == 400:
		lower := strings.ToLower(body)
		if strings.Contains(body, "Invalid email or password") || strings.Contains(lower, "login") {
			return MsgInvalidCredentials
		}
		if strings.Contains(lower, "validation") {
			return MsgCheckInformation
		}
		return MsgInvalidRequest
	case status == 403:
		return MsgAccessDenied
	case status == 404:
		return MsgNotFound
	case status == 409:
		return MsgConflict
	case status >= 500:
		return MsgServerError
	default:
		return MsgUnknown
	}
}

func classifyLogin(status int, body string) string {
	if status == 400 || status == 401 {
		return MsgInvalidCredentials
	}
	return classifyStatus(status, body)
}

func classifyPhoneVerify(status int, body string) string {
	if status == 400 || status == 401 {
		return MsgInvalidCode
	}
	return classifyStatus(status, body)
}

func classifyRegister(status int, body string) string {
	switch {
	case strings.Contains(body, "DuplicateUserName"),
		strings.Contains(body, "already taken"),
		strings.Contains(body, "DuplicateEmail"):
		return MsgEmailRegistered
	case strings.Contains(body, "PasswordTooShort"):
		return MsgPasswordTooShort
	case strings.Contains(body, "InvalidEmail"):
		return MsgInvalidEmail
	case status == 400:
		return MsgCheckInformation
	default:
		return MsgRegistrationError
	}
}

func transportError(err error) error {
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
