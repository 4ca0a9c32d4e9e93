package client

import (
	"net/http"
	"strings"
)

// Class is the stable failure taxonomy callers branch on. Classification
// happens once, centrally, in the transport; UI code never inspects raw
// status codes.
type Class string

const (
	ClassUnreachable    Class = "UNREACHABLE"
	ClassUserNotFound   Class = "USER_NOT_FOUND"
	ClassBadCredentials Class = "BAD_CREDENTIALS"
	ClassSessionExpired Class = "SESSION_EXPIRED"
	ClassForbidden      Class = "FORBIDDEN"
	ClassNotFound       Class = "NOT_FOUND"
	ClassRateLimited    Class = "RATE_LIMITED"
	ClassServerError    Class = "SERVER_ERROR"
	ClassUnknown        Class = "UNKNOWN"
)

const (
	msgUnreachable    = "Unable to connect to the server. Please check your internet connection."
	msgBadCredentials = "Email or password is incorrect"
	msgUserNotFound   = "No account found with this email"
	msgRateLimited    = "Too many requests. Please wait a moment and try again."
	msgServerError    = "Something went wrong on our end. Please try again later."
	msgForbidden      = "You do not have permission to perform this action."
	msgNotFound       = "The requested resource was not found."
	msgUnknown        = "An unexpected error occurred. Please try again."
)

// Error is the classified failure returned by every client operation.
type Error struct {
	Class   Class
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// classify maps a transport outcome to the taxonomy. login marks requests to
// a login endpoint, which get the credential-specific 401/404 handling.
// serverMsg is the message extracted from the response body, if any.
func classify(status int, serverMsg string, login bool) *Error {
	switch {
	case status == http.StatusUnauthorized && login:
		if looksLikeMissingUser(serverMsg) {
			return &Error{Class: ClassUserNotFound, Message: msgUserNotFound, Status: status}
		}
		return &Error{Class: ClassBadCredentials, Message: msgBadCredentials, Status: status}
	case status == http.StatusUnauthorized:
		return &Error{Class: ClassSessionExpired, Message: "Your session has expired. Please log in again.", Status: status}
	case status == http.StatusForbidden:
		msg := serverMsg
		if msg == "" {
			msg = msgForbidden
		}
		return &Error{Class: ClassForbidden, Message: msg, Status: status}
	case status == http.StatusNotFound && login:
		return &Error{Class: ClassUserNotFound, Message: msgUserNotFound, Status: status}
	case status == http.StatusNotFound:
		return &Error{Class: ClassNotFound, Message: msgNotFound, Status: status}
	case status == http.StatusTooManyRequests:
		return &Error{Class: ClassRateLimited, Message: msgRateLimited, Status: status}
	case status == http.StatusInternalServerError:
		return &Error{Class: ClassServerError, Message: msgServerError, Status: status}
	default:
		msg := serverMsg
		if msg == "" {
			msg = msgUnknown
		}
		return &Error{Class: ClassUnknown, Message: msg, Status: status}
	}
}

// unreachable builds the no-response classification used for network
// failures and timeouts alike.
func unreachable() *Error {
	return &Error{Class: ClassUnreachable, Message: msgUnreachable}
}

func looksLikeMissingUser(serverMsg string) bool {
	lower := strings.ToLower(serverMsg)
	for _, needle := range []string{"not found", "no user", "does not exist", "no account"} {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}
