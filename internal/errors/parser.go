package errors

import (
	"errors"
	"strings"

	"storefront-gateway/pkg/saleor"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseUpstream converts an error from the commerce API into a code and
// message safe to return to clients. Transport details are hidden.
func ParseUpstream(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An unexpected error occurred",
		}
	}

	switch {
	case errors.Is(err, saleor.ErrInvalidCredentials):
		return ErrorInfo{Code: AuthInvalidCredentials, Message: "Invalid email or password"}
	case errors.Is(err, saleor.ErrRefreshFailed):
		return ErrorInfo{Code: AuthRefreshFailed, Message: "Session expired. Please sign in again"}
	case errors.Is(err, saleor.ErrUnauthorized):
		return ErrorInfo{Code: AuthUnauthorized, Message: "Sign-in required"}
	case errors.Is(err, saleor.ErrNotFound):
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	case errors.Is(err, saleor.ErrNetwork):
		return ErrorInfo{Code: UpstreamUnavailable, Message: "Commerce API is unreachable. Please try again later"}
	case errors.Is(err, saleor.ErrGraphQL):
		return ErrorInfo{Code: UpstreamError, Message: "Commerce API request failed. Please try again later"}
	}

	errLower := strings.ToLower(err.Error())
	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    UpstreamUnavailable,
			Message: "Commerce API is unreachable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An unexpected error occurred. Please try again later",
	}
}

// ParseAndRespond parses an upstream error and writes the standard payload.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseUpstream(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func notFoundMessage(context string) string {
	switch context {
	case "product":
		return "Product not found"
	case "category":
		return "Category not found"
	case "user":
		return "User not found"
	default:
		return "Resource not found"
	}
}
