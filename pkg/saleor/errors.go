package saleor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid saleor client config")

	// ErrNetwork is returned when the API cannot be reached
	ErrNetwork = errors.New("saleor api unreachable")

	// ErrGraphQL is returned when the API answers with top-level GraphQL errors
	ErrGraphQL = errors.New("saleor graphql error")

	// ErrInvalidCredentials is returned when tokenCreate rejects the sign-in
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrRefreshFailed is returned when tokenRefresh rejects the refresh token
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrUnauthorized is returned when a call requiring a token is rejected
	ErrUnauthorized = errors.New("not authenticated")

	// ErrNotFound is returned when a product or category does not exist
	ErrNotFound = errors.New("not found")
)

// AccountError is one entry of a mutation's errors payload.
type AccountError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// AccountErrors is the non-empty errors payload of an account mutation,
// usable as an error and mappable to a per-field error map.
type AccountErrors []AccountError

func (e AccountErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ae := range e {
		if ae.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", ae.Field, ae.Message))
		} else {
			parts = append(parts, ae.Message)
		}
	}
	return "account error: " + strings.Join(parts, "; ")
}

// Fields returns the field-to-message map for form-level display.
// Entries without a field are keyed under "_".
func (e AccountErrors) Fields() map[string]string {
	fields := make(map[string]string, len(e))
	for _, ae := range e {
		key := ae.Field
		if key == "" {
			key = "_"
		}
		fields[key] = ae.Message
	}
	return fields
}
