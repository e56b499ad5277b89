package model

// Country holds a country code and its display name as the backend
// returns them.
type Country struct {
	Code    string `json:"code"`
	Country string `json:"country"`
}

// Address mirrors the backend address shape used for default shipping and
// billing addresses.
type Address struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	StreetAddress1 string  `json:"streetAddress1"`
	StreetAddress2 string  `json:"streetAddress2,omitempty"`
	City           string  `json:"city"`
	PostalCode     string  `json:"postalCode"`
	Country        Country `json:"country"`
}

// User is the authenticated profile held in the session.
type User struct {
	ID                     string   `json:"id"`
	Email                  string   `json:"email"`
	FirstName              string   `json:"firstName"`
	LastName               string   `json:"lastName"`
	IsActive               bool     `json:"isActive"`
	DateJoined             string   `json:"dateJoined,omitempty"`
	DefaultShippingAddress *Address `json:"defaultShippingAddress,omitempty"`
	DefaultBillingAddress  *Address `json:"defaultBillingAddress,omitempty"`
}
