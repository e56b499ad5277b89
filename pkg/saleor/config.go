package saleor

import "time"

// DefaultChannel is the fallback catalog channel used when none is
// configured.
const DefaultChannel = "default-channel"

// Config represents the configuration for the Saleor GraphQL client
type Config struct {
	// APIURL is the GraphQL endpoint, e.g. https://shop.example/graphql/
	APIURL string

	// Channel is the catalog/pricing context passed verbatim as a query
	// variable. Opaque to this client.
	Channel string

	// Timeout bounds each HTTP request. Zero means the default.
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
