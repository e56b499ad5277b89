package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to their own display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // sign-in required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // access token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthRefreshFailed      = "AUTH_REFRESH_FAILED"      // token rotation failed
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed identifier
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // resource missing

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // no matching line

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound  = "CATALOG_PRODUCT_NOT_FOUND"  // unknown product slug
	CatalogCategoryNotFound = "CATALOG_CATEGORY_NOT_FOUND" // unknown category slug

	// ==================== Upstream (UPSTREAM_) ====================
	UpstreamUnavailable = "UPSTREAM_UNAVAILABLE" // commerce API unreachable
	UpstreamError       = "UPSTREAM_ERROR"       // commerce API rejected the request

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR" // unexpected failure
	InternalConfigError = "INTERNAL_CONFIG_ERROR" // bad configuration
)
