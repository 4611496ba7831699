package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // session token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed session token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revoked by logout
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // email already registered
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // username already taken

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"  // no access to the resource
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY" // only the listing owner may do this

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non-numeric or missing ID
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // value out of range
	ValidationRequired     = "VALIDATION_REQUIRED"      // required field missing

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // resource missing
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // duplicate resource
	ResourceConflict      = "RESOURCE_CONFLICT"       // referenced elsewhere

	// ==================== Listings (PRODUCT_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"        // listing missing
	ProductInvalidCategory = "PRODUCT_INVALID_CATEGORY" // unknown category
	ProductNotActive       = "PRODUCT_NOT_ACTIVE"       // listing no longer active

	// ==================== Cart (CART_) ====================
	CartEmpty           = "CART_EMPTY"            // checkout with no items
	CartItemNotFound    = "CART_ITEM_NOT_FOUND"   // product not in cart
	CartInvalidQuantity = "CART_INVALID_QUANTITY" // quantity out of range

	// ==================== Orders (ORDER_) ====================
	OrderNotFound = "ORDER_NOT_FOUND" // order missing

	// ==================== Payments (PAYMENT_) ====================
	PaymentSignatureInvalid = "PAYMENT_SIGNATURE_INVALID" // provider signature mismatch
	PaymentProviderError    = "PAYMENT_PROVIDER_ERROR"    // provider API failure

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // unsupported content type
	UploadFailed          = "UPLOAD_FAILED"            // presign failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // database failure
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // external service failure
)
