package errors

// Error code constants returned to clients.
// Format: CATEGORY_SPECIFIC_DETAIL; front-ends map these to messages.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// Authorization (AUTHZ_)
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// Generic resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Catalog (PRODUCT_ / COLLECTION_)
	ProductNotFound         = "PRODUCT_NOT_FOUND"
	ProductHandleExists     = "PRODUCT_HANDLE_EXISTS"
	ProductMediaNotFound    = "PRODUCT_MEDIA_NOT_FOUND"
	ProductOptionNotFound   = "PRODUCT_OPTION_NOT_FOUND"
	ProductVariantNotFound  = "PRODUCT_VARIANT_NOT_FOUND"
	ProductValueUnresolved  = "PRODUCT_OPTION_VALUE_UNRESOLVED"
	ProductOptionsRequired  = "PRODUCT_VARIANT_OPTIONS_REQUIRED"
	ProductFileRequired     = "PRODUCT_MEDIA_FILE_REQUIRED"
	ProductSKUExists        = "PRODUCT_SKU_EXISTS"
	CollectionNotFound      = "COLLECTION_NOT_FOUND"

	// Address book (ADDRESS_)
	AddressNotFound = "ADDRESS_NOT_FOUND"

	// Uploads / storage (UPLOAD_ / STORAGE_)
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	StorageWriteFailed    = "STORAGE_WRITE_FAILED"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
