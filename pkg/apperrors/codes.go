package apperrors

// ErrorCode is the machine-readable part of an error body.
type ErrorCode string

// Infrastructure failures. Clients only see GenericErrorMessage for these.
const (
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Request and state errors.
const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeLimitExceeded    ErrorCode = "LIMIT_EXCEEDED"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"
)

// Access errors.
const (
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeNoRelationship     ErrorCode = "NO_RELATIONSHIP"
	CodeNotOwner           ErrorCode = "NOT_OWNER"
)

// Retryable reports whether the same request may succeed later without
// any change on the caller's side.
func (c ErrorCode) Retryable() bool {
	switch c {
	case CodeInternalError, CodeDatabaseError, CodeExternalServiceError:
		return true
	}
	return false
}
