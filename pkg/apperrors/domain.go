package apperrors

import (
	"net/http"
)

// =========================================================================
// Factories
// =========================================================================

// ErrNotFound wraps a repository miss (gorm.ErrRecordNotFound or a sentinel).
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Auth
// =========================================================================

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrMissingAuthHeader = New(
	CodeUnauthorized,
	"auth",
	"Unauthorized - missing authorization header",
	http.StatusUnauthorized,
)

var ErrInvalidAuthToken = New(
	CodeInvalidToken,
	"auth",
	"Unauthorized - invalid token",
	http.StatusUnauthorized,
)

// =========================================================================
// Profiles
// =========================================================================

var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Profile not found",
	http.StatusNotFound,
)

var ErrCannotTargetSelf = New(
	CodeInvalidOperation,
	"profile",
	"Operation on your own profile is not allowed",
	http.StatusBadRequest,
)

var ErrInvalidAccountType = New(
	CodeForbidden,
	"profile",
	"Operation not available for this account type",
	http.StatusForbidden,
)

// =========================================================================
// Relationship gate
// =========================================================================

var ErrSenderProfileNotFound = New(
	CodeForbidden,
	"notification",
	"Sender profile not found",
	http.StatusForbidden,
)

var ErrRecipientNotFound = New(
	CodeNotFound,
	"notification",
	"Recipient not found",
	http.StatusNotFound,
)

var ErrNoRelationship = New(
	CodeNoRelationship,
	"notification",
	"Unauthorized - no relationship with recipient",
	http.StatusForbidden,
)

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// =========================================================================
// Collaborations
// =========================================================================

var ErrCollaborationNotFound = New(
	CodeNotFound,
	"collaboration",
	"Collaboration not found",
	http.StatusNotFound,
)

var ErrNotCollaborationParty = New(
	CodeForbidden,
	"collaboration",
	"You are not a party to this collaboration",
	http.StatusForbidden,
)

var ErrCollaborationTerminal = New(
	CodeInvalidStatus,
	"collaboration",
	"Collaboration is already finished",
	http.StatusConflict,
)

var ErrTransitionNotAllowed = New(
	CodeInvalidOperation,
	"collaboration",
	"This status change is not allowed for your role",
	http.StatusForbidden,
)

var ErrActiveCollaborationExists = New(
	CodeConflict,
	"collaboration",
	"An active collaboration with this profile already exists",
	http.StatusConflict,
)

// =========================================================================
// Posts & applications
// =========================================================================

var ErrPostNotFound = New(
	CodeNotFound,
	"post",
	"Collaboration post not found",
	http.StatusNotFound,
)

var ErrNotPostAuthor = New(
	CodeNotOwner,
	"post",
	"Only the post author can do this",
	http.StatusForbidden,
)

var ErrPostNotOpen = New(
	CodeInvalidStatus,
	"post",
	"This collaboration post is no longer open",
	http.StatusConflict,
)

var ErrAlreadyApplied = New(
	CodeAlreadyExists,
	"post",
	"You've already shown interest in this collaboration",
	http.StatusConflict,
)

var ErrApplicationNotFound = New(
	CodeNotFound,
	"post",
	"Application not found",
	http.StatusNotFound,
)

// =========================================================================
// Matching, chat, reviews
// =========================================================================

var ErrAlreadySwiped = New(
	CodeAlreadyExists,
	"matching",
	"You have already swiped on this profile",
	http.StatusConflict,
)

var ErrNotConnected = New(
	CodeForbidden,
	"chat",
	"You can only message profiles you are matched or collaborating with",
	http.StatusForbidden,
)

var ErrAlreadyReviewed = New(
	CodeAlreadyExists,
	"review",
	"You have already reviewed this profile",
	http.StatusConflict,
)

var ErrReviewNotAllowed = New(
	CodeForbidden,
	"review",
	"Reviews require a completed collaboration with this profile",
	http.StatusForbidden,
)

// =========================================================================
// Social platforms
// =========================================================================

var ErrPlatformNotFound = New(
	CodeNotFound,
	"platform",
	"Platform not found",
	http.StatusNotFound,
)

var ErrNotPlatformOwner = New(
	CodeNotOwner,
	"platform",
	"Unauthorized - not your platform",
	http.StatusForbidden,
)

// =========================================================================
// Uploads
// =========================================================================

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrPortfolioItemNotFound = New(
	CodeNotFound,
	"portfolio",
	"Portfolio item not found",
	http.StatusNotFound,
)
