package handlers

import (
	"fmt"
	"strconv"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/middleware"
	"collabex_backend/internal/validator"
	"collabex_backend/pkg/apperrors"
	"collabex_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Base handler
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	// Rules live in `binding` tags; gin must only decode, our validator checks.
	binding.Validator = nil
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. Request database handle
// ============================================================================

// GetDB returns the *gorm.DB placed on the context by DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 3. Binding and validation
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}

	return h.validate(c, obj, "Validation failed")
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	return h.validate(c, obj, "Validation failed (query)")
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}, logMsg string) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, logMsg, "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ValidateParamUUID checks a path parameter before it reaches a query.
func (h *BaseHandler) ValidateParamUUID(c *gin.Context, key string) (string, bool) {
	value := c.Param(key)
	if err := h.validator.Var(value, "required,uuid"); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid path parameter: "+key+" must be a valid UUID"))
		return "", false
	}
	return value, true
}

// ============================================================================
// 4. Error handling
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode >= 500 {
			logger.CtxWithError(ctx, "Service error", appErr.Unwrap(), "path", c.Request.URL.Path)
		} else {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"details", appErr.Details,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 5. Session
// ============================================================================

// GetSession returns the authenticated session or writes a 401.
func (h *BaseHandler) GetSession(c *gin.Context) (auth.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: session not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return auth.Session{}, false
	}
	return session, true
}

// ============================================================================
// 6. Parsing
// ============================================================================

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// ParseLimit reads ?limit= clamped to [1, max].
func ParseLimit(c *gin.Context, defaultLimit, max int) int {
	limit := ParseQueryInt(c, "limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > max {
		limit = max
	}
	return limit
}

func ParsePagination(c *gin.Context) (page int, pageSize int) {
	const defaultPage = 1
	const defaultPageSize = 20
	const maxPageSize = 100

	page = ParseQueryInt(c, "page", defaultPage)
	if page <= 0 {
		page = defaultPage
	}

	pageSize = ParseQueryInt(c, "page_size", defaultPageSize)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}
