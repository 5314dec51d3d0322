package handlers

import (
	"io"
	"net/http"

	"collabex_backend/internal/logger"
	"collabex_backend/internal/middleware"
	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SocialPlatformHandler struct {
	*BaseHandler
	platformService services.SocialPlatformService
	verifier        middleware.TokenVerifier
}

func NewSocialPlatformHandler(base *BaseHandler, platformService services.SocialPlatformService, verifier middleware.TokenVerifier) *SocialPlatformHandler {
	return &SocialPlatformHandler{
		BaseHandler:     base,
		platformService: platformService,
		verifier:        verifier,
	}
}

func (h *SocialPlatformHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	// The verify function answers every failure in its own body shape, 401 included.
	r.POST("/functions/verify-social-platform",
		middleware.AuthMiddlewareWith(h.verifier, rejectVerify),
		h.VerifyPlatform,
	)

	r.GET("/profiles/:id/platforms", h.ListByProfile)

	platforms := r.Group("/platforms")
	platforms.Use(authMW)
	{
		platforms.GET("", h.ListMine)
		platforms.POST("", h.Add)
		platforms.PUT("/:platformId", h.Update)
		platforms.DELETE("/:platformId", h.Delete)
	}
}

func rejectVerify(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.VerifyPlatformResponse{Error: message})
}

func verifyFailure(c *gin.Context, status int, message string) {
	c.JSON(status, dto.VerifyPlatformResponse{Error: message})
}

// VerifyPlatform godoc
// @Summary Verify that a social platform URL points at the claimed profile
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyPlatformRequest true "Platform"
// @Success 200 {object} dto.VerifyPlatformResponse
// @Failure 400 {object} dto.VerifyPlatformResponse
// @Failure 401 {object} dto.VerifyPlatformResponse
// @Failure 403 {object} dto.VerifyPlatformResponse
// @Failure 404 {object} dto.VerifyPlatformResponse
// @Router /functions/verify-social-platform [post]
func (h *SocialPlatformHandler) VerifyPlatform(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		rejectVerify(c, "Unauthorized - invalid token")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxFunctionBody))
	if err != nil {
		verifyFailure(c, http.StatusBadRequest, dto.MsgInvalidBody)
		return
	}

	req, msg := dto.ParseVerifyPlatformRequest(body)
	if req == nil {
		logger.CtxWarn(c.Request.Context(), "verify-social-platform rejected", "reason", msg)
		verifyFailure(c, http.StatusBadRequest, msg)
		return
	}

	response, err := h.platformService.Verify(c.Request.Context(), h.GetDB(c), session, req)
	if err != nil {
		status, message := apperrors.Message(err)
		if status >= http.StatusInternalServerError {
			logger.CtxWithError(c.Request.Context(), "verify-social-platform failed", err)
		}
		verifyFailure(c, status, message)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *SocialPlatformHandler) ListMine(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	platforms, err := h.platformService.ListByProfile(h.GetDB(c), session.ProfileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, platforms)
}

func (h *SocialPlatformHandler) ListByProfile(c *gin.Context) {
	profileID, ok := h.ValidateParamUUID(c, "id")
	if !ok {
		return
	}

	platforms, err := h.platformService.ListByProfile(h.GetDB(c), profileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, platforms)
}

func (h *SocialPlatformHandler) Add(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.AddPlatformRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	platform, err := h.platformService.Add(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, platform)
}

func (h *SocialPlatformHandler) Update(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	platformID, ok := h.ValidateParamUUID(c, "platformId")
	if !ok {
		return
	}

	var req dto.UpdatePlatformRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	platform, err := h.platformService.Update(h.GetDB(c), session, platformID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, platform)
}

func (h *SocialPlatformHandler) Delete(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	platformID, ok := h.ValidateParamUUID(c, "platformId")
	if !ok {
		return
	}

	if err := h.platformService.Delete(h.GetDB(c), session, platformID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
