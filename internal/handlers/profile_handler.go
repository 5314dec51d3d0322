package handlers

import (
	"net/http"

	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	// Public
	r.GET("/profiles/:id", h.GetProfile)

	profiles := r.Group("/profiles")
	profiles.Use(authMW)
	{
		profiles.GET("/me", h.GetMyProfile)
		profiles.PUT("/me", h.UpdateMyProfile)
		profiles.PUT("/me/niches", h.SetNiches)
		profiles.PUT("/me/payment", h.UpdatePaymentSettings)
		profiles.POST("/me/onboarding", h.CompleteOnboarding)
		profiles.GET("/discover", h.Discover)
	}
}

// GetProfile godoc
// @Summary Public profile with niches, platforms, portfolio and rating
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profileID, ok := h.ValidateParamUUID(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetByID(h.GetDB(c), profileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetMine(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.Update(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) SetNiches(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.SetNichesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.SetNiches(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdatePaymentSettings(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.PaymentSettingsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdatePaymentSettings(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	profile, err := h.profileService.CompleteOnboarding(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Discover godoc
// @Summary Onboarded profiles ranked for the viewer
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param account_type query string false "influencer or brand"
// @Param niche query string false "Niche"
// @Param location query string false "Location"
// @Param limit query int false "Max results (default 50)"
// @Success 200 {array} dto.RankedProfileResponse
// @Router /profiles/discover [get]
func (h *ProfileHandler) Discover(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var criteria repositories.DiscoverCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	profiles, err := h.profileService.Discover(h.GetDB(c), session, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}
