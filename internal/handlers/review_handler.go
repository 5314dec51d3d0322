package handlers

import (
	"net/http"

	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	// Public
	r.GET("/profiles/:id/reviews", h.GetProfileReviews)
	r.GET("/profiles/:id/rating", h.GetRatingSummary)

	r.GET("/profiles/:id/can-review", authMW, h.CanReview)
	r.POST("/reviews", authMW, h.CreateReview)
}

// CreateReview godoc
// @Summary Review a profile after a completed collaboration
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.ReviewResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) GetProfileReviews(c *gin.Context) {
	profileID, ok := h.ValidateParamUUID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListForProfile(h.GetDB(c), profileID, ParseLimit(c, 20, 100))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) GetRatingSummary(c *gin.Context) {
	profileID, ok := h.ValidateParamUUID(c, "id")
	if !ok {
		return
	}

	summary, err := h.reviewService.Summary(h.GetDB(c), profileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ReviewHandler) CanReview(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	profileID, ok := h.ValidateParamUUID(c, "id")
	if !ok {
		return
	}

	response, err := h.reviewService.CanReview(h.GetDB(c), session, profileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
