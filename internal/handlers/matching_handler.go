package handlers

import (
	"net/http"

	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	matching := r.Group("/matching")
	matching.Use(authMW)
	{
		matching.GET("/candidates", h.GetCandidates)
		matching.POST("/swipe", h.Swipe)
		matching.GET("/matches", h.ListMatches)
	}
}

func (h *MatchingHandler) GetCandidates(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	candidates, err := h.matchingService.Candidates(h.GetDB(c), session, ParseLimit(c, 20, 100))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// Swipe godoc
// @Summary Swipe on a profile
// @Description A right swipe answering a right swipe creates a match.
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SwipeRequest true "Swipe"
// @Success 200 {object} dto.SwipeResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /matching/swipe [post]
func (h *MatchingHandler) Swipe(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.SwipeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.matchingService.Swipe(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MatchingHandler) ListMatches(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	matches, err := h.matchingService.ListMatches(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}
