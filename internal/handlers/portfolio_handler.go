package handlers

import (
	"net/http"

	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

// RegisterRoutes mounts portfolio reads and edits. Uploads go through
// UploadHandler.
func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	r.GET("/profiles/:id/portfolio", h.GetProfilePortfolio)

	portfolio := r.Group("/portfolio")
	portfolio.Use(authMW)
	{
		portfolio.PUT("/:itemId", h.UpdatePortfolioItem)
		portfolio.DELETE("/:itemId", h.DeletePortfolioItem)
	}
}

func (h *PortfolioHandler) GetProfilePortfolio(c *gin.Context) {
	profileID, ok := h.ValidateParamUUID(c, "id")
	if !ok {
		return
	}

	items, err := h.portfolioService.List(h.GetDB(c), profileID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *PortfolioHandler) UpdatePortfolioItem(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	itemID, ok := h.ValidateParamUUID(c, "itemId")
	if !ok {
		return
	}

	var req dto.UpdatePortfolioItemRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.portfolioService.UpdateCaption(h.GetDB(c), session, itemID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *PortfolioHandler) DeletePortfolioItem(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	itemID, ok := h.ValidateParamUUID(c, "itemId")
	if !ok {
		return
	}

	if err := h.portfolioService.Delete(c.Request.Context(), h.GetDB(c), session, itemID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
