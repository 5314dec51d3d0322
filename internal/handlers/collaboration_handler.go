package handlers

import (
	"net/http"

	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CollaborationHandler struct {
	*BaseHandler
	collaborationService services.CollaborationService
}

func NewCollaborationHandler(base *BaseHandler, collaborationService services.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{
		BaseHandler:          base,
		collaborationService: collaborationService,
	}
}

func (h *CollaborationHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	collaborations := r.Group("/collaborations")
	collaborations.Use(authMW)
	{
		collaborations.POST("", h.CreateCollaboration)
		collaborations.GET("", h.ListMyCollaborations)
		collaborations.GET("/:collabId", h.GetCollaboration)
		collaborations.PUT("/:collabId/status", h.UpdateStatus)
	}
}

// CreateCollaboration godoc
// @Summary Request a collaboration with another profile
// @Tags collaborations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCollaborationRequest true "Collaboration"
// @Success 201 {object} dto.CollaborationResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /collaborations [post]
func (h *CollaborationHandler) CreateCollaboration(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.CreateCollaborationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	collab, err := h.collaborationService.Create(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, collab)
}

func (h *CollaborationHandler) ListMyCollaborations(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var query dto.ListCollaborationsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	collabs, err := h.collaborationService.ListMine(h.GetDB(c), session, query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, collabs)
}

func (h *CollaborationHandler) GetCollaboration(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	collabID, ok := h.ValidateParamUUID(c, "collabId")
	if !ok {
		return
	}

	collab, err := h.collaborationService.Get(h.GetDB(c), session, collabID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, collab)
}

// UpdateStatus godoc
// @Summary Move a collaboration to its next status
// @Description pending -> in_progress (recipient) or cancelled (either party); in_progress -> completed or cancelled (either party).
// @Tags collaborations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collabId path string true "Collaboration ID"
// @Param request body dto.UpdateCollaborationStatusRequest true "Target status"
// @Success 200 {object} dto.CollaborationResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /collaborations/{collabId}/status [put]
func (h *CollaborationHandler) UpdateStatus(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	collabID, ok := h.ValidateParamUUID(c, "collabId")
	if !ok {
		return
	}

	var req dto.UpdateCollaborationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	collab, err := h.collaborationService.UpdateStatus(h.GetDB(c), session, collabID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, collab)
}
