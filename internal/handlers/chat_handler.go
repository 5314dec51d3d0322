package handlers

import (
	"net/http"

	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	messages := r.Group("/messages")
	messages.Use(authMW)
	{
		messages.GET("/partners", h.GetPartners)
		messages.GET("/unread-count", h.GetUnreadCount)
		messages.POST("", h.SendMessage)
		messages.GET("/with/:partnerId", h.GetHistory)
		messages.PUT("/with/:partnerId/read", h.MarkConversationRead)
	}
}

func (h *ChatHandler) GetPartners(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	partners, err := h.chatService.Partners(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, partners)
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	partnerID, ok := h.ValidateParamUUID(c, "partnerId")
	if !ok {
		return
	}

	var query dto.HistoryQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	messages, err := h.chatService.History(h.GetDB(c), session, partnerID, query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// SendMessage godoc
// @Summary Send a message to a matched or collaborating profile
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.MessageResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.chatService.Send(c.Request.Context(), h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) MarkConversationRead(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	partnerID, ok := h.ValidateParamUUID(c, "partnerId")
	if !ok {
		return
	}

	count, err := h.chatService.MarkRead(h.GetDB(c), session, partnerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (h *ChatHandler) GetUnreadCount(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	count, err := h.chatService.UnreadCount(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}
