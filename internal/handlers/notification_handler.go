package handlers

import (
	"io"
	"net/http"

	"collabex_backend/internal/logger"
	"collabex_backend/internal/repositories"
	"collabex_backend/internal/services"
	"collabex_backend/internal/services/dto"
	"collabex_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxFunctionBody bounds the raw body read by the function endpoints.
const maxFunctionBody = 64 << 10

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	r.POST("/functions/send-notification", authMW, h.SendNotification)

	notifications := r.Group("/notifications")
	notifications.Use(authMW)
	{
		notifications.GET("", h.GetUserNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.PUT("/:notificationId/read", h.MarkAsRead)
		notifications.DELETE("/:notificationId", h.DeleteNotification)
	}
}

// SendNotification godoc
// @Summary Send a notification to a related user
// @Description Requires a match, a shared collaboration or an application between the two users.
// @Tags functions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendNotificationRequest true "Notification"
// @Success 200 {object} dto.SendNotificationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /functions/send-notification [post]
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxFunctionBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.MsgInvalidBody})
		return
	}

	req, msg := dto.ParseSendNotificationRequest(body)
	if req == nil {
		logger.CtxWarn(c.Request.Context(), "send-notification rejected", "reason", msg)
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if _, err := h.notificationService.Dispatch(c.Request.Context(), h.GetDB(c), session.UserID, req); err != nil {
		status, message := apperrors.Message(err)
		if status >= http.StatusInternalServerError {
			logger.CtxWithError(c.Request.Context(), "send-notification failed", err)
		} else {
			logger.CtxWarn(c.Request.Context(), "send-notification refused", "status", status, "error", message)
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, dto.SendNotificationResponse{
		Success: true,
		Message: "Notification sent",
	})
}

// GetUserNotifications godoc
// @Summary Inbox, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "Only unread"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} dto.NotificationListResponse
// @Router /notifications [get]
func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	var criteria repositories.NotificationCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	response, err := h.notificationService.List(h.GetDB(c), session.UserID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(h.GetDB(c), session.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	notificationID, ok := h.ValidateParamUUID(c, "notificationId")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(h.GetDB(c), session.UserID, notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}

	count, err := h.notificationService.MarkAllRead(h.GetDB(c), session.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	session, ok := h.GetSession(c)
	if !ok {
		return
	}
	notificationID, ok := h.ValidateParamUUID(c, "notificationId")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(h.GetDB(c), session.UserID, notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
