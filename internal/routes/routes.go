package routes

import (
	"collabex_backend/internal/handlers"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/middleware"
	"collabex_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API under /api/v1 and the websocket at /ws.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	verifier middleware.TokenVerifier,
) {
	authMW := middleware.AuthMiddleware(verifier)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.ProfileHandler.RegisterRoutes(api, authMW)
		appHandlers.UploadHandler.RegisterRoutes(api, authMW)
		appHandlers.PortfolioHandler.RegisterRoutes(api, authMW)
		appHandlers.SocialPlatformHandler.RegisterRoutes(api, authMW)
		appHandlers.CollaborationHandler.RegisterRoutes(api, authMW)
		appHandlers.NotificationHandler.RegisterRoutes(api, authMW)
		appHandlers.PostHandler.RegisterRoutes(api, authMW)
		appHandlers.MatchingHandler.RegisterRoutes(api, authMW)
		appHandlers.ChatHandler.RegisterRoutes(api, authMW)
		appHandlers.ReviewHandler.RegisterRoutes(api, authMW)
	}

	if wsHandler != nil {
		wsHandler.RegisterRoutes(ginRouter, middleware.QueryTokenAuth(verifier))
		logger.Info("WebSocket route /ws registered")
	}
}
