package middleware

import (
	"net/http"
	"strings"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/logger"
	"collabex_backend/internal/models"
	"collabex_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingAuthHeader = "Unauthorized - missing authorization header"
	msgInvalidToken      = "Unauthorized - invalid token"
)

// TokenVerifier turns a bearer token into a session.
type TokenVerifier interface {
	Verify(token string) (auth.Session, error)
}

// Rejecter writes the 401 body for a failed authentication.
type Rejecter func(c *gin.Context, message string)

// RejectJSON writes {"error": message}.
func RejectJSON(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return AuthMiddlewareWith(verifier, RejectJSON)
}

// AuthMiddlewareWith is AuthMiddleware with a custom 401 body.
func AuthMiddlewareWith(verifier TokenVerifier, reject Rejecter) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			reject(c, msgMissingAuthHeader)
			return
		}

		authenticate(c, verifier, reject, strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
	}
}

// QueryTokenAuth accepts the token from ?token= as well, for websocket upgrades.
func QueryTokenAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
		}
		if token == "" {
			RejectJSON(c, msgMissingAuthHeader)
			return
		}

		authenticate(c, verifier, RejectJSON, token)
	}
}

func authenticate(c *gin.Context, verifier TokenVerifier, reject Rejecter, token string) {
	session, err := verifier.Verify(token)
	if err != nil || session.IsZero() {
		logger.CtxWarn(c.Request.Context(), "rejected token", "path", c.Request.URL.Path)
		reject(c, msgInvalidToken)
		return
	}

	ctx := logger.WithUserID(c.Request.Context(), session.UserID)
	ctx = logger.WithProfileID(ctx, session.ProfileID)
	ctx = auth.WithSession(ctx, session)
	c.Request = c.Request.WithContext(ctx)

	c.Set("userID", session.UserID)
	c.Set(string(contextkeys.SessionKey), session)
	c.Next()
}

// RequireAccountType restricts a route to the given account types.
func RequireAccountType(types ...models.AccountType) gin.HandlerFunc {
	allowed := make(map[models.AccountType]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}

	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgMissingAuthHeader})
			return
		}
		if !allowed[session.AccountType] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: account type not allowed"})
			return
		}
		c.Next()
	}
}

func GetSession(c *gin.Context) (auth.Session, bool) {
	val, exists := c.Get(string(contextkeys.SessionKey))
	if !exists {
		return auth.Session{}, false
	}
	session, ok := val.(auth.Session)
	return session, ok && !session.IsZero()
}

func GetUserID(c *gin.Context) string {
	session, ok := GetSession(c)
	if !ok {
		return ""
	}
	return session.UserID
}
