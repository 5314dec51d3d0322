package contextkeys

type contextKey string

// DBContextKey holds the request's *gorm.DB in gin.Context.
const DBContextKey = contextKey("db")

// SessionKey holds the authenticated auth.Session.
const SessionKey = contextKey("session")
