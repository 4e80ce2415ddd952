package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/domain/session"
)

type contextKey string

const SessionContextKey contextKey = "storeSession"

// sessionIDKey is the cookie session entry holding the server side id.
const sessionIDKey = "sid"

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, HX-Request, HX-Target, HX-Trigger, HX-Current-URL")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers. Product images come from
// external hosts, scripts and styles from the htmx and tailwind CDNs.
func SecurityMiddleware() gin.HandlerFunc {
	csp := strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline' https://unpkg.com https://cdn.tailwindcss.com",
		"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com",
		"font-src 'self' https://fonts.gstatic.com",
		"img-src 'self' data: https://i.imgur.com https://picsum.photos https://fastly.picsum.photos",
		"connect-src 'self'",
		"frame-ancestors 'none'",
	}, "; ")

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", csp)
		c.Next()
	}
}

// SessionMiddleware binds the request to its in-memory storefront session.
// The cookie only carries the session id; unknown or expired ids get a
// fresh session. The cookie is re-issued on every request so its Max-Age
// slides together with the server side idle timeout.
func SessionMiddleware(store *session.Store, onCreate func(*gin.Context), logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie := sessions.Default(c)
		id, _ := cookie.Get(sessionIDKey).(string)

		s, created := store.GetOrCreate(id)
		cookie.Set(sessionIDKey, s.ID())
		if err := cookie.Save(); err != nil {
			logger.Error("Failed to save session cookie", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if created && onCreate != nil {
			onCreate(c)
		}

		c.Set(string(SessionContextKey), s)
		c.Next()
	}
}

// GetSession returns the storefront session bound by SessionMiddleware.
func GetSession(c *gin.Context) *session.Session {
	v, ok := c.Get(string(SessionContextKey))
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// Redirect sends the client to url: htmx requests get HX-Redirect, others a
// See Other redirect so POSTs turn into GETs.
func Redirect(c *gin.Context, url string) {
	if IsHTMX(c) {
		c.Header("HX-Redirect", url)
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusSeeOther, url)
}
