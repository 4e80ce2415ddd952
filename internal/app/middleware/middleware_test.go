package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/domain/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.POST("/cart", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/cart", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "HX-Request")
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "https://picsum.photos")
}

func TestSessionMiddleware(t *testing.T) {
	store := session.NewStore(session.StoreConfig{TTL: time.Minute}, nil)
	created := 0

	cookies := cookie.NewStore([]byte("secret"))
	cookies.Options(sessions.Options{Path: "/", MaxAge: int(store.TTL().Seconds()), HttpOnly: true})

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookies))
	r.Use(SessionMiddleware(store, func(*gin.Context) { created++ }, zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetSession(c).ID())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Body.String()
	issued := w.Result().Cookies()
	require.NotEmpty(t, issued)

	t.Run("cookie resumes the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range issued {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, first, w.Body.String())
		assert.Equal(t, 1, created)

		refreshed := w.Result().Cookies()
		require.Len(t, refreshed, 1, "an active visitor gets a renewed cookie")
		assert.Equal(t, "test_session", refreshed[0].Name)
		assert.Equal(t, 60, refreshed[0].MaxAge)
	})

	t.Run("discarded session is replaced", func(t *testing.T) {
		store.Close()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range issued {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, first, w.Body.String())
		assert.Equal(t, 2, created)
	})
}

func TestRedirect(t *testing.T) {
	tests := []struct {
		name       string
		htmx       bool
		wantStatus int
		header     string
	}{
		{name: "htmx", htmx: true, wantStatus: http.StatusOK, header: "HX-Redirect"},
		{name: "plain", htmx: false, wantStatus: http.StatusSeeOther, header: "Location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/go", func(c *gin.Context) { Redirect(c, "/auth") })

			req := httptest.NewRequest(http.MethodPost, "/go", nil)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "/auth", w.Header().Get(tt.header))
		})
	}
}
