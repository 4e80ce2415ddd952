package domain

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/domain/session"
	"github.com/FACorreiaa/pass-store/internal/app/middleware"
	"github.com/FACorreiaa/pass-store/internal/app/models"
	"github.com/FACorreiaa/pass-store/internal/app/observability/metrics"
	"github.com/FACorreiaa/pass-store/internal/app/pages"
	"github.com/FACorreiaa/pass-store/internal/pkg/format"
)

const siteTitle = "Pass"

// Chrome selects the page shell around a view.
type Chrome int

const (
	ChromeNone Chrome = iota
	// ChromeFull adds the header and the footer.
	ChromeFull
)

type BaseHandler struct {
	Logger    *zap.Logger
	Pages     *pages.Renderer
	Metrics   *metrics.AppMetrics
	Prices    *format.PriceFormatter
	FadeDelay time.Duration
}

func NewBaseHandler(logger *zap.Logger, renderer *pages.Renderer, m *metrics.AppMetrics, prices *format.PriceFormatter, fadeDelay time.Duration) *BaseHandler {
	return &BaseHandler{
		Logger:    logger,
		Pages:     renderer,
		Metrics:   m,
		Prices:    prices,
		FadeDelay: fadeDelay,
	}
}

// PageTitle prefixes a page name with the store name.
func PageTitle(name string) string {
	if name == "" {
		return siteTitle
	}
	return name + " | " + siteTitle
}

func (h *BaseHandler) newLayoutData(c *gin.Context, title string, chrome Chrome, content templ.Component) models.LayoutTempl {
	data := models.LayoutTempl{
		Title:      title,
		Content:    content,
		Nav:        models.SectionNav,
		ShowHeader: chrome == ChromeFull,
		ShowFooter: chrome == ChromeFull,
	}
	if s := middleware.GetSession(c); s != nil {
		data.IsLoggedIn = s.Snapshot().IsLoggedIn
		data.Notices = s.TakeNotices()
	}
	return data
}

// Render writes component with status and records how long it took.
func (h *BaseHandler) Render(c *gin.Context, status int, name string, component templ.Component) {
	start := time.Now()
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render view", zap.String("view", name), zap.Error(err))
		return
	}
	if h.Metrics != nil {
		h.Metrics.Render(c.Request.Context(), name, time.Since(start).Seconds())
	}
}

// RenderPage renders a full document. Plain htmx requests only get the view;
// boosted navigations get the whole document so htmx can swap the body.
func (h *BaseHandler) RenderPage(c *gin.Context, status int, name, title string, chrome Chrome, content templ.Component) {
	if middleware.IsHTMX(c) && c.GetHeader("HX-Boosted") != "true" {
		h.Render(c, status, name, content)
		return
	}
	h.Render(c, status, name, h.Pages.LayoutPage(h.newLayoutData(c, title, chrome, content)))
}

// RenderNotice shows notice on the current page by swapping the notice area.
func (h *BaseHandler) RenderNotice(c *gin.Context, notice models.Notice) {
	c.Header("HX-Retarget", "#notice-area")
	c.Header("HX-Reswap", "outerHTML")
	h.Render(c, http.StatusOK, "notice", h.Pages.Notices([]models.Notice{notice}))
}

// RedirectWithNotice queues notice for the page at url and sends the client
// there.
func (h *BaseHandler) RedirectWithNotice(c *gin.Context, url string, notice models.Notice) {
	if s := middleware.GetSession(c); s != nil {
		s.Flash(notice)
	}
	middleware.Redirect(c, url)
}

// HandleGate answers a gated action: allowed actions show their notice in
// place, denied ones move the visitor to the auth page with the notice.
func (h *BaseHandler) HandleGate(c *gin.Context, action string, notice models.Notice, allowed bool) {
	if h.Metrics != nil {
		h.Metrics.GatedAction(c.Request.Context(), action, allowed)
	}
	if allowed {
		h.RenderNotice(c, notice)
		return
	}
	if h.Metrics != nil {
		h.Metrics.Navigation(c.Request.Context(), models.NavAuth.String())
	}
	h.RedirectWithNotice(c, "/auth", notice)
}

func (h *BaseHandler) NotFound(c *gin.Context, msg string) {
	h.RenderPage(c, http.StatusNotFound, "not_found", PageTitle("Não encontrado"), ChromeNone, h.Pages.NotFound(msg))
}

// BadRequest answers malformed form input.
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	h.Logger.Info("Bad request", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.String(http.StatusBadRequest, err.Error())
}

// Session returns the bound storefront session or aborts the request.
func (h *BaseHandler) Session(c *gin.Context) (*session.Session, bool) {
	s := middleware.GetSession(c)
	if s == nil {
		h.Logger.Error("No session bound to request", zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}
