package home

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/pass-store/internal/app/domain"
	"github.com/FACorreiaa/pass-store/internal/app/domain/catalog"
	"github.com/FACorreiaa/pass-store/internal/app/domain/navigation"
	"github.com/FACorreiaa/pass-store/internal/app/models"
	"github.com/FACorreiaa/pass-store/internal/app/pages"
)

type HomeHandlers struct {
	*domain.BaseHandler
	catalog catalog.Repository
}

func NewHomeHandlers(base *domain.BaseHandler, repo catalog.Repository) *HomeHandlers {
	return &HomeHandlers{BaseHandler: base, catalog: repo}
}

// ShowHomePage renders the chrome and the four launch sections. Visiting it
// always drops the product selection.
func (h *HomeHandlers) ShowHomePage(c *gin.Context) {
	s, ok := h.Session(c)
	if !ok {
		return
	}
	s.GoHome()
	h.Metrics.Navigation(c.Request.Context(), models.NavHome.String())

	content := h.Pages.Home(pages.NewHomeData(h.catalog.Sections()))
	h.RenderPage(c, http.StatusOK, "home", domain.PageTitle(""), domain.ChromeFull, content)
}

// OpenCart is the header cart button.
func (h *HomeHandlers) OpenCart(c *gin.Context) {
	s, ok := h.Session(c)
	if !ok {
		return
	}
	notice, allowed := s.Guard(navigation.ActionOpenCart)
	h.HandleGate(c, string(navigation.ActionOpenCart), notice, allowed)
}
