package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/domain"
	"github.com/FACorreiaa/pass-store/internal/app/domain/catalog"
	"github.com/FACorreiaa/pass-store/internal/app/domain/navigation"
	"github.com/FACorreiaa/pass-store/internal/app/domain/productview"
	"github.com/FACorreiaa/pass-store/internal/app/domain/session"
	"github.com/FACorreiaa/pass-store/internal/app/middleware"
	"github.com/FACorreiaa/pass-store/internal/app/models"
	"github.com/FACorreiaa/pass-store/internal/app/pages"
)

type ProductHandlers struct {
	*domain.BaseHandler
	catalog catalog.Repository
}

func NewProductHandlers(base *domain.BaseHandler, repo catalog.Repository) *ProductHandlers {
	return &ProductHandlers{BaseHandler: base, catalog: repo}
}

// ShowProductPage selects a product from its section and renders the detail
// page.
func (h *ProductHandlers) ShowProductPage(c *gin.Context) {
	s, ok := h.Session(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.NotFound(c, "Produto não encontrado.")
		return
	}
	p, section, err := h.catalog.Product(c.Param("section"), id)
	if errors.Is(err, models.ErrNotFound) {
		h.NotFound(c, "Produto não encontrado.")
		return
	}
	if err != nil {
		h.Logger.Error("Catalog lookup failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	fx, err := s.OpenProduct(p, section.ID, section.Products)
	if err != nil {
		h.NotFound(c, "Produto não encontrado.")
		return
	}
	h.Metrics.Navigation(c.Request.Context(), models.NavProduct.String())
	if fx.ScrollToTop {
		c.Header("HX-Trigger-After-Settle", "scroll-top")
	}

	snap := s.Snapshot()
	if snap.Product == nil {
		middleware.Redirect(c, "/")
		return
	}
	data := pages.NewProductData(*snap.Product, snap.SectionID, h.FadeDelay, h.Prices)
	h.RenderPage(c, http.StatusOK, "product", domain.PageTitle(p.Name), domain.ChromeNone, h.Pages.Product(data))
}

// updateDetail runs fn on the open product detail and renders the result
// with render. Without a product page the visitor goes home.
func (h *ProductHandlers) updateDetail(c *gin.Context, fn func(*productview.Detail) error, render func(productview.State)) {
	s, ok := h.Session(c)
	if !ok {
		return
	}
	st, err := s.UpdateDetail(fn)
	switch {
	case errors.Is(err, session.ErrNoProduct), errors.Is(err, productview.ErrClosed):
		middleware.Redirect(c, "/")
		return
	case err != nil:
		h.BadRequest(c, err)
		return
	}
	render(st)
}

func (h *ProductHandlers) renderGallery(c *gin.Context) func(productview.State) {
	return func(st productview.State) {
		h.Render(c, http.StatusOK, "gallery", h.Pages.Gallery(pages.NewGalleryView(st, h.FadeDelay)))
	}
}

func (h *ProductHandlers) renderOptions(c *gin.Context) func(productview.State) {
	return func(st productview.State) {
		h.Render(c, http.StatusOK, "options", h.Pages.Options(pages.NewOptionsData(st)))
	}
}

// SelectImage starts the fade to a thumbnail, keyed by product id.
func (h *ProductHandlers) SelectImage(c *gin.Context) {
	id, err := strconv.Atoi(c.PostForm("product_id"))
	if err != nil {
		h.BadRequest(c, models.ErrBadRequest)
		return
	}
	h.updateDetail(c, func(d *productview.Detail) error {
		return d.SelectProductImage(id)
	}, h.renderGallery(c))
}

func (h *ProductHandlers) Next(c *gin.Context) {
	h.updateDetail(c, (*productview.Detail).Next, h.renderGallery(c))
}

func (h *ProductHandlers) Previous(c *gin.Context) {
	h.updateDetail(c, (*productview.Detail).Previous, h.renderGallery(c))
}

// Gallery is polled while a fade is running.
func (h *ProductHandlers) Gallery(c *gin.Context) {
	h.updateDetail(c, nil, h.renderGallery(c))
}

func (h *ProductHandlers) SelectSize(c *gin.Context) {
	size, err := productview.ParseSize(c.PostForm("size"))
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	h.updateDetail(c, func(d *productview.Detail) error {
		return d.SelectSize(size)
	}, h.renderOptions(c))
}

func (h *ProductHandlers) SelectColor(c *gin.Context) {
	color, err := productview.ParseColor(c.PostForm("color"))
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	h.updateDetail(c, func(d *productview.Detail) error {
		return d.SelectColor(color)
	}, h.renderOptions(c))
}

func (h *ProductHandlers) AddToCart(c *gin.Context) {
	h.gated(c, navigation.ActionAddToCart, (*session.Session).AddToCart)
}

func (h *ProductHandlers) BuyNow(c *gin.Context) {
	h.gated(c, navigation.ActionBuyNow, (*session.Session).BuyNow)
}

func (h *ProductHandlers) gated(c *gin.Context, action navigation.Action, run func(*session.Session) (models.Notice, bool, error)) {
	s, ok := h.Session(c)
	if !ok {
		return
	}
	notice, allowed, err := run(s)
	if errors.Is(err, session.ErrNoProduct) {
		middleware.Redirect(c, "/")
		return
	}
	h.HandleGate(c, string(action), notice, allowed)
}
