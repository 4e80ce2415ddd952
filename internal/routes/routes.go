package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/pass-store/internal/app/domain"
	"github.com/FACorreiaa/pass-store/internal/app/domain/auth"
	"github.com/FACorreiaa/pass-store/internal/app/domain/catalog"
	"github.com/FACorreiaa/pass-store/internal/app/domain/home"
	"github.com/FACorreiaa/pass-store/internal/app/domain/product"
)

type AppHandlers struct {
	Home    *home.HomeHandlers
	Auth    *auth.AuthHandlers
	Product *product.ProductHandlers
	Base    *domain.BaseHandler
}

func NewAppHandlers(base *domain.BaseHandler, repo catalog.Repository) *AppHandlers {
	return &AppHandlers{
		Home:    home.NewHomeHandlers(base, repo),
		Auth:    auth.NewAuthHandlers(base),
		Product: product.NewProductHandlers(base, repo),
		Base:    base,
	}
}

// Setup registers every storefront route on r.
func Setup(r *gin.Engine, h *AppHandlers) {
	r.GET("/", h.Home.ShowHomePage)
	r.POST("/cart", h.Home.OpenCart)

	authGroup := r.Group("/auth")
	{
		authGroup.GET("", h.Auth.ShowAuthPage)
		authGroup.POST("/mode", h.Auth.ChangeMode)
		authGroup.POST("/field/:field", h.Auth.UpdateField)
		authGroup.POST("/submit", h.Auth.Submit)
	}

	r.GET("/products/:section/:id", h.Product.ShowProductPage)

	productGroup := r.Group("/product")
	{
		productGroup.POST("/image", h.Product.SelectImage)
		productGroup.POST("/next", h.Product.Next)
		productGroup.POST("/previous", h.Product.Previous)
		productGroup.GET("/gallery", h.Product.Gallery)
		productGroup.POST("/size", h.Product.SelectSize)
		productGroup.POST("/color", h.Product.SelectColor)
		productGroup.POST("/cart", h.Product.AddToCart)
		productGroup.POST("/buy", h.Product.BuyNow)
	}

	r.NoRoute(func(c *gin.Context) {
		h.Base.NotFound(c, "Página não encontrada.")
	})
}
