// Package navigation holds the top level view state of a storefront session:
// which screen is shown, which product is selected and whether the visitor
// went through the mock login.
package navigation

import (
	"errors"

	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/models"
)

var (
	// ErrInvalidTarget is returned by Navigate for any target other than
	// home or auth.
	ErrInvalidTarget = errors.New("navigation target must be home or auth")
	// ErrProductNotInSection is returned by SelectProduct when the product is
	// missing from the list it was picked from.
	ErrProductNotInSection = errors.New("product is not part of the section list")
)

// View is what the page dispatcher should render.
type View int

const (
	ViewNone View = iota
	ViewHome
	ViewAuth
	ViewProduct
)

// Effects are side effects the caller must perform after a transition.
type Effects struct {
	ScrollToTop bool
}

// Action is an operation only allowed to logged in visitors.
type Action string

const (
	ActionOpenCart  Action = "open_cart"
	ActionAddToCart Action = "add_to_cart"
	ActionBuyNow    Action = "buy_now"
)

type gateMessages struct {
	loggedOut string
	loggedIn  string
}

var gated = map[Action]gateMessages{
	ActionOpenCart: {
		loggedOut: "É necessário estar logado para abrir o carrinho.",
		loggedIn:  "Funcionalidade de carrinho não implementada.",
	},
	ActionAddToCart: {
		loggedOut: "É necessário estar logado para adicionar itens ao carrinho.",
		loggedIn:  "Funcionalidade de carrinho não implementada.",
	},
	ActionBuyNow: {
		loggedOut: "É necessário estar logado para comprar.",
		loggedIn:  "Funcionalidade de compra não implementada.",
	},
}

// Controller is not safe for concurrent use; the owning session serializes
// access to it.
type Controller struct {
	state    models.NavigationState
	selected *models.SelectedProductInfo
	session  models.SessionState
	logger   *zap.Logger
}

func NewController(logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{state: models.NavHome, logger: logger}
}

func (c *Controller) State() models.NavigationState { return c.state }

func (c *Controller) IsLoggedIn() bool { return c.session.IsLoggedIn }

// Selected returns the current product selection. It is only present while
// the state is NavProduct.
func (c *Controller) Selected() (models.SelectedProductInfo, bool) {
	if c.selected == nil {
		return models.SelectedProductInfo{}, false
	}
	info := *c.selected
	info.SectionProducts = append([]models.Product(nil), c.selected.SectionProducts...)
	return info, true
}

// Navigate moves to Home or Auth. The product selection is always dropped.
func (c *Controller) Navigate(target models.NavigationState) error {
	if target != models.NavHome && target != models.NavAuth {
		return ErrInvalidTarget
	}
	c.logger.Debug("Navigate",
		zap.Stringer("from", c.state),
		zap.Stringer("to", target),
	)
	c.state = target
	c.selected = nil
	return nil
}

// SelectProduct opens the product page for product, remembering the exact
// list it was picked from.
func (c *Controller) SelectProduct(product models.Product, sectionID string, sectionProducts []models.Product) (Effects, error) {
	if models.IndexOfProduct(sectionProducts, product.ID) < 0 {
		return Effects{}, ErrProductNotInSection
	}
	c.selected = &models.SelectedProductInfo{
		Product:         product,
		SectionID:       sectionID,
		SectionProducts: append([]models.Product(nil), sectionProducts...),
	}
	c.state = models.NavProduct
	c.logger.Debug("Product selected",
		zap.Int("product_id", product.ID),
		zap.String("section", sectionID),
	)
	return Effects{ScrollToTop: true}, nil
}

// CompleteLogin marks the session as logged in and returns home.
func (c *Controller) CompleteLogin() {
	c.session.IsLoggedIn = true
	c.state = models.NavHome
	c.selected = nil
	c.logger.Debug("Login completed")
}

// View dispatches on the navigation state. A product state without a
// selection renders nothing.
func (c *Controller) View() View {
	switch c.state {
	case models.NavProduct:
		if c.selected == nil {
			return ViewNone
		}
		return ViewProduct
	case models.NavAuth:
		return ViewAuth
	default:
		return ViewHome
	}
}

// Guard applies the gated action policy. Logged out visitors get a login
// notice and are sent to Auth; logged in visitors get a not implemented
// notice and stay where they are.
func (c *Controller) Guard(action Action) (models.Notice, bool) {
	msgs, ok := gated[action]
	if !ok {
		msgs = gated[ActionOpenCart]
	}

	if !c.session.IsLoggedIn {
		c.logger.Info("Gated action denied", zap.String("action", string(action)))
		_ = c.Navigate(models.NavAuth)
		return models.Notice{Kind: models.NoticeLoginRequired, Message: msgs.loggedOut}, false
	}

	return models.Notice{Kind: models.NoticeNotImplemented, Message: msgs.loggedIn}, true
}
