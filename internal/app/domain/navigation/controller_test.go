package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/pass-store/internal/app/models"
)

var classic = []models.Product{
	{ID: 1, Name: "TEE A", Price: 189, ImageURL: "https://img.example/1.jpg"},
	{ID: 2, Name: "TEE B", Price: 189, ImageURL: "https://img.example/2.jpg"},
	{ID: 3, Name: "TEE C", Price: 189, ImageURL: "https://img.example/3.jpg"},
}

func TestControllerStartsHome(t *testing.T) {
	c := NewController(nil)

	assert.Equal(t, models.NavHome, c.State())
	assert.Equal(t, ViewHome, c.View())
	assert.False(t, c.IsLoggedIn())
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestNavigateClearsSelection(t *testing.T) {
	t.Run("home auth home", func(t *testing.T) {
		c := NewController(nil)
		_, err := c.SelectProduct(classic[1], "classic", classic)
		require.NoError(t, err)

		require.NoError(t, c.Navigate(models.NavAuth))
		_, ok := c.Selected()
		assert.False(t, ok)
		assert.Equal(t, ViewAuth, c.View())

		require.NoError(t, c.Navigate(models.NavHome))
		_, ok = c.Selected()
		assert.False(t, ok)
		assert.Equal(t, ViewHome, c.View())
	})

	t.Run("product then home", func(t *testing.T) {
		c := NewController(nil)
		_, err := c.SelectProduct(classic[0], "classic", classic)
		require.NoError(t, err)
		assert.Equal(t, ViewProduct, c.View())

		require.NoError(t, c.Navigate(models.NavHome))
		_, ok := c.Selected()
		assert.False(t, ok)
		assert.Equal(t, models.NavHome, c.State())
	})

	t.Run("home to home still clears", func(t *testing.T) {
		c := NewController(nil)
		_, err := c.SelectProduct(classic[2], "classic", classic)
		require.NoError(t, err)
		require.NoError(t, c.Navigate(models.NavHome))
		require.NoError(t, c.Navigate(models.NavHome))
		_, ok := c.Selected()
		assert.False(t, ok)
	})

	t.Run("product is not a navigate target", func(t *testing.T) {
		c := NewController(nil)
		assert.ErrorIs(t, c.Navigate(models.NavProduct), ErrInvalidTarget)
		assert.Equal(t, models.NavHome, c.State())
	})
}

func TestSelectProduct(t *testing.T) {
	c := NewController(nil)

	fx, err := c.SelectProduct(classic[1], "classic", classic)
	require.NoError(t, err)
	assert.True(t, fx.ScrollToTop)
	assert.Equal(t, models.NavProduct, c.State())

	info, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, classic[1], info.Product)
	assert.Equal(t, "classic", info.SectionID)
	assert.Equal(t, classic, info.SectionProducts)

	t.Run("keeps its own copy of the list", func(t *testing.T) {
		list := append([]models.Product(nil), classic...)
		c := NewController(nil)
		_, err := c.SelectProduct(list[0], "classic", list)
		require.NoError(t, err)
		list[0].Name = "mutated"
		info, _ := c.Selected()
		assert.Equal(t, "TEE A", info.SectionProducts[0].Name)
	})

	t.Run("rejects product outside the list", func(t *testing.T) {
		c := NewController(nil)
		other := models.Product{ID: 42, ImageURL: "https://img.example/42.jpg"}
		_, err := c.SelectProduct(other, "classic", classic)
		assert.ErrorIs(t, err, ErrProductNotInSection)
		assert.Equal(t, models.NavHome, c.State())
	})
}

func TestCompleteLogin(t *testing.T) {
	setups := map[string]func(c *Controller){
		"from home": func(c *Controller) {},
		"from auth": func(c *Controller) { _ = c.Navigate(models.NavAuth) },
		"from product": func(c *Controller) {
			_, _ = c.SelectProduct(classic[0], "classic", classic)
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			c := NewController(nil)
			setup(c)

			c.CompleteLogin()

			assert.Equal(t, models.NavHome, c.State())
			assert.True(t, c.IsLoggedIn())
			_, ok := c.Selected()
			assert.False(t, ok)

			_ = c.Navigate(models.NavAuth)
			_ = c.Navigate(models.NavHome)
			assert.True(t, c.IsLoggedIn(), "login lasts for the session")
		})
	}
}

func TestGuard(t *testing.T) {
	actions := []Action{ActionOpenCart, ActionAddToCart, ActionBuyNow}

	for _, action := range actions {
		t.Run(string(action)+" logged out", func(t *testing.T) {
			c := NewController(nil)
			_, err := c.SelectProduct(classic[0], "classic", classic)
			require.NoError(t, err)

			notice, allowed := c.Guard(action)

			assert.False(t, allowed)
			assert.Equal(t, models.NoticeLoginRequired, notice.Kind)
			assert.NotEmpty(t, notice.Message)
			assert.Equal(t, models.NavAuth, c.State())
			_, ok := c.Selected()
			assert.False(t, ok)
		})

		t.Run(string(action)+" logged in", func(t *testing.T) {
			c := NewController(nil)
			c.CompleteLogin()
			_, err := c.SelectProduct(classic[2], "classic", classic)
			require.NoError(t, err)

			notice, allowed := c.Guard(action)

			assert.True(t, allowed)
			assert.Equal(t, models.NoticeNotImplemented, notice.Kind)
			assert.Equal(t, models.NavProduct, c.State())
			info, ok := c.Selected()
			require.True(t, ok)
			assert.Equal(t, classic[2], info.Product)
		})
	}

	t.Run("messages follow the action", func(t *testing.T) {
		c := NewController(nil)
		n, _ := c.Guard(ActionBuyNow)
		assert.Equal(t, "É necessário estar logado para comprar.", n.Message)
		n, _ = c.Guard(ActionOpenCart)
		assert.Equal(t, "É necessário estar logado para abrir o carrinho.", n.Message)
	})
}

func TestViewWithoutSelectionRendersNothing(t *testing.T) {
	c := &Controller{state: models.NavProduct}
	assert.Equal(t, ViewNone, c.View())
}
