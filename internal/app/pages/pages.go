// Package pages renders the storefront views. Views are html/template files
// exposed as templ components, so handlers render them like any other templ
// component and layouts can nest them.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/pass-store/internal/app/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer owns the parsed template set.
type Renderer struct {
	set *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	set, err := template.New("pages").
		Funcs(template.FuncMap{
			"year": func() int { return time.Now().Year() },
		}).
		ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &Renderer{set: set}, nil
}

func (r *Renderer) component(name string, data any) templ.Component {
	t := r.set.Lookup(name)
	if t == nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("template %q not defined", name)
		})
	}
	return templ.FromGoHTML(t, data)
}

// LayoutPage wraps content in the document shell.
func (r *Renderer) LayoutPage(data models.LayoutTempl) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var content template.HTML
		if data.Content != nil {
			html, err := templ.ToGoHTML(ctx, data.Content)
			if err != nil {
				return fmt.Errorf("render page content: %w", err)
			}
			content = html
		}
		return r.set.ExecuteTemplate(w, "layout", layoutData{LayoutTempl: data, Content: content})
	})
}

// layoutData shadows the component with its rendered markup.
type layoutData struct {
	models.LayoutTempl
	Content template.HTML
}

func (r *Renderer) Home(data HomeData) templ.Component { return r.component("home", data) }

func (r *Renderer) Auth(data AuthData) templ.Component { return r.component("auth", data) }

// AuthCard is the swappable form card of the auth page.
func (r *Renderer) AuthCard(data AuthData) templ.Component {
	return r.component("auth-card", data)
}

func (r *Renderer) EmailError(msg string) templ.Component {
	return r.component("email-error", msg)
}

func (r *Renderer) PasswordError(msg string) templ.Component {
	return r.component("password-error", msg)
}

func (r *Renderer) Product(data ProductData) templ.Component {
	return r.component("product", data)
}

func (r *Renderer) Gallery(data GalleryView) templ.Component {
	return r.component("product-gallery", data)
}

func (r *Renderer) Options(data OptionsData) templ.Component {
	return r.component("product-options", data)
}

// Notices renders the notice area with its banners.
func (r *Renderer) Notices(notices []models.Notice) templ.Component {
	return r.component("notices", notices)
}

func (r *Renderer) NotFound(msg string) templ.Component {
	return r.component("not-found", msg)
}
