package pages

import (
	"fmt"
	"time"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"

	"github.com/FACorreiaa/pass-store/internal/app/domain/authform"
	"github.com/FACorreiaa/pass-store/internal/app/domain/productview"
	"github.com/FACorreiaa/pass-store/internal/app/models"
	"github.com/FACorreiaa/pass-store/internal/pkg/format"
)

var titleStyles = map[models.Variant]string{
	models.VariantClassic:      "font-logo-pass tracking-widest text-5xl",
	models.VariantLevelUp:      "font-extrabold uppercase tracking-[0.2em]",
	models.VariantPassTheLevel: "font-mono uppercase tracking-widest font-bold",
	models.VariantPassSports:   "font-black italic uppercase tracking-wider",
}

var sectionStyles = map[models.Variant]string{
	models.VariantClassic:      "bg-black",
	models.VariantLevelUp:      "bg-gradient-to-b from-gray-900 to-black",
	models.VariantPassTheLevel: "bg-black border-y-2 border-dashed border-gray-700",
	models.VariantPassSports:   "bg-zinc-900",
}

const (
	baseTitleClass   = "text-4xl md:text-5xl text-white transition-all duration-300"
	baseSectionClass = "py-16"
	classicFrame     = "p-2 border border-neutral-800 group-hover:border-white transition-colors duration-300"
)

var colorSwatches = map[productview.Color]string{
	productview.ColorPreto:  "bg-black",
	productview.ColorBranco: "bg-white",
	productview.ColorCinza:  "bg-gray-500",
}

type CardView struct {
	ID         int
	Name       string
	ImageURL   string
	Href       string
	FrameClass string
	Framed     bool
}

type SectionView struct {
	ID           string
	Title        string
	Variant      models.Variant
	TitleClass   string
	SectionClass string
	Cards        []CardView
}

type HomeData struct {
	Sections []SectionView
}

// ProductHref is the page of product within section.
func ProductHref(sectionID string, productID int) string {
	return fmt.Sprintf("/products/%s/%d", sectionID, productID)
}

// NewSectionView renders one launch section: one card per product, in list
// order. Unknown variants fall back to the classic style.
func NewSectionView(s models.Section) SectionView {
	variant := s.Variant
	if _, ok := titleStyles[variant]; !ok {
		variant = models.VariantClassic
	}

	v := SectionView{
		ID:           s.ID,
		Title:        s.Title,
		Variant:      variant,
		TitleClass:   twmerge.Merge(baseTitleClass, titleStyles[variant]),
		SectionClass: twmerge.Merge(baseSectionClass, sectionStyles[variant]),
		Cards:        make([]CardView, 0, len(s.Products)),
	}
	for _, p := range s.Products {
		card := CardView{
			ID:       p.ID,
			Name:     p.Name,
			ImageURL: p.ImageURL,
			Href:     ProductHref(s.ID, p.ID),
		}
		if variant == models.VariantClassic {
			card.Framed = true
			card.FrameClass = classicFrame
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}

func NewHomeData(sections []models.Section) HomeData {
	out := HomeData{Sections: make([]SectionView, 0, len(sections))}
	for _, s := range sections {
		out.Sections = append(out.Sections, NewSectionView(s))
	}
	return out
}

type AuthData struct {
	Mode          string
	Forgot        bool
	Signup        bool
	Login         bool
	Subtitle      string
	Hint          string
	SubmitLabel   string
	TogglePrompt  string
	ToggleLabel   string
	Name          string
	Email         string
	EmailError    string
	PasswordError string
}

// NewAuthData derives the form view. Password fields are never echoed back.
func NewAuthData(st authform.State) AuthData {
	d := AuthData{
		Mode:          st.Mode.String(),
		Name:          st.Name,
		Email:         st.Email,
		EmailError:    st.EmailError,
		PasswordError: st.PasswordError,
	}
	switch st.Mode {
	case authform.ModeForgot:
		d.Forgot = true
		d.Subtitle = "Recupere sua senha"
		d.Hint = "Digite seu e-mail para receber o link de recuperação."
		d.SubmitLabel = "Enviar link de recuperação"
		d.PasswordError = ""
	case authform.ModeSignup:
		d.Signup = true
		d.Subtitle = "Crie uma nova conta"
		d.SubmitLabel = "Cadastrar"
		d.TogglePrompt = "Já tem uma conta?"
		d.ToggleLabel = "Entrar"
	default:
		d.Login = true
		d.Subtitle = "Faça login na sua conta"
		d.SubmitLabel = "Entrar"
		d.TogglePrompt = "Não tem uma conta?"
		d.ToggleLabel = "Cadastre-se"
	}
	return d
}

type ThumbView struct {
	ProductID int
	Name      string
	ImageURL  string
	Active    bool
	Class     string
}

type GalleryView struct {
	ActiveImageURL string
	Fading         bool
	ImageClass     string
	Thumbs         []ThumbView
	// PollAfterMS is when the client should fetch the settled gallery.
	PollAfterMS int64
}

type OptionView struct {
	Value    string
	Selected bool
	Class    string
	Swatch   string
}

type OptionsData struct {
	SelectedColor string
	Colors        []OptionView
	Sizes         []OptionView
}

type ProductData struct {
	SectionID string
	Name      string
	Price     string
	Gallery   GalleryView
	Options   OptionsData
}

const (
	thumbBase     = "w-16 h-20 flex-shrink-0 rounded-md overflow-hidden transition-all duration-200"
	thumbActive   = "ring-2 ring-white ring-offset-2 ring-offset-black"
	thumbInactive = "opacity-60 hover:opacity-100"
	mainImageBase = "w-full h-full object-cover transition-opacity duration-200 ease-in-out opacity-100"
	colorBase     = "h-8 w-8 rounded-full border-2 transition-all duration-200 border-gray-600 hover:border-gray-400"
	sizeBase      = "px-4 py-2 border rounded-md transition-colors duration-200 min-w-[50px] text-center border-gray-600 hover:bg-neutral-800"
)

func NewGalleryView(st productview.State, fadeDelay time.Duration) GalleryView {
	g := GalleryView{
		ActiveImageURL: st.ActiveImageURL,
		Fading:         st.IsFading,
		ImageClass:     mainImageBase,
		Thumbs:         make([]ThumbView, 0, len(st.SectionProducts)),
	}
	if st.IsFading {
		g.ImageClass = twmerge.Merge(mainImageBase, "opacity-0")
		g.PollAfterMS = fadeDelay.Milliseconds()
	}
	for _, p := range st.SectionProducts {
		t := ThumbView{
			ProductID: p.ID,
			Name:      p.Name,
			ImageURL:  p.ImageURL,
			Active:    p.ID == st.ActiveProductID,
		}
		if t.Active {
			t.Class = twmerge.Merge(thumbBase, thumbActive)
		} else {
			t.Class = twmerge.Merge(thumbBase, thumbInactive)
		}
		g.Thumbs = append(g.Thumbs, t)
	}
	return g
}

func NewOptionsData(st productview.State) OptionsData {
	o := OptionsData{SelectedColor: string(st.SelectedColor)}
	for _, c := range productview.Colors {
		v := OptionView{Value: string(c), Selected: c == st.SelectedColor, Swatch: colorSwatches[c], Class: colorBase}
		if v.Selected {
			v.Class = twmerge.Merge(colorBase, "border-white hover:border-white")
		}
		o.Colors = append(o.Colors, v)
	}
	for _, s := range productview.Sizes {
		v := OptionView{Value: string(s), Selected: s == st.SelectedSize, Class: sizeBase}
		if v.Selected {
			v.Class = twmerge.Merge(sizeBase, "bg-white text-black font-semibold hover:bg-white")
		}
		o.Sizes = append(o.Sizes, v)
	}
	return o
}

func NewProductData(st productview.State, sectionID string, fadeDelay time.Duration, prices *format.PriceFormatter) ProductData {
	return ProductData{
		SectionID: sectionID,
		Name:      st.Product.Name,
		Price:     prices.Format(st.Product.Price),
		Gallery:   NewGalleryView(st, fadeDelay),
		Options:   NewOptionsData(st),
	}
}
