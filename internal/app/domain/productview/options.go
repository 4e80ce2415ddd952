package productview

import (
	"fmt"

	"github.com/FACorreiaa/pass-store/internal/app/models"
)

type Size string

const (
	SizeP  Size = "P"
	SizeM  Size = "M"
	SizeG  Size = "G"
	SizeGG Size = "GG"
)

// Sizes in display order.
var Sizes = []Size{SizeP, SizeM, SizeG, SizeGG}

func ParseSize(s string) (Size, error) {
	for _, v := range Sizes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown size %q: %w", s, models.ErrBadRequest)
}

type Color string

const (
	ColorPreto  Color = "Preto"
	ColorBranco Color = "Branco"
	ColorCinza  Color = "Cinza"
)

// Colors in display order. The first entry is the default selection.
var Colors = []Color{ColorPreto, ColorBranco, ColorCinza}

func ParseColor(s string) (Color, error) {
	for _, v := range Colors {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown color %q: %w", s, models.ErrBadRequest)
}
