package models

import "fmt"

// Product is a single catalog entry. Values are never mutated after the
// catalog has been loaded.
type Product struct {
	ID       int     `yaml:"id" json:"id" validate:"required,gt=0"`
	Name     string  `yaml:"name" json:"name" validate:"required"`
	Price    float64 `yaml:"price" json:"price" validate:"gt=0"`
	ImageURL string  `yaml:"image_url" json:"imageUrl" validate:"required,url"`
}

// Variant is the display style of a catalog section.
type Variant string

const (
	VariantClassic      Variant = "classic"
	VariantLevelUp      Variant = "levelUp"
	VariantPassTheLevel Variant = "passTheLevel"
	VariantPassSports   Variant = "passSports"
)

// Variants lists every variant in home page order.
var Variants = []Variant{VariantClassic, VariantLevelUp, VariantPassTheLevel, VariantPassSports}

// SectionIDs maps each variant to the id of the section that carries it.
// The ids double as the in-page anchors of the header.
var SectionIDs = map[Variant]string{
	VariantClassic:      "classic",
	VariantLevelUp:      "level-up",
	VariantPassTheLevel: "pass-the-level",
	VariantPassSports:   "pass-sports",
}

func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown variant %q: %w", s, ErrValidation)
}

// Section is an ordered, disjoint group of products shown together.
type Section struct {
	ID       string    `yaml:"id" json:"id" validate:"required"`
	Title    string    `yaml:"title" json:"title" validate:"required"`
	Variant  Variant   `yaml:"variant" json:"variant" validate:"required"`
	Products []Product `yaml:"products" json:"products" validate:"required,min=1,dive"`
}

// IndexOf returns the position of the product with the given id, or -1.
func (s Section) IndexOf(productID int) int {
	return IndexOfProduct(s.Products, productID)
}

// IndexOfProduct returns the position of the product with the given id in
// products, or -1.
func IndexOfProduct(products []Product, productID int) int {
	for i, p := range products {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

// IndexOfImage returns the first position whose image URL equals url, or -1.
func IndexOfImage(products []Product, url string) int {
	for i, p := range products {
		if p.ImageURL == url {
			return i
		}
	}
	return -1
}
