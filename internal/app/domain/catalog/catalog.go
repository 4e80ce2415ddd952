package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/pass-store/internal/app/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var validate = validator.New()

// Repository gives read access to the storefront catalog.
type Repository interface {
	Sections() []models.Section
	Section(id string) (models.Section, error)
	Product(sectionID string, productID int) (models.Product, models.Section, error)
}

type file struct {
	Sections []models.Section `yaml:"sections" validate:"required,len=4,dive"`
}

// Catalog is an immutable, validated set of sections.
type Catalog struct {
	sections []models.Section
	byID     map[string]int
}

var _ Repository = (*Catalog)(nil)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog from path, or returns the embedded catalog when path
// is empty.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		logger.Info("Loading embedded catalog")
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	logger.Info("Loaded catalog",
		zap.String("path", path),
		zap.Int("sections", len(c.sections)),
	)
	return c, nil
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	if err := validate.Struct(f); err != nil {
		return nil, errors.Wrap(fmt.Errorf("%w: %v", models.ErrValidation, err), "validate catalog")
	}
	if err := checkLayout(f.Sections); err != nil {
		return nil, errors.Wrap(err, "validate catalog")
	}

	c := &Catalog{
		sections: f.Sections,
		byID:     make(map[string]int, len(f.Sections)),
	}
	for i, s := range f.Sections {
		c.byID[s.ID] = i
	}
	return c, nil
}

// checkLayout enforces the home page order, the fixed section ids and the
// disjointness of sections.
func checkLayout(sections []models.Section) error {
	seen := make(map[int]string)
	for i, s := range sections {
		if _, err := models.ParseVariant(string(s.Variant)); err != nil {
			return fmt.Errorf("section %q: %w", s.ID, err)
		}
		want := models.Variants[i]
		if s.Variant != want {
			return fmt.Errorf("%w: section %d has variant %q, want %q", models.ErrValidation, i, s.Variant, want)
		}
		if s.ID != models.SectionIDs[want] {
			return fmt.Errorf("%w: section %q must have id %q", models.ErrValidation, s.ID, models.SectionIDs[want])
		}
		for _, p := range s.Products {
			if other, ok := seen[p.ID]; ok {
				return fmt.Errorf("%w: product id %d appears in %q and %q", models.ErrValidation, p.ID, other, s.ID)
			}
			seen[p.ID] = s.ID
		}
	}
	return nil
}

// Sections returns every section in home page order.
func (c *Catalog) Sections() []models.Section {
	out := make([]models.Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = cloneSection(s)
	}
	return out
}

func (c *Catalog) Section(id string) (models.Section, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Section{}, fmt.Errorf("section %q: %w", id, models.ErrNotFound)
	}
	return cloneSection(c.sections[i]), nil
}

// Product looks a product up inside a given section. A product id that exists
// in another section is not found.
func (c *Catalog) Product(sectionID string, productID int) (models.Product, models.Section, error) {
	s, err := c.Section(sectionID)
	if err != nil {
		return models.Product{}, models.Section{}, err
	}
	i := s.IndexOf(productID)
	if i < 0 {
		return models.Product{}, models.Section{}, fmt.Errorf("product %d in section %q: %w", productID, sectionID, models.ErrNotFound)
	}
	return s.Products[i], s, nil
}

func cloneSection(s models.Section) models.Section {
	s.Products = append([]models.Product(nil), s.Products...)
	return s
}
