// Package productview is the state of the product detail page: the image
// gallery with its cross-fade, the size and color pickers and the gated cart
// actions.
package productview

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/domain/navigation"
	"github.com/FACorreiaa/pass-store/internal/app/models"
)

// DefaultFadeDelay must match the opacity transition of the main image.
const DefaultFadeDelay = 200 * time.Millisecond

var (
	// ErrUnknownImage is returned when a selection is not in the section gallery.
	ErrUnknownImage = errors.New("image is not part of the section gallery")
	// ErrProductMissing is returned by New when the product is not in its section.
	ErrProductMissing = errors.New("product is not part of the section list")
	// ErrClosed is returned by every mutation after Close.
	ErrClosed = errors.New("product detail is closed")
)

// Gate decides whether a gated action may run.
type Gate interface {
	Guard(action navigation.Action) (models.Notice, bool)
}

type Options struct {
	FadeDelay time.Duration
	Scheduler Scheduler
	Logger    *zap.Logger
	// OnSwap runs after a faded image swap has been applied.
	OnSwap func(url string)
}

// State is a snapshot of the detail page.
type State struct {
	Product         models.Product
	SectionProducts []models.Product
	ActiveImageURL  string
	ActiveProductID int
	SelectedSize    Size
	SelectedColor   Color
	IsFading        bool
}

// Detail is safe for concurrent use; the fade timer fires on its own
// goroutine.
type Detail struct {
	mu sync.Mutex

	product  models.Product
	products []models.Product

	active  int
	url     string
	pending int
	gen     uint64
	timer   Timer
	fading  bool
	closed  bool

	size  Size
	color Color

	delay  time.Duration
	sched  Scheduler
	logger *zap.Logger
	onSwap func(string)
}

// New opens the detail page of product, whose gallery is sectionProducts.
func New(product models.Product, sectionProducts []models.Product, opts Options) (*Detail, error) {
	idx := models.IndexOfProduct(sectionProducts, product.ID)
	if idx < 0 {
		return nil, ErrProductMissing
	}
	if opts.FadeDelay <= 0 {
		opts.FadeDelay = DefaultFadeDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = SystemScheduler
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Detail{
		product:  product,
		products: append([]models.Product(nil), sectionProducts...),
		active:   idx,
		url:      product.ImageURL,
		pending:  -1,
		color:    Colors[0],
		delay:    opts.FadeDelay,
		sched:    opts.Scheduler,
		logger:   opts.Logger,
		onSwap:   opts.OnSwap,
	}, nil
}

func (d *Detail) Product() models.Product { return d.product }

func (d *Detail) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	return State{
		Product:         d.product,
		SectionProducts: append([]models.Product(nil), d.products...),
		ActiveImageURL:  d.url,
		ActiveProductID: d.products[d.active].ID,
		SelectedSize:    d.size,
		SelectedColor:   d.color,
		IsFading:        d.fading,
	}
}

// SelectImage fades to url. Selecting the image already shown is a no-op.
func (d *Detail) SelectImage(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	idx := d.active
	if d.products[idx].ImageURL != url {
		idx = models.IndexOfImage(d.products, url)
	}
	if idx < 0 {
		return ErrUnknownImage
	}
	d.selectLocked(idx)
	return nil
}

// SelectProductImage fades to the image of the section product with id.
func (d *Detail) SelectProductImage(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	idx := models.IndexOfProduct(d.products, id)
	if idx < 0 {
		return ErrUnknownImage
	}
	d.selectLocked(idx)
	return nil
}

// Next moves the gallery one product forward, wrapping at the end.
func (d *Detail) Next() error {
	return d.step(1)
}

// Previous moves the gallery one product back, wrapping at the start.
func (d *Detail) Previous() error {
	return d.step(-1)
}

func (d *Detail) step(delta int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	n := len(d.products)
	d.selectLocked(((d.positionLocked()+delta)%n + n) % n)
	return nil
}

// positionLocked is the gallery position steps start from: the pending
// target while a fade is running, otherwise the active product. Lookup by
// image URL is only used when the active identity no longer matches.
func (d *Detail) positionLocked() int {
	if d.pending >= 0 {
		return d.pending
	}
	if d.active >= 0 && d.active < len(d.products) && d.products[d.active].ImageURL == d.url {
		return d.active
	}
	if i := models.IndexOfImage(d.products, d.url); i >= 0 {
		return i
	}
	return 0
}

// selectLocked starts a fade to products[idx]. The last request wins: a
// pending swap is cancelled and its callback ignored if it already fired.
func (d *Detail) selectLocked(idx int) {
	url := d.products[idx].ImageURL

	if d.pending < 0 {
		if url == d.url {
			return
		}
	} else {
		if idx == d.pending {
			return
		}
		d.cancelLocked()
		if url == d.url {
			d.active = idx
			d.logger.Debug("Image fade cancelled", zap.String("url", url))
			return
		}
	}

	d.gen++
	gen := d.gen
	d.pending = idx
	d.fading = true
	d.timer = d.sched.AfterFunc(d.delay, func() { d.finish(gen) })
	d.logger.Debug("Image fade started",
		zap.String("url", url),
		zap.Duration("delay", d.delay),
	)
}

func (d *Detail) finish(gen uint64) {
	d.mu.Lock()
	if d.closed || gen != d.gen || d.pending < 0 {
		d.mu.Unlock()
		return
	}
	d.active = d.pending
	d.url = d.products[d.active].ImageURL
	d.pending = -1
	d.fading = false
	d.timer = nil
	url := d.url
	onSwap := d.onSwap
	d.mu.Unlock()

	if onSwap != nil {
		onSwap(url)
	}
}

func (d *Detail) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = -1
	d.fading = false
}

func (d *Detail) SelectSize(s Size) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.size = s
	return nil
}

func (d *Detail) SelectColor(c Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.color = c
	return nil
}

// AddToCart never touches a cart; it only runs the gate.
func (d *Detail) AddToCart(g Gate) (models.Notice, bool) {
	return g.Guard(navigation.ActionAddToCart)
}

// BuyNow never starts a checkout; it only runs the gate.
func (d *Detail) BuyNow(g Gate) (models.Notice, bool) {
	return g.Guard(navigation.ActionBuyNow)
}

// Close cancels a pending fade. Later selections fail with ErrClosed and
// State keeps reporting the last shown image.
func (d *Detail) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending >= 0 {
		d.cancelLocked()
	}
	d.closed = true
}
