// Package session binds the per-browser view state together: navigation, the
// auth form while the auth page is open and the product detail while a
// product page is open.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/domain/authform"
	"github.com/FACorreiaa/pass-store/internal/app/domain/navigation"
	"github.com/FACorreiaa/pass-store/internal/app/domain/productview"
	"github.com/FACorreiaa/pass-store/internal/app/models"
)

var (
	// ErrAuthClosed is returned by auth form operations outside the auth page.
	ErrAuthClosed = errors.New("auth page is not open")
	// ErrNoProduct is returned by product operations outside a product page.
	ErrNoProduct = errors.New("no product page is open")
	// ErrUnknownField is returned by SetAuthField for a field the form lacks.
	ErrUnknownField = errors.New("unknown auth field")
)

// Field names accepted by SetAuthField.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
)

// Snapshot is everything a page render needs.
type Snapshot struct {
	ID         string
	View       navigation.View
	IsLoggedIn bool
	SectionID  string
	Auth       *authform.State
	Product    *productview.State
}

// Session is safe for concurrent use. All state transitions run under its
// mutex; the product detail additionally guards its own fade timer.
type Session struct {
	mu sync.Mutex

	id       string
	created  time.Time
	nav      *navigation.Controller
	form     *authform.Form
	detail   *productview.Detail
	notices  []models.Notice
	detailOp productview.Options
	logger   *zap.Logger
}

func newSession(id string, detailOpts productview.Options, logger *zap.Logger) *Session {
	logger = logger.With(zap.String("session", id))
	detailOpts.Logger = logger
	return &Session{
		id:       id,
		created:  time.Now(),
		nav:      navigation.NewController(logger),
		detailOp: detailOpts,
		logger:   logger,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Created() time.Time { return s.created }

// GoHome shows the home page.
func (s *Session) GoHome() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.nav.Navigate(models.NavHome)
	s.reconcile()
}

// EnterAuth shows the auth page. A form already open keeps its fields.
func (s *Session) EnterAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.nav.Navigate(models.NavAuth)
	s.reconcile()
}

// OpenProduct shows the product page for product chosen from products.
// Re-opening the product already shown keeps its gallery and options.
func (s *Session) OpenProduct(product models.Product, sectionID string, products []models.Product) (navigation.Effects, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev := s.nav.Selected()
	fx, err := s.nav.SelectProduct(product, sectionID, products)
	if err != nil {
		return navigation.Effects{}, err
	}

	same := hadPrev && s.detail != nil && prev.SectionID == sectionID && prev.Product.ID == product.ID
	if !same {
		s.closeDetail()
		d, err := productview.New(product, products, s.detailOp)
		if err != nil {
			_ = s.nav.Navigate(models.NavHome)
			return navigation.Effects{}, fmt.Errorf("open product %d: %w", product.ID, err)
		}
		s.detail = d
	}
	s.reconcile()
	return fx, nil
}

// Guard runs the gated action policy for action.
func (s *Session) Guard(action navigation.Action) (models.Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nav.Guard(action)
	s.reconcile()
	return n, ok
}

// AddToCart and BuyNow run the gate from the product page.
func (s *Session) AddToCart() (models.Notice, bool, error) {
	return s.productAction((*productview.Detail).AddToCart)
}

func (s *Session) BuyNow() (models.Notice, bool, error) {
	return s.productAction((*productview.Detail).BuyNow)
}

func (s *Session) productAction(run func(*productview.Detail, productview.Gate) (models.Notice, bool)) (models.Notice, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detail == nil {
		return models.Notice{}, false, ErrNoProduct
	}
	n, ok := run(s.detail, s.nav)
	s.reconcile()
	return n, ok, nil
}

// UpdateDetail runs fn on the open product detail while holding the session,
// so a concurrent navigation cannot close the detail underneath it. A nil fn
// only reads the state.
func (s *Session) UpdateDetail(fn func(*productview.Detail) error) (productview.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detail == nil {
		return productview.State{}, ErrNoProduct
	}
	if fn != nil {
		if err := fn(s.detail); err != nil {
			return s.detail.State(), err
		}
	}
	return s.detail.State(), nil
}

func (s *Session) ApplyAuth(t authform.Transition) (authform.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return authform.State{}, ErrAuthClosed
	}
	if err := s.form.Apply(t); err != nil {
		return s.form.State(), err
	}
	s.logger.Debug("Auth mode changed", zap.Stringer("mode", s.form.Mode()))
	return s.form.State(), nil
}

func (s *Session) SetAuthField(field, value string) (authform.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return authform.State{}, ErrAuthClosed
	}
	switch field {
	case FieldName:
		s.form.SetName(value)
	case FieldEmail:
		s.form.SetEmail(value)
	case FieldPassword:
		s.form.SetPassword(value)
	case FieldConfirmPassword:
		s.form.SetConfirmPassword(value)
	default:
		return s.form.State(), fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return s.form.State(), nil
}

// SubmitAuth validates the form. A successful login leaves the auth page, so
// the returned state is the form as it was submitted.
func (s *Session) SubmitAuth() (authform.Outcome, authform.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return authform.OutcomeInvalid, authform.State{}, ErrAuthClosed
	}
	form := s.form
	outcome := form.Submit()
	st := form.State()
	s.logger.Info("Auth submitted",
		zap.Stringer("mode", st.Mode),
		zap.Stringer("outcome", outcome),
	)
	s.reconcile()
	return outcome, st, nil
}

// Flash queues a notice for the next rendered page.
func (s *Session) Flash(n models.Notice) {
	s.mu.Lock()
	s.notices = append(s.notices, n)
	s.mu.Unlock()
}

// TakeNotices returns and clears the queued notices.
func (s *Session) TakeNotices() []models.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.notices
	s.notices = nil
	return out
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		View:       s.nav.View(),
		IsLoggedIn: s.nav.IsLoggedIn(),
	}
	if s.form != nil {
		st := s.form.State()
		snap.Auth = &st
	}
	if sel, ok := s.nav.Selected(); ok {
		snap.SectionID = sel.SectionID
	}
	if s.detail != nil {
		st := s.detail.State()
		snap.Product = &st
	}
	return snap
}

// Close releases the pending fade timer, if any.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeDetail()
}

// reconcile keeps page scoped state alive only while its page is shown: the
// auth form exists only on Auth and the detail only for the selected product.
func (s *Session) reconcile() {
	if s.nav.State() == models.NavAuth {
		if s.form == nil {
			s.form = authform.New(s.nav.CompleteLogin)
		}
	} else {
		s.form = nil
	}

	sel, ok := s.nav.Selected()
	if !ok || s.detail == nil || s.detail.Product().ID != sel.Product.ID {
		s.closeDetail()
	}
}

func (s *Session) closeDetail() {
	if s.detail != nil {
		s.detail.Close()
		s.detail = nil
	}
}
