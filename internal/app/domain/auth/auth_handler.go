package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/domain"
	"github.com/FACorreiaa/pass-store/internal/app/domain/authform"
	"github.com/FACorreiaa/pass-store/internal/app/domain/session"
	"github.com/FACorreiaa/pass-store/internal/app/middleware"
	"github.com/FACorreiaa/pass-store/internal/app/models"
	"github.com/FACorreiaa/pass-store/internal/app/pages"
)

type AuthHandlers struct {
	*domain.BaseHandler
}

func NewAuthHandlers(base *domain.BaseHandler) *AuthHandlers {
	return &AuthHandlers{BaseHandler: base}
}

func (h *AuthHandlers) ShowAuthPage(c *gin.Context) {
	s, ok := h.Session(c)
	if !ok {
		return
	}
	s.EnterAuth()
	h.Metrics.Navigation(c.Request.Context(), models.NavAuth.String())

	snap := s.Snapshot()
	var st authform.State
	if snap.Auth != nil {
		st = *snap.Auth
	}
	h.RenderPage(c, http.StatusOK, "auth", domain.PageTitle("Entrar"), domain.ChromeNone, h.Pages.Auth(pages.NewAuthData(st)))
}

// ChangeMode applies a mode transition and re-renders the form card.
func (h *AuthHandlers) ChangeMode(c *gin.Context) {
	s, ok := h.Session(c)
	if !ok {
		return
	}

	st, err := s.ApplyAuth(authform.Transition(c.PostForm("transition")))
	switch {
	case errors.Is(err, session.ErrAuthClosed):
		middleware.Redirect(c, "/auth")
		return
	case errors.Is(err, authform.ErrInvalidTransition):
		h.BadRequest(c, err)
		return
	}
	h.Render(c, http.StatusOK, "auth_card", h.Pages.AuthCard(pages.NewAuthData(st)))
}

// UpdateField mirrors one input into the form. The response is the error
// slot the input targets, which the edit has just cleared.
func (h *AuthHandlers) UpdateField(c *gin.Context) {
	s, ok := h.Session(c)
	if !ok {
		return
	}

	field := c.Param("field")
	st, err := s.SetAuthField(field, c.PostForm(field))
	switch {
	case errors.Is(err, session.ErrAuthClosed):
		middleware.Redirect(c, "/auth")
		return
	case errors.Is(err, session.ErrUnknownField):
		h.BadRequest(c, err)
		return
	}

	switch field {
	case session.FieldEmail:
		h.Render(c, http.StatusOK, "email_error", h.Pages.EmailError(st.EmailError))
	case session.FieldPassword, session.FieldConfirmPassword:
		h.Render(c, http.StatusOK, "password_error", h.Pages.PasswordError(st.PasswordError))
	default:
		c.Status(http.StatusNoContent)
	}
}

var submitFields = []string{session.FieldName, session.FieldEmail, session.FieldPassword, session.FieldConfirmPassword}

// Submit applies the posted fields and validates the form. Validation
// failures re-render the card with status 200 so htmx swaps it in.
func (h *AuthHandlers) Submit(c *gin.Context) {
	s, ok := h.Session(c)
	if !ok {
		return
	}

	for _, f := range submitFields {
		if v, posted := c.GetPostForm(f); posted {
			if _, err := s.SetAuthField(f, v); errors.Is(err, session.ErrAuthClosed) {
				middleware.Redirect(c, "/auth")
				return
			}
		}
	}

	outcome, st, err := s.SubmitAuth()
	if errors.Is(err, session.ErrAuthClosed) {
		middleware.Redirect(c, "/auth")
		return
	}
	h.Metrics.AuthSubmission(c.Request.Context(), st.Mode.String(), outcome.String())

	switch outcome {
	case authform.OutcomeSuccess:
		h.Logger.Info("Mock login completed", zap.String("mode", st.Mode.String()))
		h.Metrics.Navigation(c.Request.Context(), models.NavHome.String())
		middleware.Redirect(c, "/")
	case authform.OutcomeNotImplemented:
		h.RenderNotice(c, models.Notice{Kind: models.NoticeNotImplemented, Message: authform.MsgRecoveryUnavailable})
	default:
		h.Render(c, http.StatusOK, "auth_card", h.Pages.AuthCard(pages.NewAuthData(st)))
	}
}
