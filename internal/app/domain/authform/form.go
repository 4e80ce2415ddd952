// Package authform implements the login / signup / forgot password form of the
// storefront. Authentication is a mock: a valid submission simply reports
// success.
package authform

import (
	"errors"
)

type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
	ModeForgot
)

func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeSignup:
		return "signup"
	case ModeForgot:
		return "forgot"
	default:
		return "unknown"
	}
}

// Transition is a user action that changes the form mode.
type Transition string

const (
	TransitionForgot Transition = "forgot"
	TransitionToggle Transition = "toggle"
	TransitionBack   Transition = "back"
)

// ErrInvalidTransition is returned by Apply for a transition the current mode
// does not offer.
var ErrInvalidTransition = errors.New("transition not allowed from current mode")

type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeSuccess
	OutcomeNotImplemented
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotImplemented:
		return "not_implemented"
	default:
		return "invalid"
	}
}

const (
	MsgInvalidEmail        = "Por favor, insira um e-mail válido."
	MsgPasswordMismatch    = "As senhas não coincidem."
	MsgRecoveryUnavailable = "Funcionalidade de recuperação de senha não implementada."
)

// State is a read only snapshot of the form.
type State struct {
	Mode            Mode
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	EmailError      string
	PasswordError   string
}

// Form is not safe for concurrent use.
type Form struct {
	s         State
	onSuccess func()
}

// New returns a form in login mode. onSuccess runs once per successful login
// or signup submission; it may be nil.
func New(onSuccess func()) *Form {
	return &Form{onSuccess: onSuccess}
}

func (f *Form) State() State { return f.s }

func (f *Form) Mode() Mode { return f.s.Mode }

// Apply runs a mode transition. Every transition resets all fields and
// errors. Allowed: login->forgot, login<->signup, forgot->login.
func (f *Form) Apply(t Transition) error {
	next, ok := nextMode(f.s.Mode, t)
	if !ok {
		return ErrInvalidTransition
	}
	f.s = State{Mode: next}
	return nil
}

func nextMode(current Mode, t Transition) (Mode, bool) {
	switch t {
	case TransitionForgot:
		if current == ModeLogin {
			return ModeForgot, true
		}
	case TransitionToggle:
		switch current {
		case ModeLogin:
			return ModeSignup, true
		case ModeSignup:
			return ModeLogin, true
		}
	case TransitionBack:
		if current == ModeForgot {
			return ModeLogin, true
		}
	}
	return current, false
}

// SetEmail stores the email field; a visible email error is cleared right
// away.
func (f *Form) SetEmail(v string) {
	f.s.Email = v
	f.s.EmailError = ""
}

func (f *Form) SetPassword(v string) {
	f.s.Password = v
	f.s.PasswordError = ""
}

func (f *Form) SetConfirmPassword(v string) {
	f.s.ConfirmPassword = v
	f.s.PasswordError = ""
}

func (f *Form) SetName(v string) {
	f.s.Name = v
}

// Submit validates the form. The email check runs first and stops the
// submission on failure; the password confirmation is only checked when
// signing up. Forgot mode never reports success.
func (f *Form) Submit() Outcome {
	f.s.EmailError = ""
	f.s.PasswordError = ""

	if !ValidEmail(f.s.Email) {
		f.s.EmailError = MsgInvalidEmail
		return OutcomeInvalid
	}

	if f.s.Mode == ModeSignup && f.s.Password != f.s.ConfirmPassword {
		f.s.PasswordError = MsgPasswordMismatch
		return OutcomeInvalid
	}

	if f.s.Mode == ModeForgot {
		return OutcomeNotImplemented
	}
	if f.onSuccess != nil {
		f.onSuccess()
	}
	return OutcomeSuccess
}
