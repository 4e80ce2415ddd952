package models

// NavigationState is the top level screen a session is looking at.
type NavigationState int

const (
	NavHome NavigationState = iota
	NavAuth
	NavProduct
)

func (s NavigationState) String() string {
	switch s {
	case NavHome:
		return "home"
	case NavAuth:
		return "auth"
	case NavProduct:
		return "product"
	default:
		return "unknown"
	}
}

// SelectedProductInfo is the product being viewed together with the exact
// section list it was picked from.
type SelectedProductInfo struct {
	Product         Product
	SectionID       string
	SectionProducts []Product
}

// SessionState is the mock login flag of a browser session.
type SessionState struct {
	IsLoggedIn bool
}
