package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
}

type Navigation struct {
	Items []NavItem
}

// LayoutTempl is the data the page shell needs around a page body.
type LayoutTempl struct {
	Title      string
	Nav        Navigation
	ShowHeader bool
	ShowFooter bool
	IsLoggedIn bool
	Notices    []Notice
	Content    templ.Component
}

// SectionNav holds the in-page anchors of the home page. The fragments
// must match the section ids of the catalog.
var SectionNav = Navigation{
	Items: []NavItem{
		{Name: "Classic", URL: "#classic"},
		{Name: "Level UP", URL: "#level-up"},
		{Name: "Pass the level", URL: "#pass-the-level"},
		{Name: "Pass Sports", URL: "#pass-sports"},
	},
}
