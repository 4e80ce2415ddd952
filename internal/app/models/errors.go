package models

import "errors"

// Domain specific errors shared by the storefront packages.
var (
	// ErrNotFound marks a section or product id absent from the catalog.
	ErrNotFound = errors.New("requested item not found")
	// ErrBadRequest marks input a handler cannot act on, such as an unknown
	// size or color.
	ErrBadRequest = errors.New("bad request")
	// ErrValidation marks a catalog that fails its structural checks.
	ErrValidation = errors.New("validation failed")
)
