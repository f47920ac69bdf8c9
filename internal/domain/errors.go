package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrOutOfStock indicates a product with zero purchasable stock.
	ErrOutOfStock = errors.New("out of stock")
)
