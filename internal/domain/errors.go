package domain

import "errors"

var (
	ErrInvalidCategory   = errors.New("invalid category")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrNegativeValue     = errors.New("stock and price cannot be negative")
	ErrNotConfirmed      = errors.New("deletion not confirmed")
	ErrUnknownField      = errors.New("unknown field")
	ErrUnknownWindow     = errors.New("unknown report window")
	ErrSessionClosed     = errors.New("session already committed")
)
