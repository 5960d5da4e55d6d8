package services

import (
	"errors"
	"fmt"
)

// ErrEmptyBill rejects an order with no line requests. Checked before any
// resource access, so it can never leave partial state behind.
var ErrEmptyBill = errors.New("billing: a bill requires at least one item")

// ErrBillNumberExhausted is returned when every generated bill number
// candidate collided. With a 36^6 suffix space this is effectively a
// never-event, but the engine handles it rather than assuming it away.
var ErrBillNumberExhausted = errors.New("billing: could not allocate a unique bill number")

// ErrInvalidQuantity rejects a line request asking for fewer than one unit.
var ErrInvalidQuantity = errors.New("billing: quantity must be at least 1")

// ItemNotFoundError reports a line request that referenced an unknown
// catalog item. The whole order is discarded.
type ItemNotFoundError struct {
	ItemID uint
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("billing: item with id %d not found", e.ItemID)
}

// InsufficientStockError reports a line request exceeding the item's
// on-hand quantity. No stock is decremented, including for lines that
// passed before this one.
type InsufficientStockError struct {
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("billing: insufficient stock for %s (requested %d, available %d)",
		e.ItemName, e.Requested, e.Available)
}
