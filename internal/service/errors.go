package service

import "fmt"

// ValidationError marks caller mistakes that should surface as a 400 rather
// than a server failure.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

var ErrInvalidQuantity = ValidationError("quantity must be at least 1")

// InsufficientStockError is returned when a requested quantity exceeds the
// product's live stock. Available carries the stock count at check time so
// the message can report how many units remain.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d items available in stock", e.Available)
}
