package deck

import "errors"

var (
	// ErrIndexOutOfRange is returned when a value is requested at a position
	// that is not lower than the item's size.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidState is returned when normalized values are requested from an
	// item that has no unit factor registered.
	ErrInvalidState = errors.New("invalid item state")
	// ErrUnsupportedValue is returned by the cty helpers for values that cannot
	// be appended to an item.
	ErrUnsupportedValue = errors.New("unsupported value")
)
