package deck

import (
	"fmt"
	"slices"
	"sync"
)

// Item is an append-only, ordered list of raw values read from one record
// field. It is usable for any value type; see NumericItem for unit handling.
type Item[T any] struct {
	mu             sync.RWMutex
	name           string
	values         []T
	defaultApplied bool
}

// StringItem holds text values. It has no normalized representation.
type StringItem = Item[string]

// New creates an empty item with the given name.
func New[T any](name string) *Item[T] {
	return &Item[T]{name: name}
}

// Name returns the identifier the item was created with.
func (it *Item[T]) Name() string {
	return it.name
}

// Size returns the number of values appended so far.
func (it *Item[T]) Size() int {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return len(it.values)
}

// Value returns the raw value at index.
func (it *Item[T]) Value(index int) (T, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()

	if err := checkIndex(index, len(it.values)); err != nil {
		var zero T
		return zero, err
	}
	return it.values[index], nil
}

// Values returns a copy of all raw values in append order.
func (it *Item[T]) Values() []T {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return slices.Clone(it.values)
}

// DefaultApplied reports whether AppendDefault has ever been called on the
// item. The flag covers the whole item and is never cleared.
func (it *Item[T]) DefaultApplied() bool {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.defaultApplied
}

// Append adds one value read literally from the input.
func (it *Item[T]) Append(value T) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.values = append(it.values, value)
}

// AppendDefault adds one value substituted from a keyword default and marks
// the item as defaulted.
func (it *Item[T]) AppendDefault(value T) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.values = append(it.values, value)
	it.defaultApplied = true
}

// AppendMultiple adds value count times. It does not touch the default flag.
func (it *Item[T]) AppendMultiple(value T, count int) {
	it.mu.Lock()
	defer it.mu.Unlock()
	for i := 0; i < count; i++ {
		it.values = append(it.values, value)
	}
}

// AppendAll adds every element of batch in order.
func (it *Item[T]) AppendAll(batch []T) {
	it.AppendBounded(batch, len(batch))
}

// AppendBounded adds the first count elements of batch in order. Asking for
// more elements than batch holds is a programming error and panics.
func (it *Item[T]) AppendBounded(batch []T, count int) {
	if count < 0 || count > len(batch) {
		panic(fmt.Sprintf("deck: item '%s': cannot append %d values from a batch of %d", it.name, count, len(batch)))
	}
	it.mu.Lock()
	defer it.mu.Unlock()
	it.values = append(it.values, batch[:count]...)
}

func checkIndex(index, size int) error {
	if index < 0 || index >= size {
		return fmt.Errorf("%w: index must be lower than %d, got %d", ErrIndexOutOfRange, size, index)
	}
	return nil
}
