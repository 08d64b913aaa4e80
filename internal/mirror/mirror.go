// Package mirror persists checkout progress between sessions. It is a cache of
// the in-memory cart, never a source of business truth: the three keys are
// rehydrated at startup and overwritten after every committed mutation.
package mirror

import (
	"context"
	"errors"
)

// Mirror stores the three checkout keys as serialized JSON.
// Consumers define this interface, not the Redis implementation.
type Mirror interface {
	Load(ctx context.Context, key string, v any) error
	Save(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// Keys for the three independently mirrored selections.
const (
	KeyCartItems       = "cartItems"
	KeyShippingAddress = "shippingAddress"
	KeyPaymentMethod   = "paymentMethod"
)

var ErrNotFound = errors.New("mirror key not found")
