// Package localstore is the durable key/value storage that carts and
// wishlists write through to. It plays the role a browser's local storage
// plays for a single-page storefront.
package localstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("localstore: key not found")

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
