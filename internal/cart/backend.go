package cart

import (
	"context"
	"errors"

	"chaikada_store_front/internal/models"
)

var (
	// ErrVariantNotFound means the product has no variant matching the
	// requested size.
	ErrVariantNotFound = errors.New("product variant not found")
	// ErrItemNotFound means no cart line matches (productId, variantSize).
	ErrItemNotFound = errors.New("cart item not found")
)

// Backend is one source of truth for a shopper's cart. Two implementations
// exist: the session-scoped guest store (Redis) and the remote API cart for
// authenticated users. Which one is authoritative is decided once, where the
// backend is injected — never inside the operations themselves.
type Backend interface {
	Get(ctx context.Context) (models.Cart, error)
	// Add merges into an existing (productId, variantSize) line by
	// incrementing its quantity; a new key appends a line with the unit price
	// snapshotted from the matched variant. Deliberately not idempotent: each
	// call means "add N more".
	Add(ctx context.Context, product models.Product, variantSize string, quantity int) (models.Cart, error)
	// Update sets the line quantity. Zero or negative quantity removes the
	// line. A missing line is ErrItemNotFound.
	Update(ctx context.Context, productID, variantSize string, quantity int) (models.Cart, error)
	// Remove filters out the matching line. Removing an absent line is a
	// no-op, so repeated removes are safe.
	Remove(ctx context.Context, productID, variantSize string) (models.Cart, error)
}
