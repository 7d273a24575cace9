package cart

import (
	"context"
	"encoding/json"
	"time"

	"chaikada_store_front/internal/models"
)

// Storage is the minimal key-value surface the guest store needs. Production
// uses Redis; tests use an in-memory map.
type Storage interface {
	// Get returns ("", nil) when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

const guestCartTTL = 30 * 24 * time.Hour

// GuestStore keeps the single anonymous cart for one browser session, stored
// as JSON under guestcart:<sessionID>. It is the source of truth whenever no
// authenticated identity exists.
type GuestStore struct {
	storage Storage
	key     string
}

func NewGuestStore(storage Storage, sessionID string) *GuestStore {
	return &GuestStore{storage: storage, key: "guestcart:" + sessionID}
}

// Get loads the stored cart with derived fields recomputed. Never fails on
// bad data: an absent or corrupt entry yields an empty cart.
func (s *GuestStore) Get(ctx context.Context) (models.Cart, error) {
	data, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return models.Cart{Items: []models.CartItem{}}, err
	}

	cart := models.Cart{Items: []models.CartItem{}}
	if data != "" {
		if err := json.Unmarshal([]byte(data), &cart); err != nil {
			// malformed stored data is treated as an empty cart
			cart = models.Cart{Items: []models.CartItem{}}
		}
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.Recalculate()
	return cart, nil
}

func (s *GuestStore) Add(ctx context.Context, product models.Product, variantSize string, quantity int) (models.Cart, error) {
	variant, ok := product.VariantBySize(variantSize)
	if !ok {
		return models.Cart{}, ErrVariantNotFound
	}

	cart, err := s.Get(ctx)
	if err != nil {
		return models.Cart{}, err
	}

	if i := cart.Find(product.ID, variantSize); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			Product:     product,
			VariantSize: variantSize,
			Quantity:    quantity,
			Price:       variant.Price,
		})
	}

	return s.save(ctx, cart)
}

func (s *GuestStore) Update(ctx context.Context, productID, variantSize string, quantity int) (models.Cart, error) {
	cart, err := s.Get(ctx)
	if err != nil {
		return models.Cart{}, err
	}

	i := cart.Find(productID, variantSize)
	if i < 0 {
		return models.Cart{}, ErrItemNotFound
	}

	if quantity <= 0 {
		// zero or negative quantity means delete, not an error
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}

	return s.save(ctx, cart)
}

func (s *GuestStore) Remove(ctx context.Context, productID, variantSize string) (models.Cart, error) {
	cart, err := s.Get(ctx)
	if err != nil {
		return models.Cart{}, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Product.ID != productID || item.VariantSize != variantSize {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	return s.save(ctx, cart)
}

// Clear empties the session cart entirely. Used after a guest order is placed.
func (s *GuestStore) Clear(ctx context.Context) error {
	return s.storage.Del(ctx, s.key)
}

// ItemCount sums quantities for the badge.
func (s *GuestStore) ItemCount(ctx context.Context) (int, error) {
	cart, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}

// OrderItems projects the cart into the shape a guest order-creation call
// needs, dropping prices.
func (s *GuestStore) OrderItems(ctx context.Context) ([]models.OrderItem, error) {
	cart, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return cart.OrderItems(), nil
}

func (s *GuestStore) save(ctx context.Context, cart models.Cart) (models.Cart, error) {
	cart.Recalculate()
	data, err := json.Marshal(cart)
	if err != nil {
		return models.Cart{}, err
	}
	if err := s.storage.Set(ctx, s.key, string(data), guestCartTTL); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}
