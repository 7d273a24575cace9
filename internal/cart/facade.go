package cart

import (
	"context"

	"chaikada_store_front/internal/events"
	"chaikada_store_front/internal/models"
)

// Facade presents one cart API to the rest of the application regardless of
// authentication state. The authoritative backend is chosen once at
// construction; every successful mutation broadcasts the cart-changed signal
// after the backing write completes.
type Facade struct {
	backend Backend
	bus     *events.Bus
}

func NewFacade(backend Backend, bus *events.Bus) *Facade {
	return &Facade{backend: backend, bus: bus}
}

func (f *Facade) Get(ctx context.Context) (models.Cart, error) {
	cart, err := f.backend.Get(ctx)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Recalculate()
	return cart, nil
}

func (f *Facade) Add(ctx context.Context, product models.Product, variantSize string, quantity int) (models.Cart, error) {
	cart, err := f.backend.Add(ctx, product, variantSize, quantity)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Recalculate()
	f.bus.Publish()
	return cart, nil
}

func (f *Facade) Update(ctx context.Context, productID, variantSize string, quantity int) (models.Cart, error) {
	cart, err := f.backend.Update(ctx, productID, variantSize, quantity)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Recalculate()
	f.bus.Publish()
	return cart, nil
}

func (f *Facade) Remove(ctx context.Context, productID, variantSize string) (models.Cart, error) {
	cart, err := f.backend.Remove(ctx, productID, variantSize)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Recalculate()
	f.bus.Publish()
	return cart, nil
}

// ItemCount re-fetches the cart and sums quantities, for the badge.
func (f *Facade) ItemCount(ctx context.Context) (int, error) {
	cart, err := f.Get(ctx)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}
