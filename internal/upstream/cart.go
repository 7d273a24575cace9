package upstream

import (
	"context"
	"net/http"

	"chaikada_store_front/internal/models"
)

// RemoteCart wraps the server cart API. It is authoritative only for
// authenticated shoppers; the wrapped client must carry their bearer token.
// Nothing is cached locally — every view re-fetches, since the server cart can
// change from other devices.
type RemoteCart struct {
	client *Client
}

func NewRemoteCart(client *Client) *RemoteCart {
	return &RemoteCart{client: client}
}

type cartMutation struct {
	ProductID   string `json:"productId"`
	VariantSize string `json:"variantSize"`
	Quantity    int    `json:"quantity,omitempty"`
}

func (r *RemoteCart) Get(ctx context.Context) (models.Cart, error) {
	var cart models.Cart
	if err := r.client.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (r *RemoteCart) Add(ctx context.Context, product models.Product, variantSize string, quantity int) (models.Cart, error) {
	var cart models.Cart
	body := cartMutation{ProductID: product.ID, VariantSize: variantSize, Quantity: quantity}
	if err := r.client.do(ctx, http.MethodPost, "/cart/add", body, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (r *RemoteCart) Update(ctx context.Context, productID, variantSize string, quantity int) (models.Cart, error) {
	var cart models.Cart
	body := struct {
		ProductID   string `json:"productId"`
		VariantSize string `json:"variantSize"`
		Quantity    int    `json:"quantity"`
	}{productID, variantSize, quantity}
	if err := r.client.do(ctx, http.MethodPatch, "/cart/update", body, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (r *RemoteCart) Remove(ctx context.Context, productID, variantSize string) (models.Cart, error) {
	var cart models.Cart
	body := cartMutation{ProductID: productID, VariantSize: variantSize}
	if err := r.client.do(ctx, http.MethodDelete, "/cart/remove", body, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}
