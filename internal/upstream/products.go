package upstream

import (
	"context"
	"net/http"
	"net/url"

	"chaikada_store_front/internal/models"
)

// ProductClient is a read-only wrapper over the remote catalog, used by the
// browse proxy. Catalog writes are an admin concern and stay upstream.
type ProductClient struct {
	client *Client
}

func NewProductClient(client *Client) *ProductClient {
	return &ProductClient{client: client}
}

func (p *ProductClient) List(ctx context.Context, category string) ([]models.Product, error) {
	path := "/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var products []models.Product
	if err := p.client.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (p *ProductClient) Get(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	if err := p.client.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}
