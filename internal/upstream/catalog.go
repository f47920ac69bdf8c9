package upstream

import (
	"context"
	"net/http"

	"metalmarket-storefront/internal/domain"
)

// wireProduct is the catalog record as the upstream serves it: rupee prices
// and loosely typed ids.
type wireProduct struct {
	ID          wireID  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (w wireProduct) toDomain() domain.Product {
	return domain.Product{
		ID:          string(w.ID),
		Name:        w.Name,
		Category:    w.Category,
		Description: w.Description,
		ImageURL:    w.ImageURL,
		PricePaise:  domain.PaiseFromRupees(w.Price),
		Stock:       w.Stock,
	}
}

// ProductInput carries admin product writes back in the upstream's rupee
// representation.
type ProductInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (c *Client) ListProducts(ctx context.Context, token string) ([]domain.Product, error) {
	var wire []wireProduct
	if err := c.do(ctx, http.MethodGet, "/products", token, nil, &wire); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(wire))
	for _, w := range wire {
		products = append(products, w.toDomain())
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, token, id string) (domain.Product, error) {
	var wire wireProduct
	if err := c.do(ctx, http.MethodGet, "/products/"+id, token, nil, &wire); err != nil {
		return domain.Product{}, err
	}
	return wire.toDomain(), nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) error {
	return c.do(ctx, http.MethodPost, "/products", token, in, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, in ProductInput) error {
	return c.do(ctx, http.MethodPut, "/products/"+id, token, in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, token, nil, nil)
}
