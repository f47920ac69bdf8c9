package seed

import (
	"context"
	"fmt"

	"metalmarket-storefront/internal/domain"
	"metalmarket-storefront/internal/upstream"
)

// CatalogAPI is the slice of the upstream client the seeder uses.
type CatalogAPI interface {
	ListProducts(ctx context.Context, token string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, token string, in upstream.ProductInput) error
}

var demoProducts = []upstream.ProductInput{
	{
		Name:        "Copper Sheet 2mm",
		Category:    "Copper",
		Description: "Cold rolled copper sheet, 300x300mm",
		Price:       1450.50,
		Stock:       25,
	},
	{
		Name:        "Zinc Ingot 1kg",
		Category:    "Zinc",
		Description: "99.95% pure zinc casting ingot",
		Price:       399,
		Stock:       100,
	},
	{
		Name:        "Lead Flashing Roll",
		Category:    "Lead",
		Description: "Code 4 roofing lead, 3m roll",
		Price:       899.99,
		Stock:       12,
	},
	{
		Name:        "Brass Rod 10mm",
		Category:    "Brass",
		Description: "Free-cutting brass round bar, 1m length",
		Price:       275,
		Stock:       40,
	},
}

// Apply creates demo catalog entries for manual testing. Products already
// present upstream, matched by name, are skipped so reruns are harmless.
func Apply(ctx context.Context, api CatalogAPI, token string) (int, error) {
	existing, err := api.ListProducts(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, p := range existing {
		byName[p.Name] = true
	}

	var created int
	for _, p := range demoProducts {
		if byName[p.Name] {
			continue
		}
		if err := api.CreateProduct(ctx, token, p); err != nil {
			return created, fmt.Errorf("create product %q: %w", p.Name, err)
		}
		created++
	}
	return created, nil
}
