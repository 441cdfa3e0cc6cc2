package shopify

import (
	"context"

	"shopify-qr-codes/internal/domain/ports/adapter"
)

var _ adapter.ProductDataAdapter = (*NoopProductAdapter)(nil)

// NoopProductAdapter implements adapter.ProductDataAdapter for local/dev
// runs without Shopify credentials. It returns fixed product data for every
// lookup.
type NoopProductAdapter struct{}

func NewNoopProductAdapter() *NoopProductAdapter {
	return &NoopProductAdapter{}
}

func (a *NoopProductAdapter) FetchProduct(ctx context.Context, shop, productID, variantID string) (*adapter.ProductData, error) {
	title := "Dev product"
	price := "10.00"
	return &adapter.ProductData{Title: &title, Price: &price}, nil
}
