package adapter

import "context"

// ProductData is what the upstream commerce platform knows about a product
// variant. Any field may be nil: Shopify returns nulls for deleted images,
// and a deleted product yields no data at all.
type ProductData struct {
	Title    *string
	ImageURL *string
	Price    *string
}

// ProductDataAdapter is the port for live product lookups against the
// upstream platform. FetchProduct returns (nil, nil) when the product no
// longer exists upstream; callers must treat that as "fields absent", not
// as an error.
type ProductDataAdapter interface {
	FetchProduct(ctx context.Context, shop, productID, variantID string) (*ProductData, error)
}
