package repository

import (
	"context"

	"shopify-qr-codes/internal/domain/model"
)

type DiscountRepository interface {
	Save(ctx context.Context, d *model.ProductDiscount) error
	FindByID(ctx context.Context, id string) (*model.ProductDiscount, error)
	// ListByShop returns all discounts for shop, newest first.
	ListByShop(ctx context.Context, shop string) ([]*model.ProductDiscount, error)
}
