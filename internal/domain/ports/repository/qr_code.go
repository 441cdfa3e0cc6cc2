package repository

import (
	"context"

	"shopify-qr-codes/internal/domain/model"
)

// QRCodeRepository is the persistence port for QR code records. Implementations
// must return domain.ErrNotFound when a lookup matches no row.
type QRCodeRepository interface {
	// Create inserts the record and fills in the store-assigned id.
	Create(ctx context.Context, qr *model.QRCode) error
	FindByID(ctx context.Context, id int64) (*model.QRCode, error)
	// ListByShop returns all records owned by shop, newest first.
	ListByShop(ctx context.Context, shop string) ([]*model.QRCode, error)
	// FindFirstByHandle returns the newest record for shop whose product
	// handle matches.
	FindFirstByHandle(ctx context.Context, shop, handle string) (*model.QRCode, error)
	// FindFirstByProductID returns the newest record for shop referencing the
	// given remote product id.
	FindFirstByProductID(ctx context.Context, shop, productID string) (*model.QRCode, error)
	// IncrementScans atomically bumps the scan counter by one and returns the
	// new value.
	IncrementScans(ctx context.Context, id int64) (int64, error)
}
