package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shopify-qr-codes/internal/domain/model"
	"shopify-qr-codes/internal/domain/ports/repository"
)

// DiscountUseCase manages product discounts. Same shop scoping as QR codes,
// otherwise unrelated to them.
type DiscountUseCase struct {
	repo repository.DiscountRepository
	log  *zerolog.Logger
}

// NewDiscountUseCase constructs usecase.
func NewDiscountUseCase(repo repository.DiscountRepository, logger *zerolog.Logger) *DiscountUseCase {
	return &DiscountUseCase{repo: repo, log: logger}
}

// Create validates and persists a discount. The percentage arrives as text
// and must parse to a real number.
func (uc *DiscountUseCase) Create(ctx context.Context, shop, title, percentage, productID string) (*model.ProductDiscount, error) {
	d, err := model.NewProductDiscount(uuid.NewString(), shop, title, percentage, productID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", d.ID).Str("shop", shop).Float64("percentage", d.Percentage).Msg("discount created")
	return d, nil
}

// Get retrieves a discount by id.
func (uc *DiscountUseCase) Get(ctx context.Context, id string) (*model.ProductDiscount, error) {
	return uc.repo.FindByID(ctx, id)
}

// List returns all of shop's discounts, newest first.
func (uc *DiscountUseCase) List(ctx context.Context, shop string) ([]*model.ProductDiscount, error) {
	return uc.repo.ListByShop(ctx, shop)
}
