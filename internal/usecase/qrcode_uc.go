package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"shopify-qr-codes/internal/domain"
	"shopify-qr-codes/internal/domain/model"
	"shopify-qr-codes/internal/domain/ports/adapter"
	"shopify-qr-codes/internal/domain/ports/repository"
	"shopify-qr-codes/internal/infra/logging"
)

// QRCodeUseCase implements QR code business operations: creation, read-time
// enrichment with live product data, destination resolution and scan
// recording.
type QRCodeUseCase struct {
	repo     repository.QRCodeRepository
	products adapter.ProductDataAdapter
	imager   adapter.QRImageAdapter
	log      *zerolog.Logger
}

// NewQRCodeUseCase constructs usecase.
func NewQRCodeUseCase(
	repo repository.QRCodeRepository,
	products adapter.ProductDataAdapter,
	imager adapter.QRImageAdapter,
	logger *zerolog.Logger,
) *QRCodeUseCase {
	return &QRCodeUseCase{repo: repo, products: products, imager: imager, log: logger}
}

// Create validates and persists a new QR code for shop. The store assigns
// the id; the scan counter starts at zero.
func (uc *QRCodeUseCase) Create(ctx context.Context, shop, title, productID, variantID, handle string) (*model.QRCode, error) {
	qr, err := model.NewQRCode(shop, title, productID, variantID, handle)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, qr); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("id", qr.ID).Str("shop", shop).Str("product_id", productID).Msg("qr code created")
	return qr, nil
}

// Get returns one enriched record. Returns domain.ErrNotFound when the id
// does not exist or belongs to a different shop.
func (uc *QRCodeUseCase) Get(ctx context.Context, shop string, id int64) (*model.EnrichedQRCode, error) {
	qr, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if qr.Shop != shop {
		// Another shop's record is indistinguishable from a missing one.
		return nil, domain.ErrNotFound
	}
	return uc.enrich(ctx, qr), nil
}

// List returns all of shop's records, newest first, each enriched
// independently. A shop with no records yields an empty slice.
func (uc *QRCodeUseCase) List(ctx context.Context, shop string) ([]*model.EnrichedQRCode, error) {
	defer logging.TraceDuration(uc.log, "QRCodeUseCase.List")()

	records, err := uc.repo.ListByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	out := make([]*model.EnrichedQRCode, 0, len(records))
	for _, qr := range records {
		out = append(out, uc.enrich(ctx, qr))
	}
	return out, nil
}

// Scan records one scan of the code and returns the destination URL the
// customer must be redirected to. The counter is incremented before the
// redirect is issued; a scan that cannot be recorded fails rather than
// silently losing counts. A malformed stored variant id aborts the scan:
// it is a data-integrity failure, never a fallback URL.
func (uc *QRCodeUseCase) Scan(ctx context.Context, id int64) (string, error) {
	qr, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	dest, err := qr.DestinationURL()
	if err != nil {
		uc.log.Error().Int64("id", id).Str("variant_id", qr.ProductVariantID).Msg("stored variant id is malformed")
		return "", err
	}
	scans, err := uc.repo.IncrementScans(ctx, id)
	if err != nil {
		return "", fmt.Errorf("record scan of %d: %w", id, err)
	}
	uc.log.Debug().Int64("id", id).Int64("scans", scans).Msg("scan recorded")
	return dest, nil
}

// PNG returns the raw QR image for shop's record id.
func (uc *QRCodeUseCase) PNG(ctx context.Context, id int64) ([]byte, error) {
	qr, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.imager.PNG(qr.ID)
}

// ProductPNGByHandle returns the QR image of the newest record for
// shop + product handle.
func (uc *QRCodeUseCase) ProductPNGByHandle(ctx context.Context, shop, handle string) ([]byte, error) {
	qr, err := uc.repo.FindFirstByHandle(ctx, shop, handle)
	if err != nil {
		return nil, err
	}
	return uc.imager.PNG(qr.ID)
}

// ProductPNGByProductID returns the QR image of the newest record for
// shop + remote product id.
func (uc *QRCodeUseCase) ProductPNGByProductID(ctx context.Context, shop, productID string) ([]byte, error) {
	qr, err := uc.repo.FindFirstByProductID(ctx, shop, productID)
	if err != nil {
		return nil, err
	}
	return uc.imager.PNG(qr.ID)
}

// enrich joins one record with live product data and a freshly generated QR
// image. The two sub-operations have no ordering dependency and run
// concurrently. The result always carries the record's own fields verbatim;
// product-derived fields stay absent when the product is gone upstream or
// the remote call fails.
func (uc *QRCodeUseCase) enrich(ctx context.Context, qr *model.QRCode) *model.EnrichedQRCode {
	out := &model.EnrichedQRCode{QRCode: *qr}

	type remote struct {
		data *adapter.ProductData
		err  error
	}
	ch := make(chan remote, 1)
	go func() {
		data, err := uc.products.FetchProduct(ctx, qr.Shop, qr.ProductID, qr.ProductVariantID)
		ch <- remote{data, err}
	}()

	img, imgErr := uc.imager.DataURL(qr.ID)
	res := <-ch

	if imgErr != nil {
		uc.log.Warn().Err(imgErr).Int64("id", qr.ID).Msg("qr image generation failed")
	} else {
		out.ImageData = img
	}

	switch {
	case res.err != nil:
		uc.log.Warn().Err(res.err).Int64("id", qr.ID).Msg("product lookup failed; serving record without product data")
	case res.data != nil:
		out.ProductTitle = res.data.Title
		out.ProductImage = res.data.ImageURL
		out.VariantPrice = res.data.Price
	}
	return out
}
