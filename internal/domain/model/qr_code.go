package model

import (
	"fmt"
	"regexp"
	"time"

	"shopify-qr-codes/internal/domain"
)

// DestinationCheckout is the only destination kind the platform supports:
// a scan lands the customer on a pre-filled single-variant cart.
const DestinationCheckout = "checkout"

// variantGID matches the composite Shopify variant identifier and captures
// the embedded numeric id.
var variantGID = regexp.MustCompile(`^gid://shopify/ProductVariant/([0-9]+)$`)

// QRCode is a persisted QR code entry owned by a shop. It references the
// remote product/variant by their Shopify GIDs and carries a scan counter
// that only ever goes up.
type QRCode struct {
	ID               int64     `json:"id"`
	Shop             string    `json:"shop"`
	Title            string    `json:"title"`
	ProductID        string    `json:"productId"`
	ProductVariantID string    `json:"productVariantId"`
	Handle           string    `json:"handle"`
	Destination      string    `json:"destination"`
	Scans            int64     `json:"scans"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewQRCode validates and constructs an unsaved QR code. The id and scan
// counter are assigned by the store.
func NewQRCode(shop, title, productID, variantID, handle string) (*QRCode, error) {
	if shop == "" || title == "" || productID == "" || variantID == "" || handle == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &QRCode{
		Shop:             shop,
		Title:            title,
		ProductID:        productID,
		ProductVariantID: variantID,
		Handle:           handle,
		Destination:      DestinationCheckout,
		CreatedAt:        time.Now(),
	}, nil
}

// DestinationURL computes the customer-facing redirect target: a storefront
// cart URL that adds exactly one unit of the variant. A variant id that does
// not match the GID shape is a data-integrity failure, never a fallback URL.
func (q *QRCode) DestinationURL() (string, error) {
	m := variantGID.FindStringSubmatch(q.ProductVariantID)
	if m == nil {
		return "", fmt.Errorf("qr code %d: %w", q.ID, domain.ErrMalformedVariantID)
	}
	return fmt.Sprintf("https://%s/cart/%s:1", q.Shop, m[1]), nil
}

// EnrichedQRCode is the read-time join of a stored record with live product
// data and a freshly generated QR image. Product-derived fields are nil when
// the product was deleted upstream or the remote call failed.
type EnrichedQRCode struct {
	QRCode
	ImageData    string  `json:"qrCodeImageData"`
	ProductTitle *string `json:"productTitle,omitempty"`
	ProductImage *string `json:"productImage,omitempty"`
	VariantPrice *string `json:"variantPrice,omitempty"`
}
