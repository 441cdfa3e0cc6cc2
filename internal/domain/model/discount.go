package model

import (
	"math"
	"strconv"
	"time"

	"shopify-qr-codes/internal/domain"
)

// ProductDiscount is a percentage discount a merchant attaches to a product.
// It shares a shop scope with QR codes but has no other relationship to them.
type ProductDiscount struct {
	ID         string    `json:"id"`
	Shop       string    `json:"shop"`
	Title      string    `json:"title"`
	Percentage float64   `json:"percentage"`
	ProductID  string    `json:"productId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewProductDiscount validates and constructs a discount. The percentage
// arrives as form/JSON text and must parse to a real number.
func NewProductDiscount(id, shop, title, percentage, productID string) (*ProductDiscount, error) {
	if id == "" || shop == "" || title == "" || productID == "" {
		return nil, domain.ErrInvalidArgument
	}
	pct, err := strconv.ParseFloat(percentage, 64)
	if err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return nil, domain.ErrInvalidArgument
	}
	return &ProductDiscount{
		ID:         id,
		Shop:       shop,
		Title:      title,
		Percentage: pct,
		ProductID:  productID,
		CreatedAt:  time.Now(),
	}, nil
}
