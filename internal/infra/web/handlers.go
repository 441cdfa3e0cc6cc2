package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"shopify-qr-codes/internal/domain"
	"shopify-qr-codes/internal/domain/model"
	"shopify-qr-codes/internal/usecase"
)

// The expected JSON request body for creating a QR code.
type qrCodeCreateRequest struct {
	Title            string `json:"title"`
	ProductID        string `json:"productId"`
	ProductVariantID string `json:"productVariantId"`
	Handle           string `json:"handle"`
}

type discountCreateRequest struct {
	Title      string `json:"title"`
	Percentage string `json:"percentage"`
	ProductID  string `json:"productId"`
}

func qrCodesCreateHandler(qrUC *usecase.QRCodeUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		shop, ok := ShopFromContext(ctx)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req qrCodeCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		qr, err := qrUC.Create(ctx, shop, req.Title, req.ProductID, req.ProductVariantID, req.Handle)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to create qr code", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(qr)
	}
}

func qrCodesListHandler(qrUC *usecase.QRCodeUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		shop, ok := ShopFromContext(ctx)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		codes, err := qrUC.List(ctx, shop)
		if err != nil {
			http.Error(w, "Failed to list qr codes", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(struct {
			Data []*model.EnrichedQRCode `json:"data"`
		}{Data: codes})
	}
}

func qrCodeGetHandler(qrUC *usecase.QRCodeUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		shop, ok := ShopFromContext(ctx)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid qr code id", http.StatusBadRequest)
			return
		}

		enriched, err := qrUC.Get(ctx, shop, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to get qr code", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(enriched)
	}
}

func discountsCreateHandler(discountUC *usecase.DiscountUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		shop, ok := ShopFromContext(ctx)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req discountCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		d, err := discountUC.Create(ctx, shop, req.Title, req.Percentage, req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, "Invalid discount", http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to create discount", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(d)
	}
}

func discountsListHandler(discountUC *usecase.DiscountUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		shop, ok := ShopFromContext(ctx)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		discounts, err := discountUC.List(ctx, shop)
		if err != nil {
			http.Error(w, "Failed to list discounts", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(struct {
			Data []*model.ProductDiscount `json:"data"`
		}{Data: discounts})
	}
}
