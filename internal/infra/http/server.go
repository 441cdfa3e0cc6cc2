package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"shopify-qr-codes/internal/domain"
	"shopify-qr-codes/internal/infra/metrics"
	"shopify-qr-codes/internal/usecase"
)

// scanTimeout bounds the store round trips behind one scan so a hung
// database cannot park customer requests forever.
const scanTimeout = 10 * time.Second

// Server is the customer-facing surface: the scan redirect and the QR image
// endpoints. No auth; these URLs are printed on physical labels.
type Server struct {
	qrUC   *usecase.QRCodeUseCase
	log    *zerolog.Logger
	server *http.Server
}

func NewServer(qrUC *usecase.QRCodeUseCase, logger *zerolog.Logger) *Server {
	return &Server{qrUC: qrUC, log: logger}
}

// Router builds the public route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/qrcodes/{id}/scan", s.handleScan)
	r.Get("/qrcodes/{id}/image", s.handleImage)
	r.Get("/product/qrcode.png", s.handleProductImage)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return r
}

func (s *Server) Start(port int) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("public server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// handleScan resolves the record's destination, records the scan and
// redirects the customer to the pre-filled cart.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), scanTimeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		metrics.IncScan("bad_request")
		http.Error(w, "invalid qr code id", http.StatusBadRequest)
		return
	}

	dest, err := s.qrUC.Scan(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		metrics.IncScan("not_found")
		http.Error(w, "qr code not found", http.StatusNotFound)
		return
	case err != nil:
		metrics.IncScan("error")
		s.log.Error().Err(err).Int64("id", id).Msg("scan failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	metrics.IncScan("redirected")
	http.Redirect(w, r, dest, http.StatusFound)
}

// handleImage serves the raw PNG for one record id.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), scanTimeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid qr code id", http.StatusBadRequest)
		return
	}

	png, err := s.qrUC.PNG(ctx, id)
	if err := s.writePNG(w, png, err, strconv.FormatInt(id, 10)); err != nil {
		return
	}
}

// handleProductImage serves the QR image of the newest record for a
// shop + product combination. The product may be named by handle or by its
// remote product id.
func (s *Server) handleProductImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), scanTimeout)
	defer cancel()

	q := r.URL.Query()
	shop := q.Get("shop")
	handle := q.Get("handle")
	productID := q.Get("product_id")
	if shop == "" || (handle == "" && productID == "") {
		http.Error(w, "shop and handle or product_id are required", http.StatusBadRequest)
		return
	}

	var (
		png []byte
		err error
	)
	if handle != "" {
		png, err = s.qrUC.ProductPNGByHandle(ctx, shop, handle)
	} else {
		png, err = s.qrUC.ProductPNGByProductID(ctx, shop, productID)
	}
	_ = s.writePNG(w, png, err, shop)
}

func (s *Server) writePNG(w http.ResponseWriter, png []byte, err error, ref string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "qr code not found", http.StatusNotFound)
		return err
	case err != nil:
		s.log.Error().Err(err).Str("ref", ref).Msg("qr image failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
	return nil
}
