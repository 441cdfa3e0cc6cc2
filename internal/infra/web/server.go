package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"shopify-qr-codes/internal/infra/logging"
	"shopify-qr-codes/internal/usecase"
)

// Server is the merchant-facing admin API the embedded app UI talks to.
// Every /api route runs behind session-token auth; the authenticated shop
// scopes all reads and writes.
type Server struct {
	qrUC       *usecase.QRCodeUseCase
	discountUC *usecase.DiscountUseCase
	auth       *SessionTokenVerifier
	log        *zerolog.Logger
	server     *http.Server
}

func NewServer(
	qrUC *usecase.QRCodeUseCase,
	discountUC *usecase.DiscountUseCase,
	auth *SessionTokenVerifier,
	logger *zerolog.Logger,
) *Server {
	return &Server{qrUC: qrUC, discountUC: discountUC, auth: auth, log: logger}
}

// Router builds the admin route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.trace)
		r.Use(s.auth.Middleware(s.log))

		r.Get("/qrcodes", qrCodesListHandler(s.qrUC))
		r.Post("/qrcodes", qrCodesCreateHandler(s.qrUC))
		r.Get("/qrcodes/{id}", qrCodeGetHandler(s.qrUC))

		r.Get("/discounts", discountsListHandler(s.discountUC))
		r.Post("/discounts", discountsCreateHandler(s.discountUC))
	})

	return r
}

// trace assigns every API request a trace id and logs it on the way in.
func (s *Server) trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithTraceID(r.Context(), uuid.NewString())
		logging.With(ctx, s.log).Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("admin request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) Start(port int) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("admin server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
