package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/yagoutpay/gateway/internal/checkout"
	"github.com/yagoutpay/gateway/internal/transport/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, checkoutHandler *checkout.Handler, callbackHandler *checkout.CallbackHandler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if callbackHandler != nil {
			// The gateway posts the encrypted result sections here after the
			// customer finishes on the hosted page.
			r.Post("/payment/callback", callbackHandler.HandlePaymentCallback)
		}

		if checkoutHandler != nil {
			r.Post("/checkout", checkoutHandler.CreateCheckout)
			r.Post("/checkout/api", checkoutHandler.APIPayment)
			r.Post("/payment-links", checkoutHandler.CreatePaymentLink)
			r.Post("/payment-links/{kind}", checkoutHandler.CreatePaymentLink)
			r.Get("/orders/{orderNumber}", checkoutHandler.GetOrder)
		}
	})
}
