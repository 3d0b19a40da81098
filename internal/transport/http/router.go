// Package http is the storefront's JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/fjod/go_cart/storefront/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Carts          *cart.Manager
	Checkout       *checkout.Service
	Products       ProductLister
	Verifier       *identity.Verifier
	Metrics        *metrics.Manager
	Log            *zap.Logger
	RequestTimeout time.Duration
	SecureCookies  bool
}

func NewRouter(d Deps) http.Handler {
	log := logger.OrNop(d.Log).Named("http")
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}

	cartHandler := NewCartHandler(d.Carts, log)
	checkoutHandler := NewCheckoutHandler(d.Carts, d.Checkout, d.Metrics, d.RequestTimeout, log)
	productHandler := NewProductHandler(d.Products, d.RequestTimeout, log)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(RequestMetrics(d.Metrics))
	}
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(log, w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", productHandler.ListProducts)

		r.Group(func(r chi.Router) {
			r.Use(IdentityMiddleware(d.Verifier, d.SecureCookies, log))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/refresh", cartHandler.RefreshCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{item_id}", cartHandler.RemoveItem)
			})
			r.Post("/checkout", checkoutHandler.InitiateCheckout)
			r.Post("/checkout/complete", checkoutHandler.CompleteCheckout)
		})
	})

	return otelhttp.NewHandler(r, "storefront-http")
}
