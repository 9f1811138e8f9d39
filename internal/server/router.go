package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tiffinbox/internal/cart"
	"tiffinbox/internal/checkout"
	"tiffinbox/internal/discovery"
	"tiffinbox/internal/fulfillment"
)

func NewRouter(
	discoveryCtrl *discovery.Controller,
	checkoutCtrl *checkout.Controller,
	fulfillmentCtrl *fulfillment.Controller,
	cartCtrl *cart.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/sellers", discoveryCtrl.HandleSearchSellers)
	r.Get("/sellers/{id}", discoveryCtrl.HandleGetSeller)
	r.Get("/products", discoveryCtrl.HandleSearchProducts)
	r.Get("/products/{id}", discoveryCtrl.HandleGetProduct)

	r.Post("/create-order", checkoutCtrl.HandleCreateOrder)
	r.Post("/verify-payment", checkoutCtrl.HandleVerifyPayment)
	r.Post("/webhooks", checkoutCtrl.HandleWebhook)

	r.Get("/seller/orders", fulfillmentCtrl.HandleListSellerOrders)
	r.Patch("/seller/orders", fulfillmentCtrl.HandleUpdateStatus)
	r.Get("/orders", fulfillmentCtrl.HandleListUserOrders)

	r.Get("/cart", cartCtrl.HandleGetCart)
	r.Post("/cart/items", cartCtrl.HandleAddItem)
	r.Post("/cart/items/decrement", cartCtrl.HandleDecrementItem)
	r.Delete("/cart/items/{productId}", cartCtrl.HandleRemoveItem)

	return r
}
