// Package api exposes the pricing engine over HTTP. It is a thin adapter:
// request decoding, delegation to the domain services, and error mapping.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nevesmarcos42/pricewise/internal/domain/coupon"
	"github.com/nevesmarcos42/pricewise/internal/domain/order"
	"github.com/nevesmarcos42/pricewise/internal/domain/product"
)

// Handler bundles the HTTP handlers for all API routes.
type Handler struct {
	orders   *order.Service
	coupons  *coupon.Service
	products *product.Service
}

// NewHandler constructs a Handler with the required domain services.
func NewHandler(orders *order.Service, coupons *coupon.Service, products *product.Service) *Handler {
	return &Handler{
		orders:   orders,
		coupons:  coupons,
		products: products,
	}
}

// Routes returns the API route tree mounted under /api/v1.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/", h.listOrders)
	})
	r.Post("/cart", h.previewCart)

	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.createProduct)
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
	})

	r.Route("/coupons", func(r chi.Router) {
		r.Post("/", h.createCoupon)
		r.Get("/", h.listCoupons)
		r.Get("/{code}", h.getCoupon)
		r.Delete("/{code}", h.deleteCoupon)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
