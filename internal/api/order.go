package api

import (
	"net/http"
	"time"

	"github.com/nevesmarcos42/pricewise/internal/domain/money"
	"github.com/nevesmarcos42/pricewise/internal/domain/order"
)

// orderItemRequest is a quantity-aware line item in an order request.
type orderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// orderRequest accepts both conventions: quantity-aware "items" and the
// legacy "productIds" list where every listed product counts once.
type orderRequest struct {
	Items      []orderItemRequest `json:"items,omitempty"`
	ProductIDs []int64            `json:"productIds,omitempty"`
	CouponCode string             `json:"couponCode,omitempty"`
}

func (req orderRequest) toItems() []order.ItemRequest {
	if len(req.Items) > 0 {
		items := make([]order.ItemRequest, len(req.Items))
		for i, it := range req.Items {
			items[i] = order.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity}
		}
		return items
	}
	return order.ItemsFromProductIDs(req.ProductIDs)
}

type orderSummaryResponse struct {
	OrderID         string      `json:"orderId"`
	ProductNames    []string    `json:"productNames"`
	TotalOriginal   money.Money `json:"totalOriginal"`
	DiscountApplied money.Money `json:"discountApplied"`
	TotalFinal      money.Money `json:"totalFinal"`
	CouponCode      *string     `json:"couponCode"`
	CreatedAt       time.Time   `json:"createdAt"`
}

func toOrderSummaryResponse(s order.Summary) orderSummaryResponse {
	resp := orderSummaryResponse{
		OrderID:         s.OrderID,
		ProductNames:    s.ProductNames,
		TotalOriginal:   s.TotalOriginal,
		DiscountApplied: s.DiscountApplied,
		TotalFinal:      s.TotalFinal,
		CreatedAt:       s.CreatedAt,
	}
	if s.CouponCode != "" {
		code := s.CouponCode
		resp.CouponCode = &code
	}
	return resp
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	summary, err := h.orders.CreateOrder(r.Context(), order.CreateRequest{
		Items:      req.toItems(),
		CouponCode: req.CouponCode,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderSummaryResponse(*summary))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]orderSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = toOrderSummaryResponse(s)
	}
	writeJSON(w, http.StatusOK, out)
}

// cartRequest is a quantity-less cart preview request.
type cartRequest struct {
	ProductIDs []int64 `json:"productIds"`
	CouponCode string  `json:"couponCode,omitempty"`
}

type cartSummaryResponse struct {
	ProductNames      []string    `json:"productNames"`
	TotalOriginal     money.Money `json:"totalOriginal"`
	DiscountAmount    money.Money `json:"discountAmount"`
	TotalWithDiscount money.Money `json:"totalWithDiscount"`
	AppliedCoupon     *string     `json:"appliedCoupon"`
}

func (h *Handler) previewCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	cart, err := h.orders.PreviewCart(r.Context(), req.ProductIDs, req.CouponCode)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := cartSummaryResponse{
		ProductNames:      cart.ProductNames,
		TotalOriginal:     cart.TotalOriginal,
		DiscountAmount:    cart.DiscountAmount,
		TotalWithDiscount: cart.TotalWithDiscount,
	}
	if cart.AppliedCoupon != "" {
		code := cart.AppliedCoupon
		resp.AppliedCoupon = &code
	}
	writeJSON(w, http.StatusOK, resp)
}
