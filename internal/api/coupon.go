package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/nevesmarcos42/pricewise/internal/domain/coupon"
)

type couponRequest struct {
	Code       string          `json:"code"`
	Kind       string          `json:"kind"`
	Value      decimal.Decimal `json:"value"`
	OneShot    bool            `json:"oneShot,omitempty"`
	ValidFrom  time.Time       `json:"validFrom"`
	ValidUntil time.Time       `json:"validUntil"`
}

type couponResponse struct {
	ID         int64           `json:"id"`
	Code       string          `json:"code"`
	Kind       string          `json:"kind"`
	Value      decimal.Decimal `json:"value"`
	OneShot    bool            `json:"oneShot"`
	ValidFrom  time.Time       `json:"validFrom"`
	ValidUntil time.Time       `json:"validUntil"`
	DeletedAt  *time.Time      `json:"deletedAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func toCouponResponse(c coupon.Coupon) couponResponse {
	return couponResponse{
		ID:         c.ID,
		Code:       c.Code,
		Kind:       string(c.Kind),
		Value:      c.Value,
		OneShot:    c.OneShot,
		ValidFrom:  c.ValidFrom,
		ValidUntil: c.ValidUntil,
		DeletedAt:  c.Deletion.Timestamp(),
		CreatedAt:  c.CreatedAt,
	}
}

func (h *Handler) createCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	c, err := h.coupons.Create(r.Context(), coupon.CreateRequest{
		Code:       req.Code,
		Kind:       coupon.Kind(req.Kind),
		Value:      req.Value,
		OneShot:    req.OneShot,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCouponResponse(*c))
}

func (h *Handler) listCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]couponResponse, len(coupons))
	for i, c := range coupons {
		out[i] = toCouponResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getCoupon(w http.ResponseWriter, r *http.Request) {
	c, err := h.coupons.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCouponResponse(*c))
}

func (h *Handler) deleteCoupon(w http.ResponseWriter, r *http.Request) {
	c, err := h.coupons.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.coupons.Delete(r.Context(), c.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
