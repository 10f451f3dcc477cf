package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/nevesmarcos42/pricewise/internal/domain/coupon"
	"github.com/nevesmarcos42/pricewise/internal/domain/order"
	"github.com/nevesmarcos42/pricewise/internal/domain/product"
)

// errorResponse is the JSON body for all error responses.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps a domain error to its HTTP status and writes the JSON body.
// The mapping follows the error taxonomy:
//
//	not found       -> 404 (missing product or coupon)
//	invalid input   -> 400 (empty order, bad quantity, bad coupon definition)
//	ineligible      -> 400 (deleted, expired, or not-yet-valid coupon)
//	conflict        -> 409 (code taken, one-shot coupon consumed)
//	unprocessable   -> 422 (final total below the minimum payable amount)
//
// Anything else is a storage or programming failure and becomes a 500 with a
// generic message; the original error is logged, never leaked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		pnfErr *order.ProductNotFoundError
		iqErr  *order.InvalidQuantityError
	)

	switch {
	case errors.As(err, &pnfErr),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, coupon.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code: http.StatusNotFound, Message: err.Error(),
		})

	case errors.As(err, &iqErr),
		errors.Is(err, order.ErrEmptyItems),
		errors.Is(err, coupon.ErrInvalidWindow),
		errors.Is(err, coupon.ErrInvalidKind),
		errors.Is(err, coupon.ErrCodeRequired),
		errors.Is(err, coupon.ErrCodeTooLong),
		errors.Is(err, product.ErrNameRequired),
		errors.Is(err, coupon.ErrDeleted),
		errors.Is(err, coupon.ErrNotInWindow),
		errors.Is(err, product.ErrInvalidPrice):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code: http.StatusBadRequest, Message: err.Error(),
		})

	case errors.Is(err, coupon.ErrCodeTaken),
		errors.Is(err, coupon.ErrAlreadyUsed),
		errors.Is(err, product.ErrNameTaken):
		writeJSON(w, http.StatusConflict, errorResponse{
			Code: http.StatusConflict, Message: err.Error(),
		})

	case errors.Is(err, order.ErrAmountTooSmall):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code: http.StatusUnprocessableEntity, Message: err.Error(),
		})

	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code: http.StatusInternalServerError, Message: "internal server error",
		})
	}
}

// writeBadRequest reports a malformed request body or parameter.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code: http.StatusBadRequest, Message: message,
	})
}
