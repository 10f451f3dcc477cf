package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nevesmarcos42/pricewise/internal/domain/money"
	"github.com/nevesmarcos42/pricewise/internal/domain/product"
)

type productRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       money.Money `json:"price"`
	Stock       int         `json:"stock,omitempty"`
}

type productResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       money.Money `json:"price"`
	Stock       int         `json:"stock"`
}

func toProductResponse(p product.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	p, err := h.products.Create(r.Context(), product.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(*p))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "invalid product id")
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(*p))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	f, err := parseProductFilter(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	products, err := h.products.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func parseProductFilter(r *http.Request) (product.Filter, error) {
	q := r.URL.Query()
	f := product.Filter{Search: q.Get("search")}

	if v := q.Get("minPrice"); v != "" {
		m, err := money.Parse(v)
		if err != nil {
			return f, err
		}
		f.MinPrice = &m
	}
	if v := q.Get("maxPrice"); v != "" {
		m, err := money.Parse(v)
		if err != nil {
			return f, err
		}
		f.MaxPrice = &m
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return f, err
		}
		f.Page = page
	}
	if v := q.Get("perPage"); v != "" {
		perPage, err := strconv.Atoi(v)
		if err != nil {
			return f, err
		}
		f.PerPage = perPage
	}
	return f, nil
}
