package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
	"github.com/Lamecke/frontend-ecommerce/internal/store"
)

type ProductHandler struct {
	products *store.Products
	logger   *zap.Logger
}

func NewProductHandler(products *store.Products, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.products.Search(r.Context(), r.URL.Query().Get("keyword"), r.URL.Query().Get("pageNumber"))
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, page, h.logger)
}

func (h *ProductHandler) Top(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Featured(r.Context())
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, products, h.logger)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, product, h.logger)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Create(r.Context())
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, product, h.logger)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update domain.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	product, err := h.products.Update(r.Context(), chi.URLParam(r, "productID"), update)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, product, h.logger)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "productID")); err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "product removed"}, h.logger)
}

func (h *ProductHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review domain.ReviewDraft
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		respondError(w, http.StatusBadRequest, "rating must be between 1 and 5", h.logger)
		return
	}

	if err := h.products.AddReview(r.Context(), chi.URLParam(r, "productID"), review); err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "review added"}, h.logger)
}
