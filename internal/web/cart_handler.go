package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
	"github.com/Lamecke/frontend-ecommerce/internal/store"
)

type CartHandler struct {
	cart   *store.Cart
	logger *zap.Logger
}

func NewCartHandler(cart *store.Cart, logger *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

type AddItemRequestDTO struct {
	ProductID    string          `json:"product"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int             `json:"countInStock"`
	Qty          int             `json:"qty"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cart.View(), h.logger)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	err := h.cart.AddItem(r.Context(), domain.CartItem{
		ProductID:    req.ProductID,
		Name:         req.Name,
		Image:        req.Image,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		Qty:          req.Qty,
	})
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, h.cart.View(), h.logger)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "product id is required", h.logger)
		return
	}

	if err := h.cart.RemoveItem(r.Context(), productID); err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, h.cart.View(), h.logger)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, h.cart.View(), h.logger)
}
