package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/store"
)

type OrderHandler struct {
	orders *store.Orders
	auth   *store.Auth
	logger *zap.Logger
}

func NewOrderHandler(orders *store.Orders, auth *store.Auth, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, auth: auth, logger: logger}
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, order, h.logger)
}

// Pay runs the simulated payment for the order, paying as the session user.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	user, ok := h.auth.Current()
	if !ok {
		respondError(w, http.StatusUnauthorized, "please sign in first", h.logger)
		return
	}

	order, err := h.orders.SimulatePayment(r.Context(), chi.URLParam(r, "orderID"), user.Email)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, order, h.logger)
}

func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.MarkDelivered(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, order, h.logger)
}

func (h *OrderHandler) Mine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.LoadMine(r.Context())
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, orders, h.logger)
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.LoadAll(r.Context())
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, orders, h.logger)
}
