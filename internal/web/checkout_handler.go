package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
	"github.com/Lamecke/frontend-ecommerce/internal/store"
)

// CheckoutHandler walks the cart through shipping, payment, review and order
// placement.
type CheckoutHandler struct {
	cart   *store.Cart
	logger *zap.Logger
}

func NewCheckoutHandler(cart *store.Cart, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{cart: cart, logger: logger}
}

func (h *CheckoutHandler) SetShipping(w http.ResponseWriter, r *http.Request) {
	var addr domain.ShippingAddress
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	if err := h.cart.SetShippingAddress(r.Context(), addr); err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, h.cart.View(), h.logger)
}

type SetPaymentRequestDTO struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
}

func (h *CheckoutHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var req SetPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	if err := h.cart.SetPaymentMethod(r.Context(), req.PaymentMethod); err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, h.cart.View(), h.logger)
}

// Review renders the order snapshot as it would be submitted.
func (h *CheckoutHandler) Review(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cart.View(), h.logger)
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.cart.Submit(r.Context())
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}

	respondJSON(w, http.StatusCreated, order, h.logger)
}
