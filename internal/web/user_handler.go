package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/domain"
	"github.com/Lamecke/frontend-ecommerce/internal/store"
)

type UserHandler struct {
	auth   *store.Auth
	logger *zap.Logger
}

func NewUserHandler(auth *store.Auth, logger *zap.Logger) *UserHandler {
	return &UserHandler{auth: auth, logger: logger}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required", h.logger)
		return
	}

	user, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, user, h.logger)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout()
	respondJSON(w, http.StatusOK, map[string]string{"message": "signed out"}, h.logger)
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		respondError(w, http.StatusBadRequest, "name, email and password are required", h.logger)
		return
	}

	user, err := h.auth.Register(r.Context(), reg)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, user, h.logger)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.RefreshProfile(r.Context())
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, user, h.logger)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), update)
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, user, h.logger)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.LoadUsers(r.Context())
	if err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, users, h.logger)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.RemoveUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
		respondDomainError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "user removed"}, h.logger)
}
