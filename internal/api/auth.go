package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Rea1521/mahlangu-capital-bank/internal/gateway/restapi"
)

func restapiRegisterParams(req registerRequest) restapi.RegisterParams {
	return restapi.RegisterParams{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	customer, err := h.client.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Info("login failed", zap.String("email", req.Email), zap.Error(err))
		h.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ps, err := h.openSession(r.Context(), customer)
	if err != nil {
		h.writeBackendError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, loginResponse{Token: ps.ctx.Token, Customer: customer})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)
	h.dropSession(ps.ctx.Token)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid registration details")
		return
	}

	customer, err := h.client.Register(r.Context(), restapiRegisterParams(req))
	if err != nil {
		h.writeBackendError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, customer)
}
