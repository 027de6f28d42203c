package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/courier/internal/msg/service"
	"github.com/aussiebroadwan/courier/pkg/httpx"
	"github.com/aussiebroadwan/courier/pkg/msgapi"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

// AuthHandler serves the anonymous entry points: registration and login.
type AuthHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// HandleLogin serves POST /login. The failure body is identical for an
// unknown username and a wrong password.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req msgapi.LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		msgapi.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.UserService.Authenticate(ctx, req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			msgapi.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		msgapi.ErrServerError.WriteError(w)
		return
	}

	token, err := h.TokenService.Issue(req.Username)
	if err != nil {
		log.Error("token issue failed", "err", err)
		msgapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msgapi.TokenResponse{Token: token})
}

// HandleRegister serves POST /register: creates the user and signs them in,
// responding with a token bound to the new username.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req msgapi.RegisterRequest
	if err := decodeRequest(r, &req); err != nil {
		msgapi.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := h.UserService.Register(ctx, service.RegisterParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			msgapi.ErrConflict.WriteError(w)
			return
		}
		log.Error("register failed", "err", err)
		msgapi.ErrServerError.WriteError(w)
		return
	}

	token, err := h.TokenService.Issue(u.Username)
	if err != nil {
		log.Error("token issue failed", "err", err)
		msgapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msgapi.TokenResponse{Token: token})
}
