package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/courier/internal/msg/domain"
	"github.com/aussiebroadwan/courier/internal/msg/service"
	"github.com/aussiebroadwan/courier/pkg/httpx"
	"github.com/aussiebroadwan/courier/pkg/msgapi"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

// UsersHandler serves user profiles and per-user message history.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList serves GET /users: public profiles of everyone, for any
// signed-in user.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.UserService.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("list users failed", "err", err)
		msgapi.ErrServerError.WriteError(w)
		return
	}

	out := make([]msgapi.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, toProfile(u))
	}
	httpx.WriteJSON(w, http.StatusOK, msgapi.UsersResponse{Users: out})
}

// HandleGet serves GET /users/{username}.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := h.UserService.Get(ctx, r.PathValue("username"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			msgapi.ErrNotFound.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("get user failed", "err", err)
		msgapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msgapi.UserResponse{
		User: msgapi.UserDetail{
			Username:    u.Username,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Phone:       u.Phone,
			JoinAt:      u.JoinAt,
			LastLoginAt: u.LastLoginAt,
		},
	})
}

// HandleMessagesTo serves GET /users/{username}/to: the inbox. RequireUser
// has already pinned the identity to the path username.
func (h *UsersHandler) HandleMessagesTo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msgs, err := h.UserService.MessagesTo(ctx, r.PathValue("username"))
	if err != nil {
		slogx.FromContext(ctx).Error("inbox failed", "err", err)
		msgapi.ErrServerError.WriteError(w)
		return
	}

	out := make([]msgapi.ReceivedMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, msgapi.ReceivedMessage{
			ID:       m.ID,
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
			FromUser: toProfile(m.From),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, msgapi.ReceivedMessagesResponse{Messages: out})
}

// HandleMessagesFrom serves GET /users/{username}/from: the outbox.
func (h *UsersHandler) HandleMessagesFrom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msgs, err := h.UserService.MessagesFrom(ctx, r.PathValue("username"))
	if err != nil {
		slogx.FromContext(ctx).Error("outbox failed", "err", err)
		msgapi.ErrServerError.WriteError(w)
		return
	}

	out := make([]msgapi.SentMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, msgapi.SentMessage{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
			ToUser: toProfile(m.To),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, msgapi.SentMessagesResponse{Messages: out})
}

func toProfile(p domain.Profile) msgapi.Profile {
	return msgapi.Profile{
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
	}
}
