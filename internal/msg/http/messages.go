package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/courier/internal/msg/service"
	"github.com/aussiebroadwan/courier/pkg/httpx"
	"github.com/aussiebroadwan/courier/pkg/msgapi"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

// MessagesHandler serves the single-message operations. RequireLogin runs
// before every route here, so an identity is always present; the
// per-message sender/recipient checks happen in the service against the
// fetched record.
type MessagesHandler struct {
	MessageService *service.MessageService
}

// HandleGet serves GET /messages/{id}. Only the sender or the recipient may
// read a message; anyone else is denied with the uniform 401.
func (h *MessagesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := messageID(r)
	if err != nil {
		msgapi.ErrNotFound.WriteError(w)
		return
	}

	identity, _ := httpx.IdentityFromContext(ctx)
	d, err := h.MessageService.Get(ctx, id, identity.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			msgapi.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrNotParticipant):
			msgapi.ErrForbidden.WriteError(w)
		default:
			slogx.FromContext(ctx).Error("get message failed", "id", id, "err", err)
			msgapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msgapi.MessageResponse{
		Message: msgapi.MessageDetail{
			ID:       d.ID,
			Body:     d.Body,
			SentAt:   d.SentAt,
			ReadAt:   d.ReadAt,
			FromUser: toProfile(d.From),
			ToUser:   toProfile(d.To),
		},
	})
}

// HandleSend serves POST /messages. The sender is the verified identity;
// a from_username in the body would simply be ignored.
func (h *MessagesHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req msgapi.SendMessageRequest
	if err := decodeRequest(r, &req); err != nil {
		msgapi.ErrInvalidRequest.WriteError(w)
		return
	}

	identity, _ := httpx.IdentityFromContext(ctx)
	m, err := h.MessageService.Send(ctx, identity.Username, req.ToUsername, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			msgapi.ErrNotFound.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("send message failed", "err", err)
		msgapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msgapi.CreatedMessageResponse{
		Message: msgapi.CreatedMessage{
			ID:           m.ID,
			FromUsername: m.FromUsername,
			ToUsername:   m.ToUsername,
			Body:         m.Body,
			SentAt:       m.SentAt,
		},
	})
}

// HandleMarkRead serves POST /messages/{id}/read. Recipient only; the
// sender marking their own message read is rejected. Re-marking an
// already-read message returns the unchanged record.
func (h *MessagesHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := messageID(r)
	if err != nil {
		msgapi.ErrNotFound.WriteError(w)
		return
	}

	identity, _ := httpx.IdentityFromContext(ctx)
	d, err := h.MessageService.MarkRead(ctx, id, identity.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			msgapi.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrNotRecipient):
			msgapi.ErrForbidden.WriteError(w)
		default:
			slogx.FromContext(ctx).Error("mark read failed", "id", id, "err", err)
			msgapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msgapi.ReadReceiptResponse{
		Message: msgapi.ReadReceipt{ID: d.ID, ReadAt: d.ReadAt},
	})
}

func messageID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
