package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/push"
	"github.com/rowanfern/hearth/internal/store"
)

type PushHandler struct {
	store   *store.Store
	service *push.Service
	logger  *slog.Logger
}

func NewPushHandler(st *store.Store, svc *push.Service, logger *slog.Logger) *PushHandler {
	return &PushHandler{store: st, service: svc, logger: logger}
}

type subscribeRequest struct {
	ProfileID string `json:"profile_id"`
	Endpoint  string `json:"endpoint"`
	P256dh    string `json:"p256dh"`
	Auth      string `json:"auth"`
}

// Subscribe handles POST /api/push/subscribe. A blank profile_id makes a
// device-wide subscription that receives every profile's reminders.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Endpoint == "" || req.P256dh == "" || req.Auth == "" {
		writeError(w, http.StatusBadRequest, "endpoint, p256dh, and auth are required")
		return
	}
	if req.ProfileID != "" && !h.store.HasProfile(req.ProfileID) {
		writeError(w, http.StatusBadRequest, "unknown profile: "+req.ProfileID)
		return
	}

	sub := h.store.AddSubscription(model.PushSubscription{
		ProfileID: req.ProfileID,
		Endpoint:  req.Endpoint,
		P256dhKey: req.P256dh,
		AuthKey:   req.Auth,
	})

	writeJSON(w, http.StatusCreated, sub)
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

// Unsubscribe handles POST /api/push/unsubscribe. Browsers identify a
// subscription by its endpoint URL, not by our ID.
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Endpoint == "" {
		writeError(w, http.StatusBadRequest, "endpoint is required")
		return
	}

	if err := h.store.DeleteSubscriptionByEndpoint(req.Endpoint); err != nil {
		writeStoreError(w, err, "subscription not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VAPIDKey handles GET /api/push/vapid-key: the public key the browser
// needs to create a subscription.
func (h *PushHandler) VAPIDKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"key": h.service.VAPIDPublicKey()})
}
