package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/store"
	"github.com/rowanfern/hearth/internal/websocket"
)

type RewardHandler struct {
	store  *store.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewRewardHandler(st *store.Store, hub *websocket.Hub, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{store: st, hub: hub, logger: logger}
}

func (h *RewardHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type rewardRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	StarCost    *int      `json:"star_cost"`
	ProfileIDs  *[]string `json:"profile_ids"`
	Active      *bool     `json:"active"`
}

func (h *RewardHandler) validate(req rewardRequest) string {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return "title cannot be empty"
	}
	if req.StarCost != nil && *req.StarCost < 0 {
		return "star_cost cannot be negative"
	}
	if req.ProfileIDs != nil {
		for _, pid := range *req.ProfileIDs {
			if !h.store.HasProfile(pid) {
				return "unknown profile: " + pid
			}
		}
	}
	return ""
}

func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if msg := h.validate(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	rw := model.Reward{Title: strings.TrimSpace(*req.Title), Active: true}
	if req.Description != nil {
		rw.Description = *req.Description
	}
	if req.StarCost != nil {
		rw.StarCost = *req.StarCost
	}
	if req.ProfileIDs != nil {
		rw.ProfileIDs = *req.ProfileIDs
	}
	if req.Active != nil {
		rw.Active = *req.Active
	}

	rw = h.store.AddReward(rw)
	h.broadcast(websocket.NewMessage("reward", "created", rw.ID, nil))
	writeJSON(w, http.StatusCreated, rw)
}

func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Rewards())
}

func (h *RewardHandler) Get(w http.ResponseWriter, r *http.Request) {
	rw, err := h.store.GetReward(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "reward not found")
		return
	}
	writeJSON(w, http.StatusOK, rw)
}

func (h *RewardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := h.validate(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	patch := store.RewardPatch{
		Title:       req.Title,
		Description: req.Description,
		StarCost:    req.StarCost,
		ProfileIDs:  req.ProfileIDs,
		Active:      req.Active,
	}

	rw, err := h.store.UpdateReward(r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, err, "reward not found")
		return
	}

	h.broadcast(websocket.NewMessage("reward", "updated", rw.ID, nil))
	writeJSON(w, http.StatusOK, rw)
}

func (h *RewardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteReward(id); err != nil {
		writeStoreError(w, err, "reward not found")
		return
	}

	h.broadcast(websocket.NewMessage("reward", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type redeemRequest struct {
	ProfileID string `json:"profile_id"`
}

// Redeem handles POST /api/rewards/{id}/redeem. The redemption records the
// reward's current star cost; later price changes do not affect it.
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ProfileID == "" {
		writeError(w, http.StatusBadRequest, "profile_id is required")
		return
	}
	if !h.store.HasProfile(req.ProfileID) {
		writeError(w, http.StatusBadRequest, "unknown profile: "+req.ProfileID)
		return
	}

	red, err := h.store.RedeemReward(r.PathValue("id"), req.ProfileID)
	if err != nil {
		writeStoreError(w, err, "reward not found")
		return
	}

	h.broadcast(websocket.NewMessage("redemption", "created", red.ID, map[string]any{"profile_id": red.ProfileID}))
	writeJSON(w, http.StatusCreated, red)
}

type redemptionStatusRequest struct {
	Status string `json:"status"`
}

var validRedemptionStatuses = map[model.RedemptionStatus]bool{
	model.RedemptionPending:   true,
	model.RedemptionApproved:  true,
	model.RedemptionCompleted: true,
	model.RedemptionCancelled: true,
}

// UpdateRedemption handles PUT /api/redemptions/{id}. Cancelling a
// redemption returns its stars to the profile's balance.
func (h *RewardHandler) UpdateRedemption(w http.ResponseWriter, r *http.Request) {
	var req redemptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	status := model.RedemptionStatus(req.Status)
	if !validRedemptionStatuses[status] {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	red, err := h.store.UpdateRedemptionStatus(r.PathValue("id"), status)
	if err != nil {
		writeStoreError(w, err, "redemption not found")
		return
	}

	h.broadcast(websocket.NewMessage("redemption", "updated", red.ID, map[string]any{"status": string(status)}))
	writeJSON(w, http.StatusOK, red)
}

// Redemptions handles GET /api/redemptions?profile_id=. Without a
// profile_id it returns everything.
func (h *RewardHandler) Redemptions(w http.ResponseWriter, r *http.Request) {
	redemptions := h.store.Redemptions(r.URL.Query().Get("profile_id"))
	if redemptions == nil {
		redemptions = []model.RewardRedemption{}
	}
	writeJSON(w, http.StatusOK, redemptions)
}

// Balances handles GET /api/balances: every profile's star balance.
func (h *RewardHandler) Balances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.StarBalances())
}
