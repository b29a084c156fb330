package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/store"
	"github.com/rowanfern/hearth/internal/websocket"
)

type ProfileHandler struct {
	store  *store.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewProfileHandler(st *store.Store, hub *websocket.Hub, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{store: st, hub: hub, logger: logger}
}

func (h *ProfileHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type profileRequest struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Color       *string `json:"color"`
	AvatarEmoji *string `json:"avatar_emoji"`
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Profiles())
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProfile(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	name := ""
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	p := model.Profile{Name: name}
	if req.Role != nil {
		role := model.Role(*req.Role)
		if role != model.RoleParent && role != model.RoleChild {
			writeError(w, http.StatusBadRequest, "role must be parent or child")
			return
		}
		p.Role = role
	}
	if req.Color != nil {
		if !hexColorRegexp.MatchString(*req.Color) {
			writeError(w, http.StatusBadRequest, "color must be a hex color like #aabbcc")
			return
		}
		p.Color = *req.Color
	}
	if req.AvatarEmoji != nil {
		p.AvatarEmoji = *req.AvatarEmoji
	}

	p = h.store.AddProfile(p)
	h.broadcast(websocket.NewMessage("profile", "created", p.ID, nil))
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	patch := store.ProfilePatch{
		Color:       req.Color,
		AvatarEmoji: req.AvatarEmoji,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		patch.Name = &name
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		if role != model.RoleParent && role != model.RoleChild {
			writeError(w, http.StatusBadRequest, "role must be parent or child")
			return
		}
		patch.Role = &role
	}
	if req.Color != nil && !hexColorRegexp.MatchString(*req.Color) {
		writeError(w, http.StatusBadRequest, "color must be a hex color like #aabbcc")
		return
	}

	p, err := h.store.UpdateProfile(r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, err, "profile not found")
		return
	}

	h.broadcast(websocket.NewMessage("profile", "updated", p.ID, nil))
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteProfile(id); err != nil {
		writeStoreError(w, err, "profile not found")
		return
	}

	h.broadcast(websocket.NewMessage("profile", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type pinRequest struct {
	PIN string `json:"pin"`
}

func (h *ProfileHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if len(req.PIN) < 4 || len(req.PIN) > 8 || !isDigits(req.PIN) {
		writeError(w, http.StatusBadRequest, "PIN must be 4 to 8 digits")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash PIN", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to hash PIN")
		return
	}

	if err := h.store.SetPIN(r.PathValue("id"), string(hash)); err != nil {
		writeStoreError(w, err, "profile not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "pin set"})
}

func (h *ProfileHandler) ClearPIN(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearPIN(r.PathValue("id")); err != nil {
		writeStoreError(w, err, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "pin cleared"})
}

func (h *ProfileHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	id := r.PathValue("id")
	hash, err := h.store.PINHash(id)
	if err != nil {
		if h.store.HasProfile(id) {
			writeError(w, http.StatusBadRequest, "profile has no PIN")
		} else {
			writeError(w, http.StatusNotFound, "profile not found")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.PIN)); err != nil {
		writeError(w, http.StatusUnauthorized, "incorrect PIN")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

// Balance handles GET /api/profiles/{id}/balance.
func (h *ProfileHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.store.StarBalance(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, balance)
}
