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

type ListHandler struct {
	store  *store.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewListHandler(st *store.Store, hub *websocket.Hub, logger *slog.Logger) *ListHandler {
	return &ListHandler{store: st, hub: hub, logger: logger}
}

func (h *ListHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type listRequest struct {
	Name *string `json:"name"`
	Kind *string `json:"kind"`
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	l := model.List{Name: strings.TrimSpace(*req.Name)}
	if req.Kind != nil {
		kind := model.ListKind(*req.Kind)
		if kind != model.ListShopping && kind != model.ListTodo {
			writeError(w, http.StatusBadRequest, "kind must be shopping or todo")
			return
		}
		l.Kind = kind
	}

	l = h.store.AddList(l)
	h.broadcast(websocket.NewMessage("list", "created", l.ID, nil))
	writeJSON(w, http.StatusCreated, l)
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Lists())
}

func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.store.GetList(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "list not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var patch store.ListPatch
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		patch.Name = &name
	}
	if req.Kind != nil {
		kind := model.ListKind(*req.Kind)
		if kind != model.ListShopping && kind != model.ListTodo {
			writeError(w, http.StatusBadRequest, "kind must be shopping or todo")
			return
		}
		patch.Kind = &kind
	}

	l, err := h.store.UpdateList(r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, err, "list not found")
		return
	}

	h.broadcast(websocket.NewMessage("list", "updated", l.ID, nil))
	writeJSON(w, http.StatusOK, l)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteList(id); err != nil {
		writeStoreError(w, err, "list not found")
		return
	}

	h.broadcast(websocket.NewMessage("list", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type listItemRequest struct {
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
	Notes    *string `json:"notes"`
	Category *string `json:"category"`
	AddedBy  *string `json:"added_by"`
}

func (h *ListHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req listItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	item := model.ListItem{
		ListID: r.PathValue("list_id"),
		Name:   strings.TrimSpace(*req.Name),
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.AddedBy != nil {
		item.AddedBy = *req.AddedBy
	}

	item, err := h.store.AddListItem(item)
	if err != nil {
		writeStoreError(w, err, "list not found")
		return
	}

	h.broadcast(websocket.NewMessage("list_item", "created", item.ID, map[string]any{"list_id": item.ListID}))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ListHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("list_id")
	if _, err := h.store.GetList(listID); err != nil {
		writeStoreError(w, err, "list not found")
		return
	}
	items := h.store.ListItems(listID)
	if items == nil {
		items = []model.ListItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ListHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req listItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	patch := store.ListItemPatch{
		Quantity: req.Quantity,
		Notes:    req.Notes,
		Category: req.Category,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		patch.Name = &name
	}

	item, err := h.store.UpdateListItem(r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, err, "item not found")
		return
	}

	h.broadcast(websocket.NewMessage("list_item", "updated", item.ID, map[string]any{"list_id": item.ListID}))
	writeJSON(w, http.StatusOK, item)
}

func (h *ListHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteListItem(id); err != nil {
		writeStoreError(w, err, "item not found")
		return
	}

	h.broadcast(websocket.NewMessage("list_item", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// ToggleItem handles POST /api/lists/{list_id}/items/{id}/check.
func (h *ListHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.ToggleListItem(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "item not found")
		return
	}

	h.broadcast(websocket.NewMessage("list_item", "toggled", item.ID, map[string]any{"checked": item.Checked}))
	writeJSON(w, http.StatusOK, item)
}

// ClearChecked handles POST /api/lists/{id}/clear-checked.
func (h *ListHandler) ClearChecked(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.ClearCheckedItems(id); err != nil {
		writeStoreError(w, err, "list not found")
		return
	}

	h.broadcast(websocket.NewMessage("list", "cleared", id, nil))
	l, err := h.store.GetList(id)
	if err != nil {
		writeStoreError(w, err, "list not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}
