package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rowanfern/hearth/internal/chore"
	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/recurrence"
	"github.com/rowanfern/hearth/internal/store"
	"github.com/rowanfern/hearth/internal/websocket"
)

type ChoreHandler struct {
	store  *store.Store
	hub    *websocket.Hub
	logger *slog.Logger
	now    func() time.Time
}

func NewChoreHandler(st *store.Store, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{store: st, hub: hub, logger: logger, now: time.Now}
}

func (h *ChoreHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type choreRequest struct {
	Title            *string          `json:"title"`
	ProfileIDs       *[]string        `json:"profile_ids"`
	StartDate        *string          `json:"start_date"`
	TimeOfDay        *string          `json:"time_of_day"`
	Type             *string          `json:"type"`
	ScheduledTime    *string          `json:"scheduled_time"`
	Recurrence       *recurrence.Rule `json:"recurrence"`
	RewardStars      *int             `json:"reward_stars"`
	IsShared         *bool            `json:"is_shared"`
	RequiresApproval *bool            `json:"requires_approval"`
}

func (h *ChoreHandler) validate(req choreRequest) string {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return "title cannot be empty"
	}
	if req.StartDate != nil {
		if _, err := time.Parse(model.DateLayout, *req.StartDate); err != nil {
			return "start_date must be a YYYY-MM-DD date"
		}
	}
	if req.ScheduledTime != nil && *req.ScheduledTime != "" {
		if _, err := time.Parse("15:04", *req.ScheduledTime); err != nil {
			return "scheduled_time must be HH:MM"
		}
	}
	if req.Recurrence != nil {
		if err := req.Recurrence.Validate(); err != nil {
			return err.Error()
		}
	}
	if req.ProfileIDs != nil {
		for _, pid := range *req.ProfileIDs {
			if !h.store.HasProfile(pid) {
				return "unknown profile: " + pid
			}
		}
	}
	if req.RewardStars != nil && *req.RewardStars < 0 {
		return "reward_stars cannot be negative"
	}
	return ""
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
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

	c := model.Chore{Title: strings.TrimSpace(*req.Title)}
	if req.ProfileIDs != nil {
		c.ProfileIDs = *req.ProfileIDs
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}
	if req.TimeOfDay != nil {
		c.TimeOfDay = model.TimeOfDay(*req.TimeOfDay)
	}
	if req.Type != nil {
		c.Type = model.ChoreType(*req.Type)
	}
	if req.ScheduledTime != nil {
		c.ScheduledTime = *req.ScheduledTime
	}
	if req.Recurrence != nil {
		c.Recurrence = *req.Recurrence
	}
	if req.RewardStars != nil {
		c.RewardStars = *req.RewardStars
	}
	if req.IsShared != nil {
		c.IsShared = *req.IsShared
	}
	if req.RequiresApproval != nil {
		c.RequiresApproval = *req.RequiresApproval
	}

	c = h.store.AddChore(c)
	h.broadcast(websocket.NewMessage("chore", "created", c.ID, nil))
	writeJSON(w, http.StatusCreated, c)
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Chores())
}

func (h *ChoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.GetChore(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "chore not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := h.validate(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	patch := store.ChorePatch{
		Title:            req.Title,
		ProfileIDs:       req.ProfileIDs,
		StartDate:        req.StartDate,
		ScheduledTime:    req.ScheduledTime,
		Recurrence:       req.Recurrence,
		RewardStars:      req.RewardStars,
		IsShared:         req.IsShared,
		RequiresApproval: req.RequiresApproval,
	}
	if req.TimeOfDay != nil {
		tod := model.TimeOfDay(*req.TimeOfDay)
		patch.TimeOfDay = &tod
	}
	if req.Type != nil {
		ct := model.ChoreType(*req.Type)
		patch.Type = &ct
	}

	c, err := h.store.UpdateChore(r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, err, "chore not found")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "updated", c.ID, nil))
	writeJSON(w, http.StatusOK, c)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteChore(id); err != nil {
		writeStoreError(w, err, "chore not found")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type completionRequest struct {
	ProfileID string `json:"profile_id"`
	Date      string `json:"date"`
	By        string `json:"by"`
}

// decodeCompletion parses the shared complete/uncomplete/approve/reject
// body. An omitted date defaults to today.
func (h *ChoreHandler) decodeCompletion(r *http.Request) (completionRequest, string) {
	var req completionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, "invalid JSON"
	}
	if req.ProfileID == "" {
		return req, "profile_id is required"
	}
	if req.Date == "" {
		req.Date = h.now().UTC().Format(model.DateLayout)
	} else if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return req, "date must be a YYYY-MM-DD date"
	}
	return req, ""
}

func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	req, msg := h.decodeCompletion(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := h.store.CompleteChore(r.PathValue("id"), req.ProfileID, req.Date)
	if err != nil {
		writeStoreError(w, err, "chore not found")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "completed", c.ID, map[string]any{"date": req.Date}))
	writeJSON(w, http.StatusOK, c)
}

func (h *ChoreHandler) Uncomplete(w http.ResponseWriter, r *http.Request) {
	req, msg := h.decodeCompletion(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := h.store.UncompleteChore(r.PathValue("id"), req.ProfileID, req.Date)
	if err != nil {
		writeStoreError(w, err, "chore not found")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "uncompleted", c.ID, map[string]any{"date": req.Date}))
	writeJSON(w, http.StatusOK, c)
}

func (h *ChoreHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, true)
}

func (h *ChoreHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, false)
}

func (h *ChoreHandler) resolve(w http.ResponseWriter, r *http.Request, approve bool) {
	req, msg := h.decodeCompletion(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.By == "" {
		writeError(w, http.StatusBadRequest, "by is required")
		return
	}

	var (
		c      model.Chore
		err    error
		action string
	)
	if approve {
		c, err = h.store.ApproveChore(r.PathValue("id"), req.ProfileID, req.Date, req.By)
		action = "approved"
	} else {
		c, err = h.store.RejectChore(r.PathValue("id"), req.ProfileID, req.Date, req.By)
		action = "rejected"
	}
	if err != nil {
		writeStoreError(w, err, "completion not found")
		return
	}

	h.broadcast(websocket.NewMessage("chore", action, c.ID, map[string]any{"date": req.Date}))
	writeJSON(w, http.StatusOK, c)
}

// Today handles GET /api/chores/today: one row per assignee for every chore
// due on the current date.
func (h *ChoreHandler) Today(w http.ResponseWriter, r *http.Request) {
	board := chore.Board(h.store.Chores(), h.now().UTC())
	if board == nil {
		board = []chore.ChoreWithStatus{}
	}
	writeJSON(w, http.StatusOK, board)
}

// Pending handles GET /api/chores/pending: completions awaiting approval.
func (h *ChoreHandler) Pending(w http.ResponseWriter, r *http.Request) {
	pending := h.store.PendingApprovals()
	if pending == nil {
		pending = []store.PendingApproval{}
	}
	writeJSON(w, http.StatusOK, pending)
}
