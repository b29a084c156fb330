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

type EventHandler struct {
	store  *store.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewEventHandler(st *store.Store, hub *websocket.Hub, logger *slog.Logger) *EventHandler {
	return &EventHandler{store: st, hub: hub, logger: logger}
}

func (h *EventHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type eventRequest struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Start           *time.Time       `json:"start"`
	End             *time.Time       `json:"end"`
	AllDay          *bool            `json:"all_day"`
	ProfileIDs      *[]string        `json:"profile_ids"`
	Recurrence      *recurrence.Rule `json:"recurrence"`
	Category        *string          `json:"category"`
	Priority        *string          `json:"priority"`
	Location        *string          `json:"location"`
	ReminderMinutes *int             `json:"reminder_minutes"`
}

func (h *EventHandler) validate(req eventRequest) string {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return "title cannot be empty"
	}
	if req.Start != nil && req.End != nil && req.End.Before(*req.Start) {
		return "end must not be before start"
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
	if req.ReminderMinutes != nil && *req.ReminderMinutes < 0 {
		return "reminder_minutes cannot be negative"
	}
	return ""
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Start == nil {
		writeError(w, http.StatusBadRequest, "start is required")
		return
	}
	if msg := h.validate(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	e := model.Event{
		Title: strings.TrimSpace(*req.Title),
		Start: *req.Start,
		End:   *req.Start,
	}
	if req.End != nil {
		e.End = *req.End
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.AllDay != nil {
		e.AllDay = *req.AllDay
	}
	if req.ProfileIDs != nil {
		e.ProfileIDs = *req.ProfileIDs
	}
	if req.Recurrence != nil {
		e.Recurrence = *req.Recurrence
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Priority != nil {
		e.Priority = *req.Priority
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.ReminderMinutes != nil {
		e.ReminderMinutes = *req.ReminderMinutes
	}

	e = h.store.AddEvent(e)
	h.broadcast(websocket.NewMessage("event", "created", e.ID, nil))
	writeJSON(w, http.StatusCreated, e)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Events())
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetEvent(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := h.validate(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	patch := store.EventPatch{
		Title:           req.Title,
		Description:     req.Description,
		Start:           req.Start,
		End:             req.End,
		AllDay:          req.AllDay,
		ProfileIDs:      req.ProfileIDs,
		Recurrence:      req.Recurrence,
		Category:        req.Category,
		Priority:        req.Priority,
		Location:        req.Location,
		ReminderMinutes: req.ReminderMinutes,
	}

	e, err := h.store.UpdateEvent(r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, err, "event not found")
		return
	}

	h.broadcast(websocket.NewMessage("event", "updated", e.ID, nil))
	writeJSON(w, http.StatusOK, e)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteEvent(id); err != nil {
		writeStoreError(w, err, "event not found")
		return
	}

	h.broadcast(websocket.NewMessage("event", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Calendar handles GET /api/calendar?start=YYYY-MM-DD&end=YYYY-MM-DD and
// returns the expanded occurrences for the range, both dates inclusive.
func (h *EventHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(model.DateLayout, r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be a YYYY-MM-DD date")
		return
	}
	end, err := time.Parse(model.DateLayout, r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be a YYYY-MM-DD date")
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end must not be before start")
		return
	}

	occurrences := h.store.OccurrencesBetween(start, end)
	if occurrences == nil {
		occurrences = []model.Occurrence{}
	}

	// Chores due on each day of the range, keyed by date, so the
	// calendar view can show both without a second round trip.
	choresDue := map[string][]model.Chore{}
	chores := h.store.Chores()
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, c := range chores {
			if chore.IsDueOn(c, d) {
				choresDue[d.Format(model.DateLayout)] = append(choresDue[d.Format(model.DateLayout)], c)
			}
		}
	}

	writeJSON(w, http.StatusOK, calendarResponse{
		Occurrences: occurrences,
		ChoresDue:   choresDue,
	})
}

type calendarResponse struct {
	Occurrences []model.Occurrence       `json:"occurrences"`
	ChoresDue   map[string][]model.Chore `json:"chores_due"`
}
