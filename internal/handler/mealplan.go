package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rowanfern/hearth/internal/model"
	"github.com/rowanfern/hearth/internal/store"
	"github.com/rowanfern/hearth/internal/websocket"
)

type MealPlanHandler struct {
	store  *store.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewMealPlanHandler(st *store.Store, hub *websocket.Hub, logger *slog.Logger) *MealPlanHandler {
	return &MealPlanHandler{store: st, hub: hub, logger: logger}
}

func (h *MealPlanHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

var validDays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

var validMealTypes = map[model.MealType]bool{
	model.MealBreakfast: true,
	model.MealLunch:     true,
	model.MealDinner:    true,
	model.MealSnack:     true,
}

// Week handles GET /api/meal-plans?week=YYYY-MM-DD. Any date inside the
// week resolves to its Monday-anchored plan. A week with no plan yet
// returns an empty plan shell rather than a 404.
func (h *MealPlanHandler) Week(w http.ResponseWriter, r *http.Request) {
	week := r.URL.Query().Get("week")
	if week == "" {
		week = time.Now().UTC().Format(model.DateLayout)
	}

	plan, ok, err := h.store.PlanForWeek(week)
	if err != nil {
		writeError(w, http.StatusBadRequest, "week must be a YYYY-MM-DD date")
		return
	}
	if !ok {
		monday, _ := store.WeekMonday(week)
		plan = model.MealPlan{
			WeekStartDate: monday,
			Meals:         map[string]model.DayMeals{},
		}
	}
	writeJSON(w, http.StatusOK, plan)
}

type mealAssignRequest struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	MealType  string `json:"meal_type"`
	MealID    string `json:"meal_id"`
	ProfileID string `json:"profile_id"`
}

func (h *MealPlanHandler) decodeAssign(r *http.Request) (mealAssignRequest, string) {
	var req mealAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, "invalid JSON"
	}
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return req, "date must be a YYYY-MM-DD date"
	}
	if !validDays[req.Day] {
		return req, "day must be a lowercase day name"
	}
	if !validMealTypes[model.MealType(req.MealType)] {
		return req, "meal_type must be breakfast, lunch, dinner, or snack"
	}
	if req.MealID == "" {
		return req, "meal_id is required"
	}
	return req, ""
}

// Assign handles POST /api/meal-plans/assign, creating the week's plan on
// first use.
func (h *MealPlanHandler) Assign(w http.ResponseWriter, r *http.Request) {
	req, msg := h.decodeAssign(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.ProfileID != "" && !h.store.HasProfile(req.ProfileID) {
		writeError(w, http.StatusBadRequest, "unknown profile: "+req.ProfileID)
		return
	}

	plan, err := h.store.AssignMeal(req.Date, req.Day, model.MealType(req.MealType), model.MealAssignment{
		MealID:    req.MealID,
		ProfileID: req.ProfileID,
	})
	if err != nil {
		writeStoreError(w, err, "meal plan not found")
		return
	}

	h.broadcast(websocket.NewMessage("meal_plan", "updated", plan.ID, map[string]any{"week": plan.WeekStartDate}))
	writeJSON(w, http.StatusOK, plan)
}

// Remove handles POST /api/meal-plans/remove. Removing a meal takes it out
// of the slot for every profile it was planned for.
func (h *MealPlanHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, msg := h.decodeAssign(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	plan, err := h.store.RemoveMealFromPlan(req.Date, req.Day, model.MealType(req.MealType), req.ProfileID, req.MealID)
	if err != nil {
		writeStoreError(w, err, "no plan for that week")
		return
	}

	h.broadcast(websocket.NewMessage("meal_plan", "updated", plan.ID, map[string]any{"week": plan.WeekStartDate}))
	writeJSON(w, http.StatusOK, plan)
}
