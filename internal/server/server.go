// Package server assembles the handlers, middleware, and live-refresh hub
// into the HTTP API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rowanfern/hearth/internal/handler"
	"github.com/rowanfern/hearth/internal/middleware"
	"github.com/rowanfern/hearth/internal/push"
	"github.com/rowanfern/hearth/internal/recipes"
	"github.com/rowanfern/hearth/internal/store"
	ws "github.com/rowanfern/hearth/internal/websocket"
)

type Server struct {
	store       *store.Store
	hub         *ws.Hub
	profileH    *handler.ProfileHandler
	eventH      *handler.EventHandler
	choreH      *handler.ChoreHandler
	listH       *handler.ListHandler
	rewardH     *handler.RewardHandler
	mealPlanH   *handler.MealPlanHandler
	recipeH     *handler.RecipeHandler
	pushH       *handler.PushHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires the store and collaborators into a Server. pushSvc may be nil
// when VAPID keys are not configured; the push routes are then not
// registered.
func New(st *store.Store, recipeSvc *recipes.Service, pushSvc *push.Service, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	var pushH *handler.PushHandler
	if pushSvc != nil {
		pushH = handler.NewPushHandler(st, pushSvc, logger.With("component", "push"))
	}

	return &Server{
		store:       st,
		hub:         hub,
		profileH:    handler.NewProfileHandler(st, hub, logger.With("component", "profile")),
		eventH:      handler.NewEventHandler(st, hub, logger.With("component", "event")),
		choreH:      handler.NewChoreHandler(st, hub, logger.With("component", "chore")),
		listH:       handler.NewListHandler(st, hub, logger.With("component", "list")),
		rewardH:     handler.NewRewardHandler(st, hub, logger.With("component", "reward")),
		mealPlanH:   handler.NewMealPlanHandler(st, hub, logger.With("component", "mealplan")),
		recipeH:     handler.NewRecipeHandler(recipeSvc, logger.With("component", "recipes")),
		pushH:       pushH,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Hub returns the live-refresh hub, for broadcasts from outside the
// handlers (backup status, snapshot persistence).
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	// Profiles
	mux.HandleFunc("GET /api/profiles", s.profileH.List)
	mux.HandleFunc("POST /api/profiles", s.profileH.Create)
	mux.HandleFunc("GET /api/profiles/{id}", s.profileH.Get)
	mux.HandleFunc("PUT /api/profiles/{id}", s.profileH.Update)
	mux.HandleFunc("DELETE /api/profiles/{id}", s.profileH.Delete)
	mux.HandleFunc("GET /api/profiles/{id}/balance", s.profileH.Balance)

	// PINs. Verification is rate limited by client IP to slow guessing.
	mux.HandleFunc("POST /api/profiles/{id}/pin", s.profileH.SetPIN)
	mux.HandleFunc("DELETE /api/profiles/{id}/pin", s.profileH.ClearPIN)
	mux.HandleFunc("POST /api/profiles/{id}/pin/verify", s.rateLimitedHandler(s.profileH.VerifyPIN))

	// Events and the expanded calendar
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("GET /api/events/{id}", s.eventH.Get)
	mux.HandleFunc("PUT /api/events/{id}", s.eventH.Update)
	mux.HandleFunc("DELETE /api/events/{id}", s.eventH.Delete)
	mux.HandleFunc("GET /api/calendar", s.eventH.Calendar)

	// Chores and the completion workflow
	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("GET /api/chores/today", s.choreH.Today)
	mux.HandleFunc("GET /api/chores/pending", s.choreH.Pending)
	mux.HandleFunc("GET /api/chores/{id}", s.choreH.Get)
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.Complete)
	mux.HandleFunc("POST /api/chores/{id}/uncomplete", s.choreH.Uncomplete)
	mux.HandleFunc("POST /api/chores/{id}/approve", s.choreH.Approve)
	mux.HandleFunc("POST /api/chores/{id}/reject", s.choreH.Reject)

	// Lists and items
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("GET /api/lists", s.listH.List)
	mux.HandleFunc("GET /api/lists/{id}", s.listH.Get)
	mux.HandleFunc("PUT /api/lists/{id}", s.listH.Update)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)
	mux.HandleFunc("POST /api/lists/{id}/clear-checked", s.listH.ClearChecked)
	mux.HandleFunc("POST /api/lists/{list_id}/items", s.listH.CreateItem)
	mux.HandleFunc("GET /api/lists/{list_id}/items", s.listH.ListItems)
	mux.HandleFunc("PUT /api/lists/{list_id}/items/{id}", s.listH.UpdateItem)
	mux.HandleFunc("DELETE /api/lists/{list_id}/items/{id}", s.listH.DeleteItem)
	mux.HandleFunc("POST /api/lists/{list_id}/items/{id}/check", s.listH.ToggleItem)

	// Rewards, redemptions, balances
	mux.HandleFunc("POST /api/rewards", s.rewardH.Create)
	mux.HandleFunc("GET /api/rewards", s.rewardH.List)
	mux.HandleFunc("GET /api/rewards/{id}", s.rewardH.Get)
	mux.HandleFunc("PUT /api/rewards/{id}", s.rewardH.Update)
	mux.HandleFunc("DELETE /api/rewards/{id}", s.rewardH.Delete)
	mux.HandleFunc("POST /api/rewards/{id}/redeem", s.rewardH.Redeem)
	mux.HandleFunc("GET /api/redemptions", s.rewardH.Redemptions)
	mux.HandleFunc("PUT /api/redemptions/{id}", s.rewardH.UpdateRedemption)
	mux.HandleFunc("GET /api/balances", s.rewardH.Balances)

	// Meal planning
	mux.HandleFunc("GET /api/meal-plans", s.mealPlanH.Week)
	mux.HandleFunc("POST /api/meal-plans/assign", s.mealPlanH.Assign)
	mux.HandleFunc("POST /api/meal-plans/remove", s.mealPlanH.Remove)

	// Recipe search proxy
	mux.HandleFunc("GET /api/recipes/search", s.recipeH.Search)
	mux.HandleFunc("GET /api/recipes/random", s.recipeH.Random)
	mux.HandleFunc("GET /api/recipes/categories", s.recipeH.Categories)
	mux.HandleFunc("GET /api/recipes/category/{name}", s.recipeH.ByCategory)
	mux.HandleFunc("GET /api/recipes/{id}", s.recipeH.Get)

	// Push notifications
	if s.pushH != nil {
		mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("POST /api/push/unsubscribe", s.pushH.Unsubscribe)
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
	}

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
