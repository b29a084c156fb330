package handler

import (
	"log/slog"
	"net/http"

	"github.com/rowanfern/hearth/internal/recipes"
)

type RecipeHandler struct {
	service *recipes.Service
	logger  *slog.Logger
}

func NewRecipeHandler(svc *recipes.Service, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{service: svc, logger: logger}
}

// Search handles GET /api/recipes/search?q=.
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Warn("recipe search", "error", err)
		writeError(w, http.StatusBadGateway, "recipe service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Random handles GET /api/recipes/random.
func (h *RecipeHandler) Random(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.service.Random()
	if err != nil {
		h.logger.Warn("random recipe", "error", err)
		writeError(w, http.StatusBadGateway, "recipe service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// Categories handles GET /api/recipes/categories.
func (h *RecipeHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories()
	if err != nil {
		h.logger.Warn("recipe categories", "error", err)
		writeError(w, http.StatusBadGateway, "recipe service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// ByCategory handles GET /api/recipes/category/{name}.
func (h *RecipeHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ByCategory(r.PathValue("name"))
	if err != nil {
		h.logger.Warn("recipes by category", "error", err)
		writeError(w, http.StatusBadGateway, "recipe service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Get handles GET /api/recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.service.Lookup(r.PathValue("id"))
	if err != nil {
		h.logger.Warn("recipe lookup", "error", err)
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}
