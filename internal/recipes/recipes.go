// Package recipes is a client for a TheMealDB-compatible recipe API. The
// meal-planner UI uses it to search for dinner ideas and attach them to the
// weekly plan.
package recipes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const cacheTTL = 30 * time.Minute

// DefaultBaseURL is the public TheMealDB endpoint with the free API key.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// maxIngredients is the number of strIngredientN slots the API exposes.
const maxIngredients = 20

// Ingredient is one ingredient line of a recipe.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Recipe is a fully hydrated recipe.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Area         string       `json:"area"`
	Instructions string       `json:"instructions"`
	ThumbURL     string       `json:"thumb_url"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// Summary is the shape returned by category filtering, without instructions
// or ingredients.
type Summary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ThumbURL string `json:"thumb_url"`
}

// Category is a recipe category.
type Category struct {
	Name        string `json:"name"`
	ThumbURL    string `json:"thumb_url"`
	Description string `json:"description"`
}

type cacheEntry struct {
	data      any
	fetchedAt time.Time
}

// Service fetches recipes with a small TTL cache so repeated searches from
// the meal planner do not hammer the upstream API.
type Service struct {
	client  *http.Client
	baseURL string

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewService creates a recipe service. An empty baseURL selects the public
// TheMealDB endpoint.
func NewService(baseURL string) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   make(map[string]cacheEntry),
	}
}

// Search finds recipes by name. An empty query returns an empty slice
// without hitting the API.
func (s *Service) Search(query string) ([]Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Recipe{}, nil
	}

	key := "search:" + strings.ToLower(query)
	if cached, ok := s.cached(key); ok {
		return cached.([]Recipe), nil
	}

	var resp mealsResponse
	if err := s.get("/search.php?s="+url.QueryEscape(query), &resp); err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(resp.Meals))
	for _, m := range resp.Meals {
		recipes = append(recipes, m.recipe())
	}
	s.store(key, recipes)
	return recipes, nil
}

// Lookup fetches a single recipe by ID.
func (s *Service) Lookup(id string) (Recipe, error) {
	key := "lookup:" + id
	if cached, ok := s.cached(key); ok {
		return cached.(Recipe), nil
	}

	var resp mealsResponse
	if err := s.get("/lookup.php?i="+url.QueryEscape(id), &resp); err != nil {
		return Recipe{}, err
	}
	if len(resp.Meals) == 0 {
		return Recipe{}, fmt.Errorf("recipe %s not found", id)
	}

	r := resp.Meals[0].recipe()
	s.store(key, r)
	return r, nil
}

// Random fetches a random recipe. Never cached.
func (s *Service) Random() (Recipe, error) {
	var resp mealsResponse
	if err := s.get("/random.php", &resp); err != nil {
		return Recipe{}, err
	}
	if len(resp.Meals) == 0 {
		return Recipe{}, fmt.Errorf("no random recipe returned")
	}
	return resp.Meals[0].recipe(), nil
}

// ByCategory lists recipe summaries in a category.
func (s *Service) ByCategory(category string) ([]Summary, error) {
	key := "filter:" + strings.ToLower(category)
	if cached, ok := s.cached(key); ok {
		return cached.([]Summary), nil
	}

	var resp struct {
		Meals []struct {
			ID    string `json:"idMeal"`
			Name  string `json:"strMeal"`
			Thumb string `json:"strMealThumb"`
		} `json:"meals"`
	}
	if err := s.get("/filter.php?c="+url.QueryEscape(category), &resp); err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(resp.Meals))
	for _, m := range resp.Meals {
		summaries = append(summaries, Summary{ID: m.ID, Name: m.Name, ThumbURL: m.Thumb})
	}
	s.store(key, summaries)
	return summaries, nil
}

// Categories lists all recipe categories.
func (s *Service) Categories() ([]Category, error) {
	if cached, ok := s.cached("categories"); ok {
		return cached.([]Category), nil
	}

	var resp struct {
		Categories []struct {
			Name        string `json:"strCategory"`
			Thumb       string `json:"strCategoryThumb"`
			Description string `json:"strCategoryDescription"`
		} `json:"categories"`
	}
	if err := s.get("/categories.php", &resp); err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		categories = append(categories, Category{Name: c.Name, ThumbURL: c.Thumb, Description: c.Description})
	}
	s.store("categories", categories)
	return categories, nil
}

func (s *Service) get(path string, out any) error {
	resp, err := s.client.Get(s.baseURL + path)
	if err != nil {
		return fmt.Errorf("recipe API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recipe API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode recipe response: %w", err)
	}
	return nil
}

func (s *Service) cached(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.cache[key]
	if !ok || time.Since(e.fetchedAt) >= cacheTTL {
		return nil, false
	}
	return e.data, true
}

func (s *Service) store(key string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{data: data, fetchedAt: time.Now()}
}

// mealsResponse matches the upstream search/lookup/random shape. The
// twenty numbered ingredient and measure columns are captured raw and
// folded into an Ingredients slice.
type mealsResponse struct {
	Meals []apiMeal `json:"meals"`
}

type apiMeal map[string]*string

func (m apiMeal) str(key string) string {
	if v, ok := m[key]; ok && v != nil {
		return strings.TrimSpace(*v)
	}
	return ""
}

func (m apiMeal) recipe() Recipe {
	r := Recipe{
		ID:           m.str("idMeal"),
		Name:         m.str("strMeal"),
		Category:     m.str("strCategory"),
		Area:         m.str("strArea"),
		Instructions: m.str("strInstructions"),
		ThumbURL:     m.str("strMealThumb"),
		Ingredients:  []Ingredient{},
	}
	for i := 1; i <= maxIngredients; i++ {
		name := m.str(fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, Ingredient{
			Name:    name,
			Measure: m.str(fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return r
}
