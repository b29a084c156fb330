package recipes

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const searchPayload = `{
	"meals": [
		{
			"idMeal": "52772",
			"strMeal": "Teriyaki Chicken Casserole",
			"strCategory": "Chicken",
			"strArea": "Japanese",
			"strInstructions": "Preheat oven to 350.",
			"strMealThumb": "https://example.test/thumb.jpg",
			"strIngredient1": "soy sauce",
			"strMeasure1": "3/4 cup",
			"strIngredient2": "water",
			"strMeasure2": "1/2 cup",
			"strIngredient3": "",
			"strMeasure3": "",
			"strIngredient4": null,
			"strMeasure4": null
		}
	]
}`

func newTestService(handler http.Handler) (*Service, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewService(srv.URL), srv
}

func TestSearch(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.php" {
			t.Errorf("path = %q, want /search.php", r.URL.Path)
		}
		if got := r.URL.Query().Get("s"); got != "teriyaki" {
			t.Errorf("query s = %q, want teriyaki", got)
		}
		w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	recipes, err := svc.Search("teriyaki")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}

	r := recipes[0]
	if r.ID != "52772" {
		t.Errorf("id = %q", r.ID)
	}
	if r.Name != "Teriyaki Chicken Casserole" {
		t.Errorf("name = %q", r.Name)
	}
	if r.Category != "Chicken" {
		t.Errorf("category = %q", r.Category)
	}

	// Empty and null ingredient slots are dropped.
	if len(r.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(r.Ingredients))
	}
	if r.Ingredients[0].Name != "soy sauce" || r.Ingredients[0].Measure != "3/4 cup" {
		t.Errorf("ingredient[0] = %+v", r.Ingredients[0])
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty query should not hit the API")
	}))
	defer srv.Close()

	recipes, err := svc.Search("   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("expected no recipes, got %d", len(recipes))
	}
}

func TestSearchNoResults(t *testing.T) {
	// TheMealDB returns {"meals":null} for no matches.
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":null}`))
	}))
	defer srv.Close()

	recipes, err := svc.Search("zzzz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("expected no recipes, got %d", len(recipes))
	}
}

func TestSearchCaching(t *testing.T) {
	var calls atomic.Int64
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	for i := 0; i < 3; i++ {
		if _, err := svc.Search("teriyaki"); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 upstream call, got %d", got)
	}
}

func TestLookupNotFound(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":null}`))
	}))
	defer srv.Close()

	if _, err := svc.Lookup("99999"); err == nil {
		t.Error("expected error for unknown recipe")
	}
}

func TestByCategory(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("c"); got != "Dessert" {
			t.Errorf("query c = %q, want Dessert", got)
		}
		w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"Apple Crumble","strMealThumb":"t.jpg"}]}`))
	}))
	defer srv.Close()

	summaries, err := svc.ByCategory("Dessert")
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Name != "Apple Crumble" {
		t.Errorf("summaries = %+v", summaries)
	}
}

func TestCategories(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"categories":[{"strCategory":"Beef","strCategoryThumb":"b.jpg","strCategoryDescription":"Beef dishes"}]}`))
	}))
	defer srv.Close()

	categories, err := svc.Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Beef" {
		t.Errorf("categories = %+v", categories)
	}
}

func TestUpstreamError(t *testing.T) {
	svc, srv := newTestService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := svc.Search("anything"); err == nil {
		t.Error("expected error on upstream 502")
	}
}
