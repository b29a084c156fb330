// Package grocery guesses a store section for shopping list items so new
// items land in a sensible aisle group without the user picking one.
package grocery

import (
	"sort"
	"strings"
)

// Other is the fallback when no keyword matches.
const Other = "Other"

// Aisles lists the known categories in walk-the-store order. Handlers use
// it to group items consistently in list views.
var Aisles = []string{
	"Produce",
	"Bakery",
	"Meat & Seafood",
	"Dairy",
	"Frozen",
	"Pantry",
	"Snacks",
	"Beverages",
	"Household",
	"Personal Care",
	Other,
}

// Categorize returns the aisle category for an item name. Matching is
// case-insensitive: whole-name lookup first, then substring keywords with
// longer phrases taking priority.
func Categorize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Other
	}
	if cat, ok := wholeName[n]; ok {
		return cat
	}
	for _, kw := range orderedKeywords {
		if strings.Contains(n, kw.word) {
			return kw.category
		}
	}
	return Other
}

// wholeName catches names whose substring keywords would misfire, like
// "eggs" (not "eggplant") or "pepper" the spice vs. the vegetable.
var wholeName = map[string]string{
	"eggs":    "Dairy",
	"egg":     "Dairy",
	"pepper":  "Pantry",
	"salt":    "Pantry",
	"oil":     "Pantry",
	"corn":    "Produce",
	"ham":     "Meat & Seafood",
	"soap":    "Personal Care",
	"water":   "Beverages",
	"honey":   "Pantry",
	"jam":     "Pantry",
	"jelly":   "Pantry",
	"ginger":  "Produce",
	"basil":   "Produce",
	"rolls":   "Bakery",
	"buns":    "Bakery",
	"floss":   "Personal Care",
	"bleach":  "Household",
	"napkins": "Household",
}

// keywordsByAisle feeds orderedKeywords; within an aisle the entries are
// sorted longest-first at init so specific phrases win over short words
// ("cream cheese" before "cream", "sparkling water" before "water").
var keywordsByAisle = map[string][]string{
	"Produce": {
		"apple", "banana", "orange", "lemon", "lime", "avocado",
		"tomato", "potato", "sweet potato", "onion", "green onion",
		"garlic", "lettuce", "romaine", "arugula", "spinach",
		"baby spinach", "kale", "cabbage", "broccoli", "cauliflower",
		"carrot", "celery", "cucumber", "bell pepper", "jalapeño",
		"mushroom", "zucchini", "squash", "asparagus", "green bean",
		"grape", "strawberr", "blueberr", "raspberr", "berries",
		"melon", "watermelon", "pineapple", "mango", "peach", "pear",
		"cilantro", "parsley", "herb", "salad mix", "cherry tomato",
		"fruit",
	},
	"Bakery": {
		"bread", "sourdough", "whole wheat", "bagel", "tortilla",
		"bun", "roll", "muffin", "croissant", "pita",
	},
	"Meat & Seafood": {
		"chicken", "chicken breast", "chicken thigh", "chicken wing",
		"beef", "ground beef", "steak", "pork", "pork chop",
		"turkey", "ground turkey", "bacon", "sausage", "hot dog",
		"deli meat", "lamb", "salmon", "shrimp", "tuna", "tilapia",
		"crab", "lobster", "fish",
	},
	"Dairy": {
		"milk", "almond milk", "oat milk", "butter", "cheese",
		"cream cheese", "cottage cheese", "yogurt", "greek yogurt",
		"cream", "sour cream", "heavy cream", "half and half",
	},
	"Frozen": {
		"frozen", "ice cream", "popsicle", "waffle",
	},
	"Pantry": {
		"rice", "pasta", "pasta sauce", "spaghetti", "noodle",
		"flour", "sugar", "vinegar", "olive oil", "coconut oil",
		"soy sauce", "hot sauce", "tomato sauce", "sauce", "salsa",
		"ketchup", "mustard", "mayonnaise", "peanut butter",
		"maple syrup", "cereal", "oatmeal", "granola", "canned",
		"soup", "broth", "stock", "bean", "lentil", "spice",
		"seasoning", "nut", "almond",
	},
	"Snacks": {
		"chip", "cracker", "cookie", "popcorn", "pretzel",
		"granola bar", "trail mix", "candy", "chocolate",
		"fruit snack", "snack",
	},
	"Beverages": {
		"juice", "orange juice", "apple juice", "coffee", "tea",
		"soda", "sparkling water", "beer", "wine", "kombucha",
		"lemonade", "drink",
	},
	"Household": {
		"paper towel", "toilet paper", "trash bag", "garbage bag",
		"dish soap", "laundry", "detergent", "cleaner", "cleaning",
		"sponge", "foil", "plastic wrap", "ziplock", "zip bag",
		"battery", "light bulb",
	},
	"Personal Care": {
		"shampoo", "conditioner", "body wash", "toothpaste",
		"toothbrush", "deodorant", "lotion", "sunscreen", "razor",
		"tissue", "band-aid",
	},
}

type keyword struct {
	word     string
	category string
}

var orderedKeywords []keyword

func init() {
	// Longest keyword wins regardless of aisle, so "ice cream" beats
	// "cream" and "granola bar" beats "granola". Ties keep aisle walk
	// order, which makes matching deterministic.
	for _, aisle := range Aisles {
		for _, w := range keywordsByAisle[aisle] {
			orderedKeywords = append(orderedKeywords, keyword{word: w, category: aisle})
		}
	}
	sort.SliceStable(orderedKeywords, func(i, j int) bool {
		return len(orderedKeywords[i].word) > len(orderedKeywords[j].word)
	})
}
