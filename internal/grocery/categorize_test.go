package grocery

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Milk", "Dairy"},
		{"eggs", "Dairy"},
		{"almond milk", "Dairy"},
		{"Greek Yogurt", "Dairy"},
		{"bananas", "Produce"},
		{"cherry tomatoes", "Produce"},
		{"baby spinach", "Produce"},
		{"sourdough bread", "Bakery"},
		{"hamburger buns", "Bakery"},
		{"chicken thighs", "Meat & Seafood"},
		{"ground beef", "Meat & Seafood"},
		{"ice cream", "Frozen"},
		{"frozen peas", "Frozen"},
		{"peanut butter", "Pantry"},
		{"olive oil", "Pantry"},
		{"black beans", "Pantry"},
		{"pretzels", "Snacks"},
		{"granola bars", "Snacks"},
		{"orange juice", "Beverages"},
		{"sparkling water", "Beverages"},
		{"coffee", "Beverages"},
		{"paper towels", "Household"},
		{"dish soap", "Household"},
		{"toothpaste", "Personal Care"},
		{"shampoo", "Personal Care"},
		{"mystery item xyz", Other},
		{"", Other},
		{"   ", Other},
	}
	for _, tt := range tests {
		if got := Categorize(tt.name); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLongerKeywordWins(t *testing.T) {
	if got := Categorize("vanilla ice cream"); got != "Frozen" {
		t.Errorf("ice cream categorized as %q", got)
	}
	if got := Categorize("hot sauce"); got != "Pantry" {
		t.Errorf("hot sauce categorized as %q", got)
	}
	if got := Categorize("heavy cream"); got != "Dairy" {
		t.Errorf("heavy cream categorized as %q", got)
	}
}

func TestWholeNameBeatsSubstring(t *testing.T) {
	// "pepper" alone is the spice; "bell pepper" is the vegetable.
	if got := Categorize("pepper"); got != "Pantry" {
		t.Errorf("pepper categorized as %q", got)
	}
	if got := Categorize("bell pepper"); got != "Produce" {
		t.Errorf("bell pepper categorized as %q", got)
	}
}

func TestAislesIncludeEveryCategory(t *testing.T) {
	known := make(map[string]bool, len(Aisles))
	for _, a := range Aisles {
		known[a] = true
	}
	for aisle := range keywordsByAisle {
		if !known[aisle] {
			t.Errorf("keyword aisle %q missing from Aisles", aisle)
		}
	}
	for name, cat := range wholeName {
		if !known[cat] {
			t.Errorf("whole-name entry %q maps to unknown aisle %q", name, cat)
		}
	}
}
