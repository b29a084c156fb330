package model

import "time"

type ListKind string

const (
	ListShopping ListKind = "shopping"
	ListTodo     ListKind = "todo"
)

type List struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Kind ListKind `json:"kind"`
	// ItemCount is denormalized: it always equals the number of ListItems
	// whose ListID references this list.
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListItem struct {
	ID        string    `json:"id"`
	ListID    string    `json:"list_id"`
	Name      string    `json:"name"`
	Quantity  string    `json:"quantity"`
	Notes     string    `json:"notes"`
	Category  string    `json:"category"`
	Checked   bool      `json:"checked"`
	AddedBy   string    `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}
