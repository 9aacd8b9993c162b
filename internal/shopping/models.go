// Package shopping keeps the shopping list.
package shopping

// Item is one entry on the shopping list.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// State is the persisted slice of the shopping list store.
type State struct {
	Items []Item `json:"items"`
}
