package model

import "github.com/google/uuid"

// Item is the domain model for a todo entry.
// Kept minimal on purpose; it’s easy to evolve.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Important bool   `json:"important"`
	Done      bool   `json:"done"`
}

// TodoList is a named, ordered collection of items.
// Every item belongs to exactly one list.
type TodoList struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// NewItem builds an item with a fresh identifier.
func NewItem(text string) Item {
	return Item{ID: uuid.NewString(), Text: text}
}

// NewList builds an empty list with a fresh identifier.
func NewList(name string) TodoList {
	return TodoList{ID: uuid.NewString(), Name: name, Items: []Item{}}
}

// Clone returns a deep copy of the list.
func (l TodoList) Clone() TodoList {
	out := l
	out.Items = make([]Item, len(l.Items))
	copy(out.Items, l.Items)
	return out
}

// Stats counts done and pending items in the list.
func (l TodoList) Stats() (done, pending int) {
	for _, it := range l.Items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
