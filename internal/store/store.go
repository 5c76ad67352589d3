// Package store owns the in-memory collection of todo lists and applies
// all CRUD mutations. One in-process owner, no locking.
package store

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/todoish/internal/model"
)

// ErrNotFound is the sentinel matched by errors.Is for any missing target.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a mutation that referenced a missing list or item.
// The store state is unchanged when it is returned.
type NotFoundError struct {
	Kind string // "list" or "item"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(kind, id string) error { return &NotFoundError{Kind: kind, ID: id} }

// Store holds the ordered collection of todo lists.
type Store struct {
	lists    []model.TodoList
	onMutate func()
}

// New wraps loaded lists into a store. A nil slice starts empty.
func New(lists []model.TodoList) *Store {
	if lists == nil {
		lists = []model.TodoList{}
	}
	return &Store{lists: lists}
}

// OnMutate registers a hook run after every successful mutation.
// The presentation layer uses it to trigger save-after-mutation.
func (s *Store) OnMutate(fn func()) { s.onMutate = fn }

func (s *Store) mutated() {
	if s.onMutate != nil {
		s.onMutate()
	}
}

// Lists returns the lists in order. Callers must not mutate the result;
// all changes go through store operations.
func (s *Store) Lists() []model.TodoList { return s.lists }

// Len reports the number of lists.
func (s *Store) Len() int { return len(s.lists) }

// Snapshot returns a deep copy safe to hand to a deferred writer.
func (s *Store) Snapshot() []model.TodoList {
	out := make([]model.TodoList, len(s.lists))
	for i, l := range s.lists {
		out[i] = l.Clone()
	}
	return out
}

// List returns the list with the given id.
func (s *Store) List(listID string) (model.TodoList, error) {
	i, ok := s.findList(listID)
	if !ok {
		return model.TodoList{}, notFound("list", listID)
	}
	return s.lists[i], nil
}

// Item returns the item with the given id, wherever it lives.
func (s *Store) Item(itemID string) (model.Item, error) {
	li, ii, ok := s.findItem(itemID)
	if !ok {
		return model.Item{}, notFound("item", itemID)
	}
	return s.lists[li].Items[ii], nil
}

// CreateList appends a new empty list and returns it.
func (s *Store) CreateList(name string) model.TodoList {
	l := model.NewList(name)
	s.lists = append(s.lists, l)
	s.mutated()
	return l
}

// DeleteList removes a list together with all its items.
func (s *Store) DeleteList(listID string) error {
	i, ok := s.findList(listID)
	if !ok {
		return notFound("list", listID)
	}
	s.lists = append(s.lists[:i], s.lists[i+1:]...)
	s.mutated()
	return nil
}

// AddItem appends a new item to the given list and returns it.
func (s *Store) AddItem(listID, text string) (model.Item, error) {
	i, ok := s.findList(listID)
	if !ok {
		return model.Item{}, notFound("list", listID)
	}
	it := model.NewItem(text)
	s.lists[i].Items = append(s.lists[i].Items, it)
	s.mutated()
	return it, nil
}

// RenameItem changes only the item text; id and flags are untouched.
func (s *Store) RenameItem(itemID, text string) error {
	li, ii, ok := s.findItem(itemID)
	if !ok {
		return notFound("item", itemID)
	}
	s.lists[li].Items[ii].Text = text
	s.mutated()
	return nil
}

// ToggleImportant flips the importance flag and returns the updated item.
func (s *Store) ToggleImportant(itemID string) (model.Item, error) {
	li, ii, ok := s.findItem(itemID)
	if !ok {
		return model.Item{}, notFound("item", itemID)
	}
	s.lists[li].Items[ii].Important = !s.lists[li].Items[ii].Important
	s.mutated()
	return s.lists[li].Items[ii], nil
}

// ToggleDone flips the completion flag and returns the updated item.
func (s *Store) ToggleDone(itemID string) (model.Item, error) {
	li, ii, ok := s.findItem(itemID)
	if !ok {
		return model.Item{}, notFound("item", itemID)
	}
	s.lists[li].Items[ii].Done = !s.lists[li].Items[ii].Done
	s.mutated()
	return s.lists[li].Items[ii], nil
}

// DeleteItem removes an item from its list.
func (s *Store) DeleteItem(itemID string) error {
	li, ii, ok := s.findItem(itemID)
	if !ok {
		return notFound("item", itemID)
	}
	items := s.lists[li].Items
	s.lists[li].Items = append(items[:ii], items[ii+1:]...)
	s.mutated()
	return nil
}

// RestoreItem reinserts a previously deleted item at the given position.
// Supports single-level undo in the TUI.
func (s *Store) RestoreItem(listID string, index int, it model.Item) error {
	li, ok := s.findList(listID)
	if !ok {
		return notFound("list", listID)
	}
	items := s.lists[li].Items
	if index < 0 {
		index = 0
	}
	if index > len(items) {
		index = len(items)
	}
	items = append(items[:index], append([]model.Item{it}, items[index:]...)...)
	s.lists[li].Items = items
	s.mutated()
	return nil
}

// RestoreList reinserts a previously deleted list at the given position.
func (s *Store) RestoreList(index int, l model.TodoList) {
	if index < 0 {
		index = 0
	}
	if index > len(s.lists) {
		index = len(s.lists)
	}
	s.lists = append(s.lists[:index], append([]model.TodoList{l}, s.lists[index:]...)...)
	s.mutated()
}

func (s *Store) findList(listID string) (int, bool) {
	for i := range s.lists {
		if s.lists[i].ID == listID {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) findItem(itemID string) (listIdx, itemIdx int, ok bool) {
	for li := range s.lists {
		for ii := range s.lists[li].Items {
			if s.lists[li].Items[ii].ID == itemID {
				return li, ii, true
			}
		}
	}
	return 0, 0, false
}
