// Package jsonstore persists the todo collection as a single JSON file.
// Human-readable, portable. No locking; there is one in-process owner.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/idilsaglam/todoish/internal/model"
)

const formatVersion = 1

// envelope is the on-disk layout.
type envelope struct {
	Version int              `json:"version"`
	Lists   []model.TodoList `json:"lists"`
}

// Load reads the file at path. A missing file yields an empty collection.
func Load(path string) ([]model.TodoList, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.TodoList{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if env.Version != formatVersion {
		return nil, fmt.Errorf("unsupported data version %d", env.Version)
	}
	normalize(env.Lists)
	return env.Lists, nil
}

// Save serializes the full collection to path, replacing prior content.
// The write goes through a temp file and rename so a failure cannot
// truncate the existing data.
func Save(path string, lists []model.TodoList) error {
	env := envelope{Version: formatVersion, Lists: lists}
	if env.Lists == nil {
		env.Lists = []model.TodoList{}
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// normalize repairs hand-edited files: nil item slices become empty and
// missing identifiers get fresh ones.
func normalize(lists []model.TodoList) {
	for i := range lists {
		if lists[i].ID == "" {
			lists[i].ID = uuid.NewString()
		}
		if lists[i].Items == nil {
			lists[i].Items = []model.Item{}
		}
		for j := range lists[i].Items {
			if lists[i].Items[j].ID == "" {
				lists[i].Items[j].ID = uuid.NewString()
			}
		}
	}
}
