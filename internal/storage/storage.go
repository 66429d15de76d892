package storage

import "github.com/tiwariParth/todo-cli/internal/task"

// Storage loads and saves the whole task store document.
type Storage interface {
	// Load returns the persisted store, or an empty one if nothing has been
	// saved yet.
	Load() (*task.TaskStore, error)

	// Save overwrites the persisted document with ts.
	Save(ts *task.TaskStore) error
}
