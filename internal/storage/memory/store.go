package memory

import (
	"github.com/tiwariParth/todo-cli/internal/task"
)

// MemoryStore implements storage.Storage in memory. It keeps a copy of the
// last saved store so callers cannot mutate persisted state by accident.
type MemoryStore struct {
	saved *task.TaskStore
	saves int

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a MemoryStore that starts out holding ts.
func NewMemoryStoreWith(ts *task.TaskStore) *MemoryStore {
	return &MemoryStore{saved: ts.Clone()}
}

// Load returns a copy of the last saved store, or an empty store.
func (m *MemoryStore) Load() (*task.TaskStore, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.saved == nil {
		return task.NewTaskStore(), nil
	}
	return m.saved.Clone(), nil
}

// Save keeps a copy of ts.
func (m *MemoryStore) Save(ts *task.TaskStore) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.saved = ts.Clone()
	m.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (m *MemoryStore) Saves() int {
	return m.saves
}
