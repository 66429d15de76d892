package app

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tiwariParth/todo-cli/internal/storage/file"
	"github.com/tiwariParth/todo-cli/internal/storage/memory"
	"github.com/tiwariParth/todo-cli/internal/task"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

func newTestApp(store *memory.MemoryStore) *TodoApp {
	return NewTodoApp(store, WithClock(func() time.Time { return testNow }))
}

func TestAddTaskPersists(t *testing.T) {
	store := memory.NewMemoryStore()
	app := newTestApp(store)

	added, err := app.AddTask("buy milk", task.Low)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if added.ID != 1 || added.CreatedAt != testNow.Format(task.TimeLayout) {
		t.Errorf("added: got %+v", added)
	}
	if store.Saves() != 1 {
		t.Errorf("Saves: got %d, want 1", store.Saves())
	}

	ts, _ := store.Load()
	if len(ts.Tasks) != 1 || ts.NextID != 2 {
		t.Errorf("persisted: got %+v", ts)
	}
}

func TestCompleteTaskRecordsCompletionTime(t *testing.T) {
	store := memory.NewMemoryStore()
	app := newTestApp(store)
	if _, err := app.AddTask("buy milk", task.Low); err != nil {
		t.Fatal(err)
	}

	if err := app.CompleteTask(1); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	ts, _ := store.Load()
	if !ts.Tasks[0].Completed || ts.Tasks[0].CompletedAt != testNow.Format(task.TimeLayout) {
		t.Errorf("got %+v", ts.Tasks[0])
	}
}

func TestFailedMutationIsNotSaved(t *testing.T) {
	store := memory.NewMemoryStore()
	app := newTestApp(store)
	if _, err := app.AddTask("buy milk", task.Low); err != nil {
		t.Fatal(err)
	}

	for name, op := range map[string]func(int) error{
		"complete": app.CompleteTask,
		"delete":   app.DeleteTask,
	} {
		t.Run(name, func(t *testing.T) {
			err := op(99)
			if !errors.Is(err, task.ErrTaskNotFound) {
				t.Fatalf("got %v, want ErrTaskNotFound", err)
			}
			if store.Saves() != 1 {
				t.Errorf("Saves: got %d, want 1", store.Saves())
			}
		})
	}
}

func TestLoadErrorStopsCommand(t *testing.T) {
	boom := errors.New("boom")
	store := memory.NewMemoryStore()
	store.LoadErr = boom
	app := newTestApp(store)

	if err := app.ClearTasks(); !errors.Is(err, boom) {
		t.Errorf("ClearTasks: got %v, want boom", err)
	}
	if _, err := app.Tasks(); !errors.Is(err, boom) {
		t.Errorf("Tasks: got %v, want boom", err)
	}
	if store.Saves() != 0 {
		t.Errorf("Saves: got %d, want 0", store.Saves())
	}
}

func TestSaveErrorIsReturned(t *testing.T) {
	boom := errors.New("disk full")
	store := memory.NewMemoryStore()
	store.SaveErr = boom

	if _, err := newTestApp(store).AddTask("a", task.High); !errors.Is(err, boom) {
		t.Errorf("AddTask: got %v, want %v", err, boom)
	}
}

func TestTasksDoesNotSave(t *testing.T) {
	store := memory.NewMemoryStore()
	if _, err := newTestApp(store).Tasks(); err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if store.Saves() != 0 {
		t.Errorf("Saves: got %d, want 0", store.Saves())
	}
}

func TestScenarioAgainstFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.json")
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	app := NewTodoApp(file.NewFileStore(path, file.WithLogger(logger)), WithLogger(logger))

	steps := []func() error{
		func() error { _, err := app.AddTask("buy milk", task.Low); return err },
		func() error { return app.CompleteTask(1) },
		func() error { _, err := app.AddTask("walk dog", task.High); return err },
		func() error { return app.DeleteTask(1) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	ts, err := app.Tasks()
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(ts.Tasks) != 1 || ts.Tasks[0].ID != 2 || ts.NextID != 3 {
		t.Fatalf("got %+v", ts)
	}

	if err := app.ClearTasks(); err != nil {
		t.Fatalf("ClearTasks: %v", err)
	}
	added, err := app.AddTask("fresh start", task.Medium)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if added.ID != 1 {
		t.Errorf("id after clear: got %d, want 1", added.ID)
	}

	if !strings.Contains(logs.String(), "saved document") {
		t.Errorf("expected save events in debug log, got:\n%s", logs.String())
	}
}
