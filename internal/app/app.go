package app

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tiwariParth/todo-cli/internal/storage"
	"github.com/tiwariParth/todo-cli/internal/task"
)

// TodoApp runs one load, mutate, save cycle per command. The store is only
// saved when the mutation succeeds.
type TodoApp struct {
	store  storage.Storage
	logger *log.Logger
	now    func() time.Time
}

// Option configures a TodoApp.
type Option func(*TodoApp)

// WithLogger sets the logger for command events.
func WithLogger(logger *log.Logger) Option {
	return func(a *TodoApp) { a.logger = logger }
}

// WithClock sets the time source for new and completed tasks.
func WithClock(now func() time.Time) Option {
	return func(a *TodoApp) { a.now = now }
}

func NewTodoApp(store storage.Storage, opts ...Option) *TodoApp {
	app := &TodoApp{
		store:  store,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// AddTask appends a task and persists the store.
func (app *TodoApp) AddTask(description string, priority task.Priority) (task.Task, error) {
	var added task.Task
	err := app.mutate("add", func(ts *task.TaskStore) error {
		added = ts.Add(description, priority)
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}
	return added, nil
}

// CompleteTask marks a task completed and persists the store.
func (app *TodoApp) CompleteTask(id int) error {
	return app.mutate("complete", func(ts *task.TaskStore) error {
		return ts.Complete(id)
	})
}

// DeleteTask removes a task and persists the store.
func (app *TodoApp) DeleteTask(id int) error {
	return app.mutate("delete", func(ts *task.TaskStore) error {
		return ts.Delete(id)
	})
}

// ClearTasks empties the store and persists it.
func (app *TodoApp) ClearTasks() error {
	return app.mutate("clear", func(ts *task.TaskStore) error {
		ts.Clear()
		return nil
	})
}

// Tasks loads the store without saving it.
func (app *TodoApp) Tasks() (*task.TaskStore, error) {
	return app.store.Load()
}

func (app *TodoApp) mutate(op string, apply func(*task.TaskStore) error) error {
	ts, err := app.store.Load()
	if err != nil {
		return err
	}
	if app.now != nil {
		ts.SetClock(app.now)
	}

	if err := apply(ts); err != nil {
		app.logger.Debug("command failed, store not saved", "op", op, "err", err)
		return err
	}

	if err := app.store.Save(ts); err != nil {
		return err
	}
	app.logger.Debug("command applied", "op", op, "tasks", len(ts.Tasks), "next_id", ts.NextID)
	return nil
}
