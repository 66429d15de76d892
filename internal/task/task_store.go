package task

import (
	"slices"
	"time"
)

// TaskStore manages an ordered collection of tasks.
type TaskStore struct {
	Tasks  []Task `json:"tasks"`   // Insertion order
	NextID int    `json:"next_id"` // Next ID to assign to a new task

	now func() time.Time
}

// Summary holds the counts printed under the listing.
type Summary struct {
	Total     int
	Completed int
	Pending   int
}

// NewTaskStore initializes a new TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		Tasks:  []Task{},
		NextID: 1,
	}
}

// SetClock replaces the time source used by Add and Complete.
func (ts *TaskStore) SetClock(now func() time.Time) {
	ts.now = now
}

func (ts *TaskStore) clock() time.Time {
	if ts.now != nil {
		return ts.now()
	}
	return time.Now()
}

// Add appends a new task and advances NextID.
func (ts *TaskStore) Add(description string, priority Priority) Task {
	task := Task{
		ID:          ts.NextID,
		Description: description,
		Priority:    priority,
		CreatedAt:   ts.clock().Local().Format(TimeLayout),
	}
	ts.Tasks = append(ts.Tasks, task)
	ts.NextID++
	return task
}

// Get returns the task with the given id.
func (ts *TaskStore) Get(id int) (Task, error) {
	i := ts.index(id)
	if i < 0 {
		return Task{}, &TaskNotFoundError{ID: id}
	}
	return ts.Tasks[i], nil
}

// Complete marks the task with the given id as completed. Completing an
// already completed task is a no-op.
func (ts *TaskStore) Complete(id int) error {
	i := ts.index(id)
	if i < 0 {
		return &TaskNotFoundError{ID: id}
	}
	ts.Tasks[i].MarkComplete(ts.clock().Local())
	return nil
}

// Delete removes the task with the given id. NextID is left untouched.
func (ts *TaskStore) Delete(id int) error {
	i := ts.index(id)
	if i < 0 {
		return &TaskNotFoundError{ID: id}
	}
	ts.Tasks = slices.Delete(ts.Tasks, i, i+1)
	return nil
}

// Clear removes every task and resets NextID to 1, so ids from before the
// clear are handed out again.
func (ts *TaskStore) Clear() {
	ts.Tasks = []Task{}
	ts.NextID = 1
}

// Summary counts total, completed and pending tasks in the store.
func (ts *TaskStore) Summary() Summary {
	return Summarize(ts.Tasks)
}

// Summarize counts total, completed and pending tasks.
func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

// Filter returns the tasks with the given priority, in store order.
func (ts *TaskStore) Filter(priority Priority) []Task {
	var out []Task
	for _, t := range ts.Tasks {
		if t.Priority == priority {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a deep copy of the store, including its clock.
func (ts *TaskStore) Clone() *TaskStore {
	return &TaskStore{
		Tasks:  append([]Task{}, ts.Tasks...),
		NextID: ts.NextID,
		now:    ts.now,
	}
}

func (ts *TaskStore) index(id int) int {
	return slices.IndexFunc(ts.Tasks, func(t Task) bool { return t.ID == id })
}
