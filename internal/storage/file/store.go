package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tiwariParth/todo-cli/internal/storage"
	"github.com/tiwariParth/todo-cli/internal/task"
)

var _ storage.Storage = (*FileStore)(nil)

// DefaultPath is the document location used when none is configured.
const DefaultPath = "todo.json"

// FileStore persists a task store as a single JSON document.
type FileStore struct {
	filePath    string
	atomicWrite bool
	logger      *log.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithAtomicWrite makes Save write a temporary file next to the document and
// rename it into place.
func WithAtomicWrite() Option {
	return func(f *FileStore) { f.atomicWrite = true }
}

// WithLogger sets the logger used for load and save events.
func WithLogger(logger *log.Logger) Option {
	return func(f *FileStore) { f.logger = logger }
}

// NewFileStore creates a FileStore for filePath, or DefaultPath if empty.
func NewFileStore(filePath string, opts ...Option) *FileStore {
	if filePath == "" {
		filePath = DefaultPath
	}
	f := &FileStore{
		filePath: filePath,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the document location.
func (f *FileStore) Path() string {
	return f.filePath
}

// Load reads the document. A missing file yields an empty store.
func (f *FileStore) Load() (*task.TaskStore, error) {
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.Debug("no document, starting empty", "path", f.filePath)
			return task.NewTaskStore(), nil
		}
		return nil, &task.StorageError{Op: "read", Path: f.filePath, Err: err}
	}

	ts, err := decode(data)
	if err != nil {
		return nil, &task.MalformedDocumentError{Path: f.filePath, Err: err}
	}

	f.logger.Debug("loaded document", "path", f.filePath, "tasks", len(ts.Tasks), "next_id", ts.NextID)
	return ts, nil
}

// Save overwrites the document with ts.
func (f *FileStore) Save(ts *task.TaskStore) error {
	data, err := encode(ts)
	if err != nil {
		return &task.StorageError{Op: "encode", Path: f.filePath, Err: err}
	}

	write := os.WriteFile
	if f.atomicWrite {
		write = writeFileAtomic
	}
	if err := write(f.filePath, data, 0644); err != nil {
		return &task.StorageError{Op: "write", Path: f.filePath, Err: err}
	}

	f.logger.Debug("saved document", "path", f.filePath, "tasks", len(ts.Tasks), "next_id", ts.NextID, "atomic", f.atomicWrite)
	return nil
}

func decode(data []byte) (*task.TaskStore, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := validateShape(doc); err != nil {
		return nil, err
	}

	var ts task.TaskStore
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

func encode(ts *task.TaskStore) ([]byte, error) {
	if ts.Tasks == nil {
		ts = ts.Clone()
		ts.Tasks = []task.Task{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(ts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(name string, data []byte, perm os.FileMode) error {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return os.Rename(tmpName, name)
}
