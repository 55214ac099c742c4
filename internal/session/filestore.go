package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/logging"
)

var logger = logging.New("session")

// FileStore is a Store persisted as a single JSON object on disk. Every Set,
// Delete, and Clear rewrites the whole file, so the last writer wins; there
// is no cross-process locking because a session belongs to one magpie run.
type FileStore struct {
	path   string
	values map[string]string
}

// OpenFileStore loads the session file at path, creating the parent
// directory if needed. A missing file yields an empty session. A malformed
// file is non-fatal: a warning is logged and the session starts empty, the
// same recovery policy applied to a malformed draft.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	fs := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &fs.values); err != nil {
		logger.Warn("malformed session file, starting empty", "path", path, "error", err)
		fs.values = make(map[string]string)
	}
	return fs, nil
}

// Path returns the location of the backing file.
func (f *FileStore) Path() string {
	return f.path
}

// Get implements Store.
func (f *FileStore) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Set implements Store.
func (f *FileStore) Set(key, value string) {
	f.values[key] = value
	f.persist()
}

// Delete implements Store.
func (f *FileStore) Delete(key string) {
	delete(f.values, key)
	f.persist()
}

// Clear implements Store. The backing file is removed rather than rewritten
// as an empty object so an abandoned flow leaves nothing behind.
func (f *FileStore) Clear() {
	f.values = make(map[string]string)
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		logger.Warn("removing session file", "path", f.path, "error", err)
	}
}

// persist writes the full session to disk. Write failures are logged and
// swallowed: losing session persistence degrades Back navigation but must
// not abort the step in progress.
func (f *FileStore) persist() {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		logger.Warn("encoding session", "error", err)
		return
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		logger.Warn("writing session file", "path", f.path, "error", err)
	}
}
