package fs

import (
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

// Mem implements [FS] in memory for tests.
//
// Directories and files are registered up front with [Mem.AddDir] and
// [Mem.AddFile]; [Mem.FailPath] forces a chosen error on every later
// operation touching a path, which is how tests exercise I/O failure
// propagation deterministically.
//
// All paths are cleaned, so "/sys/fs/cgroup//cpu" and "/sys/fs/cgroup/cpu"
// address the same entry. Mem is safe for concurrent use.
type Mem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
	errs  map[string]error
}

// NewMem returns an empty in-memory filesystem containing only "/".
func NewMem() *Mem {
	return &Mem{
		files: make(map[string][]byte),
		dirs:  map[string]struct{}{"/": {}},
		errs:  make(map[string]error),
	}
}

// AddDir registers a directory and all of its parents.
func (m *Mem) AddDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for p := path.Clean(dir); ; p = path.Dir(p) {
		m.dirs[p] = struct{}{}

		if p == "/" || p == "." {
			return
		}
	}
}

// AddFile registers a file with the given contents, creating parents.
func (m *Mem) AddFile(filePath, contents string) {
	m.AddDir(path.Dir(filePath))

	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path.Clean(filePath)] = []byte(contents)
}

// Contents returns the current contents of a file and whether it exists.
func (m *Mem) Contents(filePath string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path.Clean(filePath)]

	return string(data), ok
}

// FailPath makes every subsequent operation on filePath return err.
func (m *Mem) FailPath(filePath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errs[path.Clean(filePath)] = err
}

func (m *Mem) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = path.Clean(filePath)

	if err := m.errs[filePath]; err != nil {
		return nil, err
	}

	data, ok := m.files[filePath]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}

	return slices.Clone(data), nil
}

func (m *Mem) WriteFile(filePath string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = path.Clean(filePath)

	if err := m.errs[filePath]; err != nil {
		return err
	}

	if _, ok := m.dirs[path.Dir(filePath)]; !ok {
		return &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}

	m.files[filePath] = slices.Clone(data)

	return nil
}

func (m *Mem) WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	return m.WriteFile(filePath, data, perm)
}

func (m *Mem) ReadDir(dir string) ([]os.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir = path.Clean(dir)

	if err := m.errs[dir]; err != nil {
		return nil, err
	}

	if _, ok := m.dirs[dir]; !ok {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
	}

	var entries []os.DirEntry

	for d := range m.dirs {
		if path.Dir(d) == dir && d != dir {
			entries = append(entries, memEntry{name: path.Base(d), dir: true})
		}
	}

	for f := range m.files {
		if path.Dir(f) == dir {
			entries = append(entries, memEntry{name: path.Base(f), size: int64(len(m.files[f]))})
		}
	}

	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return entries, nil
}

func (m *Mem) Stat(filePath string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = path.Clean(filePath)

	if err := m.errs[filePath]; err != nil {
		return nil, err
	}

	if _, ok := m.dirs[filePath]; ok {
		return memEntry{name: path.Base(filePath), dir: true}.info(), nil
	}

	if data, ok := m.files[filePath]; ok {
		return memEntry{name: path.Base(filePath), size: int64(len(data))}.info(), nil
	}

	return nil, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

func (m *Mem) Exists(filePath string) (bool, error) {
	_, err := m.Stat(filePath)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

func (m *Mem) Writable(filePath string) (bool, error) {
	ok, err := m.Exists(filePath)
	if err != nil {
		return false, err
	}

	return ok, nil
}

// memEntry is both the [os.DirEntry] and, via info, the [os.FileInfo] for
// an in-memory file or directory.
type memEntry struct {
	name string
	size int64
	dir  bool
}

func (e memEntry) Name() string { return e.name }

func (e memEntry) IsDir() bool { return e.dir }

func (e memEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}

	return 0
}

func (e memEntry) Info() (fs.FileInfo, error) { return e.info(), nil }

func (e memEntry) info() fs.FileInfo { return memInfo{e} }

type memInfo struct {
	memEntry
}

func (i memInfo) Size() int64 { return i.size }

func (i memInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}

	return 0o644
}

func (i memInfo) ModTime() time.Time { return time.Time{} }

func (i memInfo) Sys() any { return nil }

// Compile-time interface check.
var _ FS = (*Mem)(nil)
