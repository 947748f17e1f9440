// Package testutil holds test doubles shared across packages.
package testutil

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. Paths are stored
// normalized to forward slashes. Optionally case-insensitive to mimic
// Windows and macOS volumes in conflict-detection tests.
type MemoryFS struct {
	mu              sync.RWMutex
	files           map[string]*memFileInfo
	caseInsensitive bool

	// errorPaths injects errors for specific paths
	errorPaths map[string]error
}

// NewMemoryFS creates an empty in-memory filesystem.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files:      make(map[string]*memFileInfo),
		errorPaths: make(map[string]error),
	}
}

// SetCaseInsensitive makes lookups fold case, like NTFS and APFS.
func (m *MemoryFS) SetCaseInsensitive(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caseInsensitive = v
}

// AddFile registers a file of the given size.
func (m *MemoryFS) AddFile(path string, size int64) {
	m.add(path, size, false)
}

// AddDir registers a directory.
func (m *MemoryFS) AddDir(path string) {
	m.add(path, 0, true)
}

// InjectError makes Stat and Lstat fail for the given path.
func (m *MemoryFS) InjectError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[m.key(path)] = err
}

func (m *MemoryFS) add(path string, size int64, dir bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[m.key(path)] = &memFileInfo{
		name:    filepath.Base(path),
		size:    size,
		mode:    fileMode(dir),
		modTime: time.Now(),
		isDir:   dir,
	}
}

func fileMode(dir bool) fs.FileMode {
	if dir {
		return 0o755 | fs.ModeDir
	}
	return 0o644
}

func (m *MemoryFS) key(path string) string {
	k := strings.ReplaceAll(path, "\\", "/")
	if m.caseInsensitive {
		k = strings.ToLower(k)
	}
	return k
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := m.key(name)
	if err, ok := m.errorPaths[key]; ok {
		return nil, err
	}
	fi, ok := m.files[key]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fi, nil
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	return m.Stat(name)
}

type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return f.size }
func (f *memFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memFileInfo) ModTime() time.Time { return f.modTime }
func (f *memFileInfo) IsDir() bool        { return f.isDir }
func (f *memFileInfo) Sys() interface{}   { return nil }
