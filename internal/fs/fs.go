// Package fs provides the filesystem seam between cgroup nodes and the OS.
//
// The main types are:
//   - [FS]: interface for the file operations nodes and the CLI need
//   - [Real]: production implementation using the [os] package
//   - [Mem]: in-memory implementation with error injection for tests
//
// Control files live on a pseudo-filesystem, so [FS.WriteFile] writes in
// place; the rename trick behind [FS.WriteFileAtomic] only makes sense for
// ordinary files such as snapshots.
package fs

import "os"

// FS defines the file operations used to work with a cgroup hierarchy.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces a file's contents in place. See [os.WriteFile].
	// This is the only write that works on control files: the kernel
	// interprets the written bytes, there is no file to rename over.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// WriteFileAtomic writes an ordinary file via temp file + rename so a
	// crash never leaves partial contents. Not usable on control files.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory and returns its entries sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Writable reports whether the calling process may write to path.
	// Mode bits are not enough for control files owned by root, so
	// implementations must ask the kernel.
	Writable(path string) (bool, error)
}
