package fs

import (
	"bytes"
	"errors"
	"os"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

// Real implements [FS] using the real filesystem.
//
// All methods are passthroughs to the [os] package except
// [Real.WriteFileAtomic], which uses atomic temp-file-and-rename writes,
// and [Real.Writable], which asks the kernel via access(2).
type Real struct{}

// NewReal returns a new [Real] filesystem.
func NewReal() *Real {
	return &Real{}
}

// A passthrough wrapper for [os.ReadFile].
func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// A passthrough wrapper for [os.WriteFile].
func (r *Real) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// WriteFileAtomic writes via temp file + rename. The permission argument is
// ignored; the file keeps the default mode of the temp file.
func (r *Real) WriteFileAtomic(path string, data []byte, _ os.FileMode) error {
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// A passthrough wrapper for [os.ReadDir].
func (r *Real) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// A passthrough wrapper for [os.Stat].
func (r *Real) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Exists checks if a file exists using [os.Stat].
// Returns (true, nil) if the file exists, (false, nil) if it does not,
// or (false, err) for other errors.
func (r *Real) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// Writable checks write permission with access(2), which accounts for the
// effective uid and any LSM rules, unlike a stat mode-bit check.
func (r *Real) Writable(path string) (bool, error) {
	err := unix.Access(path, unix.W_OK)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, unix.EACCES) || errors.Is(err, unix.EROFS) {
		return false, nil
	}

	return false, err
}

// Compile-time interface check.
var _ FS = (*Real)(nil)
