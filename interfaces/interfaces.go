// Package interfaces implements typed accessors for cgroup control files.
//
// A control file holds text with a file-specific encoding: a bare integer,
// a whitespace list, "key value" lines, comma-dash range sets, and so on.
// Each accessor in this package binds one filename to one of those encodings
// and translates between the raw text and a Go value, so callers never touch
// the text themselves.
//
// Accessors do no I/O of their own. They read and write through an [Owner],
// the entity that resolves the filename to an actual file:
//
//	procs := interfaces.Must(interfaces.NewMultiLineIntegerFile("cgroup.procs"))
//
//	pids, err := procs.Read(node)   // node implements Owner
//	if err != nil {
//	    return err
//	}
//
// An accessor is immutable after construction and holds no state besides its
// filename and access mode, so one accessor value can serve any number of
// owners concurrently. Concurrent access to the same underlying file is not
// coordinated here; callers needing read-modify-write atomicity must
// synchronize externally.
package interfaces

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Owner provides raw text access to control files addressed by filename.
//
// GetProperty returns the complete current contents of the file and
// SetProperty replaces them. I/O failures pass through accessors unchanged.
type Owner interface {
	GetProperty(filename string) (string, error)
	SetProperty(filename, value string) error
}

var (
	// ErrConfig reports an accessor construction that can never be valid,
	// such as requesting both access restrictions at once.
	ErrConfig = errors.New("invalid interface configuration")

	// ErrAccess is the common ancestor of [ErrReadOnly] and [ErrWriteOnly].
	// errors.Is(err, ErrAccess) matches every access mode violation.
	ErrAccess = errors.New("access mode violation")

	// ErrReadOnly reports a write to a readonly interface.
	ErrReadOnly = fmt.Errorf("%w: interface is readonly", ErrAccess)

	// ErrWriteOnly reports a read from a writeonly interface.
	ErrWriteOnly = fmt.Errorf("%w: interface is writeonly", ErrAccess)

	// ErrDecode reports file contents that do not match the accessor's format.
	ErrDecode = errors.New("malformed file contents")

	// ErrEncode reports a value that cannot be encoded for the accessor's format.
	ErrEncode = errors.New("value cannot be encoded")
)

// Option restricts the access mode of an accessor at construction time.
type Option func(*settings)

type settings struct {
	readonly  bool
	writeonly bool
}

// ReadOnly makes the accessor reject writes with [ErrReadOnly].
func ReadOnly() Option {
	return func(s *settings) {
		s.readonly = true
	}
}

// WriteOnly makes the accessor reject reads with [ErrWriteOnly].
func WriteOnly() Option {
	return func(s *settings) {
		s.writeonly = true
	}
}

// Must returns v, panicking if err is non-nil.
//
// It exists for package-level accessor declarations, where a construction
// error is a programming mistake:
//
//	var shares = interfaces.Must(interfaces.NewIntegerFile("cpu.shares"))
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

// fileInterface carries the filename binding and access mode shared by all
// accessors. Reads and writes funnel through get and set so the mode is
// enforced before any owner I/O.
type fileInterface struct {
	filename  string
	readonly  bool
	writeonly bool
}

// newFileInterface validates the access mode. forceReadOnly marks accessor
// kinds that are readonly regardless of options.
func newFileInterface(filename string, forceReadOnly bool, opts []Option) (fileInterface, error) {
	var s settings

	s.readonly = forceReadOnly

	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	if s.readonly && s.writeonly {
		return fileInterface{}, fmt.Errorf("%s: %w: cannot be both readonly and writeonly", filename, ErrConfig)
	}

	return fileInterface{filename: filename, readonly: s.readonly, writeonly: s.writeonly}, nil
}

// Filename returns the bound control file name.
func (f *fileInterface) Filename() string {
	return f.filename
}

func (f *fileInterface) get(o Owner) (string, error) {
	if f.writeonly {
		return "", fmt.Errorf("%s: %w", f.filename, ErrWriteOnly)
	}

	return o.GetProperty(f.filename)
}

// set persists an encoded value. ok=false is the encoder's no-op signal:
// the mode is still enforced, but no owner I/O happens.
func (f *fileInterface) set(o Owner, value string, ok bool) error {
	if f.readonly {
		return fmt.Errorf("%s: %w", f.filename, ErrReadOnly)
	}

	if !ok {
		return nil
	}

	return o.SetProperty(f.filename, value)
}

// decodeInt parses a single trimmed integer, wrapping failures in [ErrDecode].
func decodeInt(filename, raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q is not an integer", filename, ErrDecode, strings.TrimSpace(raw))
	}

	return n, nil
}
