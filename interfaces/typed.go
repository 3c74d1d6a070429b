package interfaces

import (
	"fmt"
	"strings"

	"github.com/luominghao/cgroupspy/contenttypes"
)

// TypedFile delegates line-level codec work to a cgroup record type from
// [contenttypes]. Files like devices.list hold one such record per line.
//
// The type parameter restricts T to the closed content-type family, so
// binding a TypedFile to an unrelated type is a compile error.
type TypedFile[T contenttypes.ContentType] struct {
	fileInterface

	parse func(string) (T, error)
}

// NewTypedFile binds a record accessor to filename. parse constructs one
// record from one line, for example [contenttypes.ParseDeviceAccess].
func NewTypedFile[T contenttypes.ContentType](
	filename string, parse func(string) (T, error), opts ...Option,
) (*TypedFile[T], error) {
	if parse == nil {
		return nil, fmt.Errorf("%s: %w: nil parse function", filename, ErrConfig)
	}

	base, err := newFileInterface(filename, false, opts)
	if err != nil {
		return nil, err
	}

	return &TypedFile[T]{fileInterface: base, parse: parse}, nil
}

// Read returns the first record in the file, or ok=false if the file holds
// none.
func (t *TypedFile[T]) Read(o Owner) (value T, ok bool, err error) {
	var zero T

	all, err := t.ReadAll(o)
	if err != nil {
		return zero, false, err
	}

	if len(all) == 0 {
		return zero, false, nil
	}

	return all[0], true, nil
}

// ReadAll returns one record per non-empty line, in file order.
func (t *TypedFile[T]) ReadAll(o Owner) ([]T, error) {
	raw, err := t.get(o)
	if err != nil {
		return nil, err
	}

	var out []T

	for line := range strings.Lines(raw) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		v, err := t.parse(line)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", t.filename, ErrDecode, err)
		}

		out = append(out, v)
	}

	return out, nil
}

// Write persists an existing record in its canonical text form.
func (t *TypedFile[T]) Write(o Owner, value T) error {
	return t.set(o, value.String(), true)
}

// WriteText parses line into a record and persists its canonical form.
// Unparseable text fails with [ErrEncode] before any I/O.
func (t *TypedFile[T]) WriteText(o Owner, line string) error {
	if t.readonly {
		return fmt.Errorf("%s: %w", t.filename, ErrReadOnly)
	}

	v, err := t.parse(line)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", t.filename, ErrEncode, err)
	}

	return t.set(o, v.String(), true)
}
