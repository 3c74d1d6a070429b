package interfaces

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ListFile reads a whitespace-separated list of strings. Readonly.
type ListFile struct {
	fileInterface
}

// NewListFile binds a readonly list accessor to filename.
func NewListFile(filename string, opts ...Option) (*ListFile, error) {
	base, err := newFileInterface(filename, true, opts)
	if err != nil {
		return nil, err
	}

	return &ListFile{fileInterface: base}, nil
}

// Read returns the file's tokens in order.
func (l *ListFile) Read(o Owner) ([]string, error) {
	raw, err := l.get(o)
	if err != nil {
		return nil, err
	}

	return strings.Fields(raw), nil
}

// IntegerListFile reads a whitespace-separated list of integers, for example
// per-cpu usage counters. Readonly.
type IntegerListFile struct {
	fileInterface
}

// NewIntegerListFile binds a readonly integer list accessor to filename.
func NewIntegerListFile(filename string, opts ...Option) (*IntegerListFile, error) {
	base, err := newFileInterface(filename, true, opts)
	if err != nil {
		return nil, err
	}

	return &IntegerListFile{fileInterface: base}, nil
}

// Read returns the file's integers in order.
func (l *IntegerListFile) Read(o Owner) ([]int64, error) {
	raw, err := l.get(o)
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(raw)
	out := make([]int64, 0, len(fields))

	for _, field := range fields {
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %q is not an integer", l.filename, ErrDecode, field)
		}

		out = append(out, n)
	}

	return out, nil
}

// Write encodes a single optional integer with the -1 sentinel. The
// interface is readonly, so the write is always rejected; the encoder
// matches the scalar write side of [MultiLineIntegerFile].
func (l *IntegerListFile) Write(o Owner, value *int64) error {
	return l.set(o, sentinelText(value), true)
}

// MultiLineIntegerFile reads one integer per line, as in cgroup.procs or
// tasks. The write side takes a single optional integer: these files accept
// one value per write, so the two directions are deliberately asymmetric.
type MultiLineIntegerFile struct {
	fileInterface
}

// NewMultiLineIntegerFile binds a line-of-integers accessor to filename.
func NewMultiLineIntegerFile(filename string, opts ...Option) (*MultiLineIntegerFile, error) {
	base, err := newFileInterface(filename, false, opts)
	if err != nil {
		return nil, err
	}

	return &MultiLineIntegerFile{fileInterface: base}, nil
}

// Read returns the integer on each non-empty line, in file order.
func (m *MultiLineIntegerFile) Read(o Owner) ([]int64, error) {
	raw, err := m.get(o)
	if err != nil {
		return nil, err
	}

	var out []int64

	for line := range strings.Lines(raw) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %q is not an integer", m.filename, ErrDecode, line)
		}

		out = append(out, n)
	}

	return out, nil
}

// Write persists a single integer, encoding nil as the -1 sentinel.
func (m *MultiLineIntegerFile) Write(o Owner, value *int64) error {
	return m.set(o, sentinelText(value), true)
}

// DictFile translates files of "key value" lines, such as memory.stat, into
// a map from key to integer. If a key repeats, the last occurrence wins.
type DictFile struct {
	fileInterface
}

// NewDictFile binds a key/value table accessor to filename.
func NewDictFile(filename string, opts ...Option) (*DictFile, error) {
	base, err := newFileInterface(filename, false, opts)
	if err != nil {
		return nil, err
	}

	return &DictFile{fileInterface: base}, nil
}

func (d *DictFile) Read(o Owner) (map[string]int64, error) {
	raw, err := d.get(o)
	if err != nil {
		return nil, err
	}

	return decodeDict(d.filename, raw)
}

// Write persists the mapping's keys joined by commas, sorted for
// determinism. The integer values are not written: the write side of this
// file format carries keys only, asymmetric with the read side.
func (d *DictFile) Write(o Owner, value map[string]int64) error {
	keys := slices.Sorted(maps.Keys(value))

	return d.set(o, strings.Join(keys, ","), true)
}

// DictAndFlagFile reads a "key value" table like [DictFile] but writes a
// plain 0/1 flag, as memory.oom_control does: reads report state, writes
// toggle the control.
type DictAndFlagFile struct {
	fileInterface
}

// NewDictAndFlagFile binds a table-read/flag-write accessor to filename.
func NewDictAndFlagFile(filename string, opts ...Option) (*DictAndFlagFile, error) {
	base, err := newFileInterface(filename, false, opts)
	if err != nil {
		return nil, err
	}

	return &DictAndFlagFile{fileInterface: base}, nil
}

func (d *DictAndFlagFile) Read(o Owner) (map[string]int64, error) {
	raw, err := d.get(o)
	if err != nil {
		return nil, err
	}

	return decodeDict(d.filename, raw)
}

func (d *DictAndFlagFile) Write(o Owner, value bool) error {
	return d.set(o, flagText(value), true)
}

func decodeDict(filename, raw string) (map[string]int64, error) {
	out := make(map[string]int64)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}

	for line := range strings.Lines(raw) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s: %w: line %q must hold a key and a value", filename, ErrDecode, strings.TrimSpace(line))
		}

		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: value %q is not an integer", filename, ErrDecode, fields[1])
		}

		out[fields[0]] = n
	}

	return out, nil
}
