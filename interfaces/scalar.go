package interfaces

import "strconv"

// StrFile passes file contents through untouched in both directions.
type StrFile struct {
	fileInterface
}

// NewStrFile binds a pass-through accessor to filename.
func NewStrFile(filename string, opts ...Option) (*StrFile, error) {
	base, err := newFileInterface(filename, false, opts)
	if err != nil {
		return nil, err
	}

	return &StrFile{fileInterface: base}, nil
}

// Read returns the raw file contents.
func (s *StrFile) Read(o Owner) (string, error) {
	return s.get(o)
}

// Write persists value as-is. A nil value is the explicit no-op signal:
// the access mode is still enforced, but nothing is written.
func (s *StrFile) Write(o Owner, value *string) error {
	if value == nil {
		return s.set(o, "", false)
	}

	return s.set(o, *value, true)
}

// FlagFile translates between boolean values and the kernel's 0/1 text.
// Any nonzero integer reads as true.
type FlagFile struct {
	fileInterface
}

// NewFlagFile binds a boolean accessor to filename.
func NewFlagFile(filename string, opts ...Option) (*FlagFile, error) {
	base, err := newFileInterface(filename, false, opts)
	if err != nil {
		return nil, err
	}

	return &FlagFile{fileInterface: base}, nil
}

func (f *FlagFile) Read(o Owner) (bool, error) {
	raw, err := f.get(o)
	if err != nil {
		return false, err
	}

	n, err := decodeInt(f.filename, raw)
	if err != nil {
		return false, err
	}

	return n != 0, nil
}

func (f *FlagFile) Write(o Owner, value bool) error {
	return f.set(o, flagText(value), true)
}

// IntegerFile translates single integer values, treating the kernel's -1
// sentinel as "unset": -1 reads as nil, and nil writes as -1.
type IntegerFile struct {
	fileInterface
}

// NewIntegerFile binds a single-integer accessor to filename.
func NewIntegerFile(filename string, opts ...Option) (*IntegerFile, error) {
	base, err := newFileInterface(filename, false, opts)
	if err != nil {
		return nil, err
	}

	return &IntegerFile{fileInterface: base}, nil
}

// Read returns the file's integer, or nil when it holds the -1 sentinel.
func (f *IntegerFile) Read(o Owner) (*int64, error) {
	raw, err := f.get(o)
	if err != nil {
		return nil, err
	}

	n, err := decodeInt(f.filename, raw)
	if err != nil {
		return nil, err
	}

	if n == -1 {
		return nil, nil
	}

	return &n, nil
}

// Write persists value, encoding nil as the -1 sentinel.
func (f *IntegerFile) Write(o Owner, value *int64) error {
	return f.set(o, sentinelText(value), true)
}

func flagText(v bool) string {
	if v {
		return "1"
	}

	return "0"
}

// sentinelText encodes an optional integer, nil becoming the -1 sentinel.
func sentinelText(v *int64) string {
	if v == nil {
		return "-1"
	}

	return strconv.FormatInt(*v, 10)
}
