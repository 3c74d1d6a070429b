package interfaces

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitValueFile extracts one token from a single-line file and converts it
// with a caller-supplied function. For a file holding "Total 10", position 1
// with an integer conversion reads 10. Readonly.
type SplitValueFile[T any] struct {
	fileInterface

	position int
	sep      string
	conv     func(string) (T, error)
}

// NewSplitValueFile binds a positional accessor to filename. sep is the
// token separator; the empty string means a single space. conv converts the
// selected token and must be non-nil.
func NewSplitValueFile[T any](
	filename string, position int, sep string, conv func(string) (T, error), opts ...Option,
) (*SplitValueFile[T], error) {
	if position < 0 {
		return nil, fmt.Errorf("%s: %w: negative token position %d", filename, ErrConfig, position)
	}

	if conv == nil {
		return nil, fmt.Errorf("%s: %w: nil conversion function", filename, ErrConfig)
	}

	if sep == "" {
		sep = " "
	}

	base, err := newFileInterface(filename, true, opts)
	if err != nil {
		return nil, err
	}

	return &SplitValueFile[T]{fileInterface: base, position: position, sep: sep, conv: conv}, nil
}

// NewStringSplitValueFile is [NewSplitValueFile] returning the raw token.
func NewStringSplitValueFile(filename string, position int, opts ...Option) (*SplitValueFile[string], error) {
	return NewSplitValueFile(filename, position, "", func(tok string) (string, error) {
		return tok, nil
	}, opts...)
}

// NewIntSplitValueFile is [NewSplitValueFile] converting the token to an
// integer.
func NewIntSplitValueFile(filename string, position int, opts ...Option) (*SplitValueFile[int64], error) {
	return NewSplitValueFile(filename, position, "", func(tok string) (int64, error) {
		return strconv.ParseInt(tok, 10, 64)
	}, opts...)
}

func (s *SplitValueFile[T]) Read(o Owner) (T, error) {
	var zero T

	raw, err := s.get(o)
	if err != nil {
		return zero, err
	}

	parts := strings.Split(strings.TrimSpace(raw), s.sep)
	if s.position >= len(parts) {
		return zero, fmt.Errorf("%s: %w: no token at position %d", s.filename, ErrDecode, s.position)
	}

	v, err := s.conv(parts[s.position])
	if err != nil {
		return zero, fmt.Errorf("%s: %w: token %q: %v", s.filename, ErrDecode, parts[s.position], err)
	}

	return v, nil
}
