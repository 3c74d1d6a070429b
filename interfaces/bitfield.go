package interfaces

import (
	"fmt"
	"strconv"
	"strings"
)

// BitFieldFile translates an integer-valued file into its bits, least
// significant first: a file holding "2" reads as
// [false true false false false false false false].
//
// The vector length is the value's width in whole hex digits (4 bits each)
// rounded up to the next multiple of 8, so small values still decode to a
// full byte of bits.
type BitFieldFile struct {
	fileInterface
}

// NewBitFieldFile binds a bit-vector accessor to filename.
func NewBitFieldFile(filename string, opts ...Option) (*BitFieldFile, error) {
	base, err := newFileInterface(filename, false, opts)
	if err != nil {
		return nil, err
	}

	return &BitFieldFile{fileInterface: base}, nil
}

func (b *BitFieldFile) Read(o Owner) ([]bool, error) {
	raw, err := b.get(o)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(raw)

	v, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %q is not an unsigned integer", b.filename, ErrDecode, trimmed)
	}

	// Width in bits from the hex representation, then round up to a
	// multiple of 8.
	width := len(strconv.FormatUint(v, 16)) * 4
	width += 7 - (width-1)%8

	bits := make([]bool, width)
	for i := range bits {
		bits[i] = v>>uint(i)&1 == 1
	}

	return bits, nil
}

// Write persists the integer whose bit i equals bits[i]. Vectors longer
// than 64 bits cannot be represented and fail with [ErrEncode].
func (b *BitFieldFile) Write(o Owner, bits []bool) error {
	if len(bits) > 64 {
		return fmt.Errorf("%s: %w: %d bits exceed 64", b.filename, ErrEncode, len(bits))
	}

	var v uint64

	for i, bit := range bits {
		if bit {
			v |= 1 << uint(i)
		}
	}

	return b.set(o, strconv.FormatUint(v, 10), true)
}

// WriteInt persists a raw integer value directly, for callers that already
// hold the field as a number rather than a bit vector.
func (b *BitFieldFile) WriteInt(o Owner, value uint64) error {
	return b.set(o, strconv.FormatUint(value, 10), true)
}
