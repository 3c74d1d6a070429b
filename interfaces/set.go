package interfaces

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// CommaDashSetFile translates the kernel's compact range notation, as in
// cpuset.cpus, into a set of integers: "1-3,6,11-15" reads as
// {1,2,3,6,11,12,13,14,15}.
//
// Writes emit a flat comma-separated list in ascending order and never
// re-compact contiguous values into ranges, so a read/write cycle preserves
// the set but not necessarily the original text. An empty set encodes as a
// single space, the convention for clearing these files.
type CommaDashSetFile struct {
	fileInterface
}

// NewCommaDashSetFile binds a range-set accessor to filename.
func NewCommaDashSetFile(filename string, opts ...Option) (*CommaDashSetFile, error) {
	base, err := newFileInterface(filename, false, opts)
	if err != nil {
		return nil, err
	}

	return &CommaDashSetFile{fileInterface: base}, nil
}

func (c *CommaDashSetFile) Read(o Owner) (map[int64]struct{}, error) {
	raw, err := c.get(o)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]struct{})

	for group := range strings.SplitSeq(strings.TrimSpace(raw), ",") {
		startRaw, endRaw, isRange := strings.Cut(group, "-")
		if !isRange {
			if group == "" {
				continue
			}

			n, err := c.decodeElem(group)
			if err != nil {
				return nil, err
			}

			out[n] = struct{}{}

			continue
		}

		start, err := c.decodeElem(startRaw)
		if err != nil {
			return nil, err
		}

		end, err := c.decodeElem(endRaw)
		if err != nil {
			return nil, err
		}

		for n := start; n <= end; n++ {
			out[n] = struct{}{}
		}
	}

	return out, nil
}

func (c *CommaDashSetFile) Write(o Owner, values map[int64]struct{}) error {
	if len(values) == 0 {
		return c.set(o, " ", true)
	}

	elems := slices.Sorted(maps.Keys(values))

	parts := make([]string, len(elems))
	for i, n := range elems {
		parts[i] = strconv.FormatInt(n, 10)
	}

	return c.set(o, strings.Join(parts, ","), true)
}

func (c *CommaDashSetFile) decodeElem(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %q is not an integer", c.filename, ErrDecode, s)
	}

	return n, nil
}
