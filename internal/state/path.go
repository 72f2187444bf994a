package state

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one parsed component of a path: a key name with an
// optional trailing sequence index.
type Segment struct {
	Name     string
	Index    int
	HasIndex bool
}

// ParsePath splits a dot-separated path into typed segments. A segment
// may carry exactly one bracketed non-negative index after the key
// name, e.g. "PrbsRx[0]". A segment containing '[' without a closing
// ']' at the end is treated as a literal key name.
func ParsePath(path string) ([]Segment, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	parts := strings.Split(path, ".")
	segs := make([]Segment, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("empty segment in path %q", path)
		}
		open := strings.IndexByte(p, '[')
		if open < 0 || !strings.HasSuffix(p, "]") {
			segs = append(segs, Segment{Name: p})
			continue
		}
		idx, err := strconv.Atoi(p[open+1 : len(p)-1])
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("bad index in segment %q", p)
		}
		if open == 0 {
			return nil, fmt.Errorf("segment %q has no key name", p)
		}
		segs = append(segs, Segment{Name: p[:open], Index: idx, HasIndex: true})
	}
	return segs, nil
}
