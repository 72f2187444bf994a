// Package extract drives one pass over a capture stream: config-stream
// frames are merged into the state tree and a record is emitted
// whenever the configured time path advances.
package extract

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"RogueMon/internal/state"
)

// ErrMalformedPayload marks a payload that is not valid UTF-8 YAML.
var ErrMalformedPayload = errors.New("malformed config payload")

// ErrNotMapping marks a payload that decodes to something other than a
// key/value document.
var ErrNotMapping = errors.New("config payload is not a mapping")

// Merger applies decoded config-update documents onto a state tree and
// tracks the designated time path across each merge.
type Merger struct {
	timePath string
}

// NewMerger returns a merger watching timePath.
func NewMerger(timePath string) *Merger {
	return &Merger{timePath: timePath}
}

// MergeResult reports the time value before and after one merge.
type MergeResult struct {
	OldTime float64
	NewTime float64
}

// Advanced reports whether the merge moved the clock forward.
func (m MergeResult) Advanced() bool { return m.NewTime > m.OldTime }

// Apply decodes payload as a YAML mapping of path -> value and writes
// each top-level pair into tree; keys are full paths and may already
// contain dots and indices. When the payload is malformed the tree is
// left untouched and the error matches ErrMalformedPayload or
// ErrNotMapping so the caller can skip the frame.
func (m *Merger) Apply(tree *state.Node, payload []byte) (MergeResult, error) {
	if !utf8.Valid(payload) {
		return MergeResult{}, fmt.Errorf("%w: invalid UTF-8", ErrMalformedPayload)
	}
	var doc any
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return MergeResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	mapping, ok := doc.(map[string]any)
	if !ok {
		return MergeResult{}, ErrNotMapping
	}

	res := MergeResult{OldTime: m.readTime(tree)}
	for key, value := range mapping {
		state.Set(tree, key, value)
	}
	res.NewTime = m.readTime(tree)
	return res, nil
}

func (m *Merger) readTime(tree *state.Node) float64 {
	return asFloat(state.Get(tree, m.timePath, nil))
}

// asFloat coerces the scalar kinds YAML produces for the time field;
// anything non-numeric counts as the 0.0 default.
func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	default:
		return 0
	}
}
