package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RogueMon/internal/state"
)

func TestApplyTracksTimeAdvance(t *testing.T) {
	tree := state.NewMapping()
	m := NewMerger("Root.Time")

	res, err := m.Apply(tree, []byte("Root.Time: 1000.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.OldTime)
	assert.Equal(t, 1000.5, res.NewTime)
	assert.True(t, res.Advanced())

	res, err = m.Apply(tree, []byte("Root.App.PrbsRx[0].FrameCnt: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 1000.5, res.OldTime)
	assert.Equal(t, 1000.5, res.NewTime)
	assert.False(t, res.Advanced(), "merge without a time change must not advance")
}

func TestApplyAbsentTimeDoesNotAdvance(t *testing.T) {
	tree := state.NewMapping()
	m := NewMerger("Root.Time")

	res, err := m.Apply(tree, []byte("Root.App.Mode: idle\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.OldTime)
	assert.Equal(t, 0.0, res.NewTime)
	assert.False(t, res.Advanced(), "0.0 vs 0.0 must not advance")
}

func TestApplyIntegerTime(t *testing.T) {
	tree := state.NewMapping()
	m := NewMerger("Root.Time")

	res, err := m.Apply(tree, []byte("Root.Time: 1000\n"))
	require.NoError(t, err)
	assert.Equal(t, 1000.0, res.NewTime)
	assert.True(t, res.Advanced())
}

func TestApplyMalformedPayloadLeavesTreeUntouched(t *testing.T) {
	tree := state.NewMapping()
	m := NewMerger("Root.Time")
	_, err := m.Apply(tree, []byte("Root.Time: 7.0\n"))
	require.NoError(t, err)
	before := tree.Value()

	tests := []struct {
		name    string
		payload []byte
		target  error
	}{
		{"invalid UTF-8", []byte{0xff, 0xfe, 0x00}, ErrMalformedPayload},
		{"broken YAML", []byte("a: [unclosed\n  b: 2"), ErrMalformedPayload},
		{"sequence document", []byte("- a\n- b\n"), ErrNotMapping},
		{"scalar document", []byte("42\n"), ErrNotMapping},
		{"empty document", []byte(""), ErrNotMapping},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Apply(tree, tt.payload)
			require.ErrorIs(t, err, tt.target)
			assert.Equal(t, before, tree.Value(), "tree must be untouched after a skipped payload")
		})
	}
}

func TestApplyKeysArePaths(t *testing.T) {
	tree := state.NewMapping()
	m := NewMerger("Root.Time")

	_, err := m.Apply(tree, []byte("Root.App.PrbsRx[1].WordErrCnt: 3\nRoot.Time: 2.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, state.Get(tree, "Root.App.PrbsRx[1].WordErrCnt", nil))
	assert.Equal(t, 2.5, state.Get(tree, "Root.Time", nil))
}
