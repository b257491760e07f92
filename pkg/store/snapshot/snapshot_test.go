package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_ApplyAndRead(t *testing.T) {
	h := NewHolder[int]()

	_, _, ok := h.Current()
	assert.False(t, ok)

	token := h.Begin()
	require.True(t, h.Apply(token, []int{1, 2, 3}))

	records, _, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, records)
}

func TestHolder_DiscardsStaleResponse(t *testing.T) {
	h := NewHolder[string]()

	older := h.Begin()
	newer := h.Begin()

	require.True(t, h.Apply(newer, []string{"fresh"}))

	// The slow first request lands after the second one was applied.
	assert.False(t, h.Apply(older, []string{"stale"}))

	records, _, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, []string{"fresh"}, records)
}

func TestHolder_FailedFetchRetainsPrevious(t *testing.T) {
	h := NewHolder[int]()
	require.True(t, h.Apply(h.Begin(), []int{7}))

	// A failed fetch simply never calls Apply.
	_ = h.Begin()

	records, _, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, []int{7}, records)
}
