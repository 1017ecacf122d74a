package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titles = []string{
	"Morning Coffee",
	"Workout Mix",
	"Chill Vibes",
	"Discover Weekly",
	"Coffeehouse Acoustic",
}

func TestRank(t *testing.T) {
	matches := Rank("coffee", titles)
	require.Len(t, matches, 2)

	indexes := []int{matches[0].Index, matches[1].Index}
	assert.ElementsMatch(t, []int{0, 4}, indexes)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
}

func TestRank_CaseInsensitive(t *testing.T) {
	matches := Rank("CHILL", titles)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Index)
}

func TestRank_Empty(t *testing.T) {
	assert.Nil(t, Rank("", titles))
	assert.Nil(t, Rank("   ", titles))
	assert.Nil(t, Rank("x", nil))
}

func TestBest(t *testing.T) {
	idx, ok := Best("weekly", titles)
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = Best("zzzz", titles)
	assert.False(t, ok)
}

func TestNext_WrapsForward(t *testing.T) {
	idx, ok := Next("coffee", titles, 0, true)
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	idx, ok = Next("coffee", titles, 4, true)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestNext_Backward(t *testing.T) {
	idx, ok := Next("coffee", titles, 0, false)
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	idx, ok = Next("coffee", titles, 4, false)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestNext_OnlySelfMatches(t *testing.T) {
	idx, ok := Next("workout", titles, 1, true)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestNext_NoMatch(t *testing.T) {
	_, ok := Next("zzzz", titles, 0, true)
	assert.False(t, ok)

	_, ok = Next("", titles, 0, true)
	assert.False(t, ok)
}
