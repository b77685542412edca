package forward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheAddAndFind(t *testing.T) {
	t.Parallel()

	var c Cache
	m := &Message{HashID: 5, SIMIndex: 1}
	m.Address = "79269965690"

	require.True(t, c.Add(m))
	found, idx, ok := c.Find(&Message{HashID: 5, Message: m.Message})
	require.True(t, ok)
	assert.Equal(t, 5, idx)
	assert.Same(t, m, found)
}

func TestCacheCollisionProbesLinearly(t *testing.T) {
	t.Parallel()

	var c Cache
	a := &Message{HashID: 5}
	b := &Message{HashID: 5}
	b.Address = "second"

	require.True(t, c.Add(a))
	require.True(t, c.Add(b))
	assert.Same(t, a, c.Entries()[0])

	_, idxA, ok := c.Find(&Message{HashID: 5, Message: a.Message})
	require.True(t, ok)
	assert.Equal(t, 5, idxA)
}

func TestCacheFullReportsFalse(t *testing.T) {
	t.Parallel()

	var c Cache
	for i := 0; i < SavedMessages; i++ {
		m := &Message{HashID: uint16(i)}
		require.True(t, c.Add(m))
	}
	overflow := &Message{HashID: 0}
	overflow.Address = "overflow"
	assert.False(t, c.Add(overflow))
}

func TestCacheRemoveFreesSlot(t *testing.T) {
	t.Parallel()

	var c Cache
	m := &Message{HashID: 3}
	require.True(t, c.Add(m))
	c.Remove(3)
	assert.Equal(t, 0, c.Len())

	other := &Message{HashID: 3}
	assert.True(t, c.Add(other))
}

func TestCacheGroupBySplitRefAndParts(t *testing.T) {
	t.Parallel()

	var c Cache
	first := &Message{HashID: 1}
	first.SplitRef, first.SplitParts, first.SplitNo = 0xE1, 2, 1
	second := &Message{HashID: 2}
	second.SplitRef, second.SplitParts, second.SplitNo = 0xE1, 2, 2
	unrelated := &Message{HashID: 3}
	unrelated.SplitRef, unrelated.SplitParts, unrelated.SplitNo = 0x01, 3, 1

	c.Add(first)
	c.Add(second)
	c.Add(unrelated)

	group := c.Group(0xE1, 2)
	assert.Len(t, group, 2)
}
