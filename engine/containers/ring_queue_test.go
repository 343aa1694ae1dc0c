package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	q := NewRingQueue[int](3)
	assert.True(t, q.IsEmpty())

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	require.NoError(t, q.Enqueue(3))
	assert.True(t, q.IsFull())
	assert.ErrorIs(t, q.Enqueue(4), ErrQueueFull)

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	for _, expected := range []int{1, 2, 3} {
		v, err := q.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}

	_, err = q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = q.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingQueueWrapAround(t *testing.T) {
	q := NewRingQueue[string](2)
	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))

	v, _ := q.Dequeue()
	assert.Equal(t, "a", v)
	require.NoError(t, q.Enqueue("c"))

	v, _ = q.Dequeue()
	assert.Equal(t, "b", v)
	v, _ = q.Dequeue()
	assert.Equal(t, "c", v)
	assert.Equal(t, 0, q.Len())
}

func TestRingQueueResize(t *testing.T) {
	q := NewRingQueue[int](3)
	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	_, _ = q.Dequeue()
	require.NoError(t, q.Enqueue(3))
	require.NoError(t, q.Enqueue(4))
	require.True(t, q.IsFull())

	assert.ErrorIs(t, q.Resize(2), ErrQueueFull)
	assert.ErrorIs(t, q.Resize(0), ErrQueueFull)

	require.NoError(t, q.Resize(6))
	assert.False(t, q.IsFull())
	require.NoError(t, q.Enqueue(5))
	assert.Equal(t, 4, q.Len())

	for _, expected := range []int{2, 3, 4, 5} {
		v, err := q.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}
}
