package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Run("adding and removing members", func(t *testing.T) {
		root := newTestRoot(t)
		trains := NewSet(root, "trains", "2", "3")

		require.False(t, trains.Add("2"), "Adding a member twice should be a no-op")
		require.True(t, trains.Add("4"))
		require.True(t, trains.Remove("2"))
		require.False(t, trains.Remove("6"), "Removing a non-member should be a no-op")

		require.Equal(t, []string{"3", "4"}, trains.Items())
		require.True(t, trains.Contains("4"))
		require.False(t, trains.Contains("2"))
		require.Equal(t, 2, root.Stack().Open().Len(), "Only effective mutations should be recorded")
	})

	t.Run("undo restores the original order", func(t *testing.T) {
		root := newTestRoot(t)
		trains := NewSet(root, "trains", "2", "3", "4")
		closeSetup(t, root)

		trains.Remove("3")
		trains.Add("5")
		trains.Remove("2")
		require.NoError(t, root.Stack().Close("rust"))
		require.Equal(t, "{4, 5}", trains.String())

		require.NoError(t, root.Stack().Undo())
		require.Equal(t, []string{"2", "3", "4"}, trains.Items(), "Undo should restore positions")

		require.NoError(t, root.Stack().Redo())
		require.Equal(t, []string{"4", "5"}, trains.Items(), "Redo should replay in recorded order")
	})
}

func TestMap(t *testing.T) {
	t.Run("put, overwrite and remove", func(t *testing.T) {
		root := newTestRoot(t)
		shares := NewMap[string, int](root, "shares")

		shares.Put("PRR", 1)
		shares.Put("B&O", 2)
		shares.Put("PRR", 3)
		shares.Put("PRR", 3)

		require.Equal(t, []string{"PRR", "B&O"}, shares.Keys(), "Overwriting should keep the key position")
		v, ok := shares.Get("PRR")
		require.True(t, ok)
		require.Equal(t, 3, v)
		require.Equal(t, 0, shares.GetOr("NYC", 0))
		require.Equal(t, 3, root.Stack().Open().Len(), "Putting an equal value should be a no-op")

		require.True(t, shares.Remove("PRR"))
		require.False(t, shares.Remove("PRR"))
		require.Equal(t, "{B&O=2}", shares.String())
	})

	t.Run("undo and redo restore entries and key order", func(t *testing.T) {
		root := newTestRoot(t)
		shares := NewMap[string, int](root, "shares")
		shares.Put("PRR", 1)
		shares.Put("B&O", 2)
		shares.Put("NYC", 3)
		closeSetup(t, root)

		shares.Remove("B&O")
		shares.Put("PRR", 5)
		shares.Put("C&O", 4)
		require.NoError(t, root.Stack().Close("trade"))
		after := shares.String()

		require.NoError(t, root.Stack().Undo())
		require.Equal(t, "{PRR=1, B&O=2, NYC=3}", shares.String())

		require.NoError(t, root.Stack().Redo())
		require.Equal(t, after, shares.String())
	})
}

func TestList(t *testing.T) {
	t.Run("insert and remove", func(t *testing.T) {
		root := newTestRoot(t)
		queue := NewList(root, "queue", "a", "b")

		queue.Append("c")
		queue.Insert(0, "z")
		require.Equal(t, "z", queue.RemoveAt(0))
		require.True(t, queue.Remove("b"))
		require.False(t, queue.Remove("q"))

		require.Equal(t, []string{"a", "c"}, queue.Items())
		require.Equal(t, 1, queue.IndexOf("c"))
		require.Equal(t, "c", queue.Get(1))
		require.Equal(t, "[a, c]", queue.String())
	})

	t.Run("out of range indices panic", func(t *testing.T) {
		root := newTestRoot(t)
		queue := NewList[int](root, "queue")

		require.Panics(t, func() { queue.Insert(1, 5) })
		require.Panics(t, func() { queue.RemoveAt(0) })
	})

	t.Run("duplicates survive undo", func(t *testing.T) {
		root := newTestRoot(t)
		queue := NewList(root, "queue", 1, 1, 2)
		closeSetup(t, root)

		queue.RemoveAt(1)
		queue.Append(1)
		require.NoError(t, root.Stack().Close("shuffle"))
		require.NoError(t, root.Stack().Undo())

		require.Equal(t, []int{1, 1, 2}, queue.Items())
	})
}
