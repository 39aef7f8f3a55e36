package state

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func uris(models []Derived) []string {
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.URI()
	}
	return out
}

func TestManagerUpdatePass(t *testing.T) {
	t.Run("chain of models recomputes in dependency order", func(t *testing.T) {
		root := newTestRoot(t)
		a := NewInteger(root, "a", 0)
		var computed []string
		b := NewComputed(root, "b", func() int {
			computed = append(computed, "b")
			return a.Get() * 10
		}).DependsOn(a)
		c := NewModel(root, "c", func() string {
			computed = append(computed, "c")
			return fmt.Sprintf("c=%d", b.Get())
		}).DependsOn(b)
		obsB, obsC := &recorder{}, &recorder{}
		b.AddObserver(obsB)
		c.AddObserver(obsC)
		closeSetup(t, root)

		order, err := root.Manager().ModelsToUpdate(a)
		require.NoError(t, err)
		require.Equal(t, []string{"/b", "/c"}, uris(order), "A model should follow the models it reads")

		computed = nil
		a.Set(1)
		require.NoError(t, root.Stack().Close("set a"))

		require.Equal(t, []string{"10"}, obsB.updates, "Observer of b should be notified once")
		require.Equal(t, []string{"c=10"}, obsC.updates, "Observer of c should be notified once")
		require.Equal(t, []string{"b", "c"}, computed, "Each model should be computed once, b first")
	})

	t.Run("observers see nothing before close", func(t *testing.T) {
		root := newTestRoot(t)
		x := NewInteger(root, "x", 0)
		obs := &recorder{}
		x.AddObserver(obs)
		closeSetup(t, root)

		x.Set(3)
		x.Set(4)
		require.Empty(t, obs.updates, "Observers should not see uncommitted values")

		require.NoError(t, root.Stack().Close("a"))
		require.Equal(t, []string{"4"}, obs.updates)

		require.NoError(t, root.Stack().Undo())
		require.Equal(t, []string{"4", "0"}, obs.updates, "Undo should push the restored value")
	})

	t.Run("removed observers are not notified", func(t *testing.T) {
		root := newTestRoot(t)
		x := NewInteger(root, "x", 0)
		kept, dropped := &recorder{}, &recorder{}
		x.AddObserver(kept)
		remove := x.AddObserver(dropped)
		closeSetup(t, root)

		remove()
		x.Set(1)
		require.NoError(t, root.Stack().Close("a"))

		require.Equal(t, []string{"1"}, kept.updates)
		require.Empty(t, dropped.updates)
	})

	t.Run("models read their own writes before close", func(t *testing.T) {
		root := newTestRoot(t)
		a := NewInteger(root, "a", 1)
		b := NewComputed(root, "b", func() int { return a.Get() + 1 }).DependsOn(a)
		c := NewComputed(root, "c", func() int { return b.Get() * 2 }).DependsOn(b)
		require.Equal(t, 4, c.Get())

		a.Set(5)

		require.Equal(t, 12, c.Get(), "Transitive dependents should be marked stale by set")
	})

	t.Run("diamond dependents appear once", func(t *testing.T) {
		root := newTestRoot(t)
		s := NewInteger(root, "s", 0)
		other := NewInteger(root, "other", 0)
		left := NewComputed(root, "left", func() int { return s.Get() }).DependsOn(s)
		right := NewComputed(root, "right", func() int { return s.Get() }).DependsOn(s)
		join := NewComputed(root, "join", func() int { return left.Get() + right.Get() }).DependsOn(left, right)
		NewComputed(root, "unrelated", func() int { return other.Get() }).DependsOn(other)
		obs := &recorder{}
		join.AddObserver(obs)
		closeSetup(t, root)

		order, err := root.Manager().ModelsToUpdate(s)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"/left", "/right", "/join"}, uris(order), "Only the closure of s should be returned")
		require.Equal(t, "/join", order[2].URI(), "The join should come after both branches")

		s.Set(2)
		require.NoError(t, root.Stack().Close("a"))
		require.Equal(t, []string{"4"}, obs.updates, "The join should be notified exactly once")
	})

	t.Run("duplicate edges are ignored", func(t *testing.T) {
		root := newTestRoot(t)
		x := NewInteger(root, "x", 0)
		m := NewModel(root, "m", func() string { return x.String() }).DependsOn(x, x)
		m.DependsOn(x)

		require.Len(t, root.Manager().Dependents(x), 1)
	})

	t.Run("a state without models yields an empty order", func(t *testing.T) {
		root := newTestRoot(t)
		x := NewInteger(root, "x", 0)

		order, err := root.Manager().ModelsToUpdate(x)

		require.NoError(t, err)
		require.Empty(t, order)
	})
}

func TestManagerCycles(t *testing.T) {
	build := func(t *testing.T) (*Root, *Integer, *Model, *Model) {
		root := newTestRoot(t)
		s := NewInteger(root, "s", 0)
		e := NewModel(root, "e", func() string { return "e" })
		f := NewModel(root, "f", func() string { return "f" })
		e.DependsOn(s, f)
		f.DependsOn(e)
		return root, s, e, f
	}

	t.Run("mutual dependency is reported with its members", func(t *testing.T) {
		root, s, _, _ := build(t)

		_, err := root.Manager().ModelsToUpdate(s)

		require.ErrorIs(t, err, ErrCycleDetected)
		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		require.Equal(t, []string{"/e", "/f", "/e"}, cycle.Models, "The cycle should be listed in edge order")
	})

	t.Run("self dependency is a cycle", func(t *testing.T) {
		root := newTestRoot(t)
		s := NewInteger(root, "s", 0)
		m := NewModel(root, "m", func() string { return "m" }).DependsOn(s)
		m.DependsOn(m)

		_, err := root.Manager().ModelsToUpdate(s)

		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		require.Equal(t, []string{"/m", "/m"}, cycle.Models)
	})

	t.Run("unreached cycles do not fail other updates", func(t *testing.T) {
		root, _, _, _ := build(t)
		other := NewInteger(root, "other", 0)
		NewModel(root, "g", func() string { return other.String() }).DependsOn(other)

		order, err := root.Manager().ModelsToUpdate(other)

		require.NoError(t, err)
		require.Equal(t, []string{"/g"}, uris(order))
	})

	t.Run("close rolls back and keeps the last closed set", func(t *testing.T) {
		root, s, e, _ := build(t)
		obs := &recorder{}
		e.AddObserver(obs)
		closeSetup(t, root)

		s.Set(1)
		err := root.Stack().Close("a")

		require.ErrorIs(t, err, ErrCycleDetected)
		require.Equal(t, 0, s.Get(), "The failed set should be rolled back")
		require.Len(t, root.Stack().Past(), 1, "No set should be pushed")
		require.Empty(t, obs.updates, "No observer should be notified")
	})

	t.Run("undo fails before touching any state", func(t *testing.T) {
		root := newTestRoot(t)
		s := NewInteger(root, "s", 0)
		closeSetup(t, root)
		s.Set(1)
		require.NoError(t, root.Stack().Close("a"))
		e := NewModel(root, "e", func() string { return "e" }).DependsOn(s)
		e.DependsOn(e)

		require.ErrorIs(t, root.Stack().Undo(), ErrCycleDetected)
		require.Equal(t, 1, s.Get())
		require.Len(t, root.Stack().Past(), 2)
	})
}

func TestManagerFailingModels(t *testing.T) {
	// build wires a model that panics whenever s holds bad
	build := func(t *testing.T, bad int) (*Root, *Integer, *hook) {
		root := newTestRoot(t)
		h := &hook{}
		root.Stack().AddReporter(h)
		s := NewInteger(root, "s", 0)
		NewModel(root, "m", func() string {
			if s.Get() == bad {
				panic("bad value")
			}
			return s.String()
		}).DependsOn(s)
		closeSetup(t, root)
		return root, s, h
	}

	t.Run("close rolls back and keeps the last closed set", func(t *testing.T) {
		root, s, h := build(t, 2)
		s.Set(2)

		err := root.Stack().Close("a")

		require.ErrorIs(t, err, ErrModelFailed)
		require.ErrorContains(t, err, "/m")
		require.Equal(t, 0, s.Get(), "The failed set should be rolled back")
		require.Len(t, root.Stack().Past(), 1, "No set should be pushed")
		require.Equal(t, []string{"init", "close", "rollback"}, h.calls, "Reporters should not see the failed close")

		s.Set(1)
		require.NoError(t, root.Stack().Close("b"))
		require.Equal(t, 1, root.Stack().CurrentIndex())
	})

	t.Run("undo fails without changing anything", func(t *testing.T) {
		root, s, _ := build(t, 0)
		s.Set(1)
		require.NoError(t, root.Stack().Close("a"))

		require.ErrorIs(t, root.Stack().Undo(), ErrModelFailed)
		require.Equal(t, 1, s.Get())
		require.Equal(t, 1, root.Stack().CurrentIndex())
		require.False(t, root.Stack().IsRedoPossible())
	})

	t.Run("redo fails without changing anything", func(t *testing.T) {
		root := newTestRoot(t)
		s := NewInteger(root, "s", 0)
		broken := false
		NewModel(root, "m", func() string {
			if broken {
				panic("broken")
			}
			return s.String()
		}).DependsOn(s)
		closeSetup(t, root)
		s.Set(1)
		require.NoError(t, root.Stack().Close("a"))
		require.NoError(t, root.Stack().Undo())

		broken = true
		require.ErrorIs(t, root.Stack().Redo(), ErrModelFailed)
		require.Equal(t, 0, s.Get())
		require.Equal(t, 0, root.Stack().CurrentIndex())
		require.True(t, root.Stack().IsRedoPossible())

		broken = false
		require.NoError(t, root.Stack().Redo())
		require.Equal(t, 1, s.Get())
	})

	t.Run("a panicking observer does not stop the others", func(t *testing.T) {
		root := newTestRoot(t)
		x := NewInteger(root, "x", 0)
		x.AddObserver(ObserverFunc(func(text string) { panic("observer bug") }))
		obs := &recorder{}
		x.AddObserver(obs)
		closeSetup(t, root)

		x.Set(1)
		require.NoError(t, root.Stack().Close("a"))
		require.Equal(t, []string{"1"}, obs.updates)
		require.Equal(t, 1, root.Stack().CurrentIndex())
	})
}

func TestManagerTopologicalOrder(t *testing.T) {
	for _, seed := range []uint64{3, 11, 2024} {
		t.Run(fmt.Sprintf("random acyclic graph seed %d", seed), func(t *testing.T) {
			r := rand.New(rand.NewSource(seed))
			root := newTestRoot(t)

			states := make([]*Integer, 5)
			for i := range states {
				states[i] = NewInteger(root, fmt.Sprintf("s%d", i), 0)
			}
			// Models are created in a shuffled order; edges only go from a lower
			// rank to a higher one, so the graph is acyclic.
			const n = 30
			rank := r.Perm(n)
			models := make([]*Model, n)
			for i := 0; i < n; i++ {
				models[rank[i]] = NewModel(root, fmt.Sprintf("m%d", i), func() string { return "" })
			}
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					if r.Intn(6) == 0 {
						models[i].AddModel(models[j])
					}
				}
			}
			for _, s := range states {
				for k := r.Intn(3) + 1; k > 0; k-- {
					s.AddModel(models[r.Intn(n)])
				}
			}

			for _, s := range states {
				order, err := root.Manager().ModelsToUpdate(s)
				require.NoError(t, err)

				position := make(map[string]int)
				for i, m := range order {
					_, dup := position[m.URI()]
					require.False(t, dup, "Model %s should appear once", m.URI())
					position[m.URI()] = i
				}

				// expected closure by breadth-first search
				reached := map[string]bool{}
				queue := root.Manager().Dependents(s)
				for len(queue) > 0 {
					m := queue[0]
					queue = queue[1:]
					if reached[m.URI()] {
						continue
					}
					reached[m.URI()] = true
					queue = append(queue, root.Manager().Dependents(m)...)
				}
				require.Len(t, order, len(reached), "Order should contain exactly the closure of %s", s.URI())

				for _, m := range order {
					require.True(t, reached[m.URI()])
					for _, d := range root.Manager().Dependents(m) {
						require.Less(t, position[m.URI()], position[d.URI()], "%s should precede %s", m.URI(), d.URI())
					}
				}
			}
		})
	}
}
