package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i // per-iteration copy; go.mod targets go1.21 (pre-1.22 loop semantics)
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddClose(i%2 == 0)
			c.AddUpdatePass(3, 2, time.Millisecond)
		}()
	}
	wg.Wait()
	c.AddUndo()
	c.AddRedo()
	c.AddRollback()

	m := c.Complete()
	require.Equal(t, 8, m.Closes)
	require.Equal(t, 4, m.EmptyCloses)
	require.Equal(t, 8, m.UpdatePasses)
	require.Equal(t, 24, m.ModelsRecomputed)
	require.Equal(t, 16, m.ObserversNotified)
	require.Equal(t, 8*time.Millisecond, m.UpdateDuration)
	require.Equal(t, 1, m.Undos)
	require.Equal(t, 1, m.Redos)
	require.Equal(t, 1, m.Rollbacks)

	require.Equal(t, SubstrateMetric{}, NewDummyCollector().Complete())
}
